package model

import "time"

// Video represents one crawled video in the catalog. Rows are immutable
// after ingestion except for trend_score, which the surge pipeline owns.
type Video struct {
	VideoID     string     `json:"video_id"`
	Platform    string     `json:"platform"`
	Title       *string    `json:"title,omitempty"`
	ChannelID   *string    `json:"channel_id,omitempty"`
	Category    *string    `json:"category,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CrawledAt   time.Time  `json:"crawled_at"`
	TrendScore  float64    `json:"trend_score"`
}

// MetricSnapshot is one timestamped view-count observation. Snapshots are
// append-only; the ingestion crawler writes them, this service only reads.
type MetricSnapshot struct {
	VideoID      string    `json:"video_id"`
	Platform     string    `json:"platform"`
	SnapshotDate time.Time `json:"snapshot_date"`
	ViewCount    int64     `json:"view_count"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
}

// SurgeCandidate is one resolver row: a candidate video joined with its
// latest snapshot (curr) and the nearest strictly-earlier one (prev).
// The view/date pointers are nil when the video has no snapshots yet.
type SurgeCandidate struct {
	VideoID     string
	Platform    string
	Title       *string
	ChannelID   *string
	PublishedAt *time.Time
	CrawledAt   time.Time
	CurrView    *int64
	CurrDate    *time.Time
	PrevView    *int64
	PrevDate    *time.Time
}

// SurgeBreakdown mirrors the four weighted terms that sum to the surge score.
type SurgeBreakdown struct {
	GrowthFactor     float64 `json:"growth_factor"`
	VelocityFactor   float64 `json:"velocity_factor"`
	PopularityFactor float64 `json:"popularity_factor"`
	FreshnessFactor  float64 `json:"freshness_factor"`
}

// SurgeVideo is one ranked entry in the surge response.
type SurgeVideo struct {
	VideoID              string         `json:"video_id"`
	Platform             string         `json:"platform"`
	Title                *string        `json:"title,omitempty"`
	ChannelID            *string        `json:"channel_id,omitempty"`
	PublishedAt          *time.Time     `json:"published_at,omitempty"`
	TrendingRank         int            `json:"trending_rank"`
	SurgeScore           float64        `json:"surge_score"`
	ViewCount            int64          `json:"view_count"`
	ViewCountChange      int64          `json:"view_count_change"`
	GrowthRatePercentage float64        `json:"growth_rate_percentage"`
	Breakdown            SurgeBreakdown `json:"breakdown"`
}

// SurgeResponse is the API response for GET /api/trends/videos/surge.
type SurgeResponse struct {
	Items []SurgeVideo `json:"items"`
}

// TrendScoreEntry is one row of the batch trend-score upsert.
type TrendScoreEntry struct {
	VideoID    string
	TrendScore float64
}

// SurgeParams are the validated request parameters for a surge ranking.
// Handlers must reject limit < 1, days < 1 and velocity_days <= 0 before
// these reach the service layer.
type SurgeParams struct {
	Platform     string
	Limit        int
	Days         int
	VelocityDays float64
}
