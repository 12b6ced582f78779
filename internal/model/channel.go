package model

import "time"

// Channel represents a crawled channel. Aggregates are owned by the
// ingestion pipeline; this service reads them as descriptive passthrough.
type Channel struct {
	ChannelID       string     `json:"channel_id"`
	ChannelName     *string    `json:"channel_name,omitempty"`
	Platform        string     `json:"platform"`
	SubscriberCount int64      `json:"subscriber_count"`
	VideoCount      int        `json:"video_count"`
	LastCrawledAt   *time.Time `json:"last_crawled_at,omitempty"`
}
