package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/BumsooCho/trendix-ai-server/internal/model"
)

// DB is the subset of *pgxpool.Pool the repositories need. pgxmock satisfies
// it too, which is how the query and upsert paths are tested.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type TrendRepo struct {
	db DB
}

func NewTrendRepo(db DB) *TrendRepo {
	return &TrendRepo{db: db}
}

// surgeCandidatesQuery resolves, in one pass, every candidate video together
// with its latest snapshot (curr) and the latest snapshot strictly older than
// curr (prev). The lookback window bounds video selection only — curr/prev
// are picked from the video's full snapshot history. Videos without any
// snapshot still come back, with NULL curr/prev columns.
const surgeCandidatesQuery = `
	SELECT v.video_id, v.platform, v.title, v.channel_id, v.published_at, v.crawled_at,
	       curr.view_count AS curr_view, curr.snapshot_date AS curr_date,
	       prev.view_count AS prev_view, prev.snapshot_date AS prev_date
	FROM video v
	LEFT JOIN LATERAL (
		SELECT s.view_count, s.snapshot_date
		FROM video_metric_snapshot s
		WHERE s.video_id = v.video_id AND s.platform = v.platform
		ORDER BY s.snapshot_date DESC
		LIMIT 1
	) curr ON true
	LEFT JOIN LATERAL (
		SELECT s.view_count, s.snapshot_date
		FROM video_metric_snapshot s
		WHERE s.video_id = v.video_id AND s.platform = v.platform
		  AND s.snapshot_date < curr.snapshot_date
		ORDER BY s.snapshot_date DESC
		LIMIT 1
	) prev ON true
	WHERE v.platform = $1
	  AND COALESCE(v.published_at, v.crawled_at)::date >= $2::date
	  AND COALESCE(v.published_at, v.crawled_at)::date <= $3::date`

// SurgeCandidates returns every video published (or crawled, when the publish
// timestamp is missing) within the last `days` days on the given platform,
// each paired with its curr/prev view counts.
func (r *TrendRepo) SurgeCandidates(ctx context.Context, platform string, days int, now time.Time) ([]model.SurgeCandidate, error) {
	windowStart := now.AddDate(0, 0, -days)

	rows, err := r.db.Query(ctx, surgeCandidatesQuery, platform, windowStart, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []model.SurgeCandidate
	for rows.Next() {
		var c model.SurgeCandidate
		err := rows.Scan(
			&c.VideoID, &c.Platform, &c.Title, &c.ChannelID, &c.PublishedAt, &c.CrawledAt,
			&c.CurrView, &c.CurrDate, &c.PrevView, &c.PrevDate,
		)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// upsertScoresQuery writes the whole batch in a single statement (one round
// trip, one implicit transaction). Last write wins per video_id.
const upsertScoresQuery = `
	INSERT INTO video_score (video_id, trend_score, updated_at)
	SELECT unnest($1::text[]), unnest($2::float8[]), NOW()
	ON CONFLICT (video_id)
	DO UPDATE SET trend_score = EXCLUDED.trend_score, updated_at = EXCLUDED.updated_at`

// UpsertTrendScores bulk-upserts the computed scores for the ranked videos.
func (r *TrendRepo) UpsertTrendScores(ctx context.Context, entries []model.TrendScoreEntry) error {
	if len(entries) == 0 {
		return nil
	}

	ids := make([]string, len(entries))
	scores := make([]float64, len(entries))
	for i, e := range entries {
		ids[i] = e.VideoID
		scores[i] = e.TrendScore
	}

	_, err := r.db.Exec(ctx, upsertScoresQuery, ids, scores)
	return err
}
