package repository

import (
	"context"

	"github.com/BumsooCho/trendix-ai-server/internal/model"
)

type CategoryRepo struct {
	db DB
}

func NewCategoryRepo(db DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// HotCategories returns the most recent category aggregates in rank order.
// The category_trend table is rebuilt by the offline aggregation job; only
// the latest aggregation batch is relevant.
func (r *CategoryRepo) HotCategories(ctx context.Context, platform string, limit int) ([]model.CategoryTrend, error) {
	query := `
		SELECT category, platform, rank, video_count, total_views, aggregated_at
		FROM category_trend
		WHERE aggregated_at = (SELECT MAX(aggregated_at) FROM category_trend)
		ORDER BY rank ASC
		LIMIT $1`
	args := []any{limit}

	if platform != "" {
		query = `
		SELECT category, platform, rank, video_count, total_views, aggregated_at
		FROM category_trend
		WHERE platform = $1
		  AND aggregated_at = (SELECT MAX(aggregated_at) FROM category_trend WHERE platform = $1)
		ORDER BY rank ASC
		LIMIT $2`
		args = []any{platform, limit}
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trends []model.CategoryTrend
	for rows.Next() {
		var t model.CategoryTrend
		err := rows.Scan(&t.Category, &t.Platform, &t.Rank, &t.VideoCount, &t.TotalViews, &t.AggregatedAt)
		if err != nil {
			return nil, err
		}
		trends = append(trends, t)
	}
	return trends, rows.Err()
}

// ListCategories returns the distinct category names seen in any aggregation,
// for interest registration.
func (r *CategoryRepo) ListCategories(ctx context.Context, limit int) ([]string, error) {
	query := `
		SELECT DISTINCT category
		FROM category_trend
		ORDER BY category ASC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var cat string
		if err := rows.Scan(&cat); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

// Recommendations returns videos in a category crawled within the last `days`
// days, best trend score first, newest first among unscored videos.
func (r *CategoryRepo) Recommendations(ctx context.Context, category, platform string, days, limit int) ([]model.Video, error) {
	query := `
		SELECT v.video_id, v.platform, v.title, v.channel_id, v.category,
		       v.published_at, v.crawled_at, COALESCE(vs.trend_score, 0)
		FROM video v
		LEFT JOIN video_score vs ON vs.video_id = v.video_id
		WHERE v.category = $1
		  AND ($2 = '' OR v.platform = $2)
		  AND COALESCE(v.published_at, v.crawled_at) >= NOW() - ($3 * INTERVAL '1 day')
		ORDER BY COALESCE(vs.trend_score, 0) DESC, COALESCE(v.published_at, v.crawled_at) DESC
		LIMIT $4`

	rows, err := r.db.Query(ctx, query, category, platform, days, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []model.Video
	for rows.Next() {
		var v model.Video
		err := rows.Scan(
			&v.VideoID, &v.Platform, &v.Title, &v.ChannelID, &v.Category,
			&v.PublishedAt, &v.CrawledAt, &v.TrendScore,
		)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}
