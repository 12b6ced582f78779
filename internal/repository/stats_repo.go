package repository

import (
	"context"

	"github.com/BumsooCho/trendix-ai-server/internal/model"
)

type StatsRepo struct {
	db DB
}

func NewStatsRepo(db DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// GetStats returns aggregate corpus statistics.
func (r *StatsRepo) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM video) AS total_videos,
			(SELECT COUNT(*) FROM channel) AS total_channels,
			(SELECT COUNT(*) FROM video_metric_snapshot) AS total_snapshots,
			(SELECT COUNT(*) FROM video_metric_snapshot
			 WHERE snapshot_date > NOW() - INTERVAL '24 hours') AS snapshots_24h`

	var stats model.StatsResponse
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalVideos, &stats.TotalChannels,
		&stats.TotalSnapshots, &stats.Snapshots24h,
	)
	if err != nil {
		return nil, err
	}

	platformQuery := `
		SELECT platform, COUNT(*) AS total
		FROM video
		GROUP BY platform
		ORDER BY total DESC`

	rows, err := r.db.Query(ctx, platformQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats.VideosByPlatform = make(map[string]int)
	for rows.Next() {
		var platform string
		var count int
		if err := rows.Scan(&platform, &count); err != nil {
			return nil, err
		}
		stats.VideosByPlatform[platform] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &stats, nil
}
