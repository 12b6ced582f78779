package repository

import (
	"context"

	"github.com/BumsooCho/trendix-ai-server/internal/model"
)

type ChannelRepo struct {
	db DB
}

func NewChannelRepo(db DB) *ChannelRepo {
	return &ChannelRepo{db: db}
}

// FindByChannelID returns a single channel by its ID.
func (r *ChannelRepo) FindByChannelID(ctx context.Context, channelID string) (*model.Channel, error) {
	query := `
		SELECT channel_id, channel_name, platform, subscriber_count, video_count, last_crawled_at
		FROM channel
		WHERE channel_id = $1`

	var ch model.Channel
	err := r.db.QueryRow(ctx, query, channelID).Scan(
		&ch.ChannelID, &ch.ChannelName, &ch.Platform,
		&ch.SubscriberCount, &ch.VideoCount, &ch.LastCrawledAt,
	)
	if err != nil {
		return nil, err
	}
	return &ch, nil
}
