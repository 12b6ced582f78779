package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/BumsooCho/trendix-ai-server/internal/model"
	"github.com/BumsooCho/trendix-ai-server/internal/repository"
)

type ChannelService struct {
	repo  *repository.ChannelRepo
	cache *CacheService
}

func NewChannelService(repo *repository.ChannelRepo, cache *CacheService) *ChannelService {
	return &ChannelService{repo: repo, cache: cache}
}

// Lookup returns the channel record for a given channel ID.
// Uses cache-aside: check Redis first, fall back to DB, then populate cache.
func (s *ChannelService) Lookup(ctx context.Context, channelID string) (*model.Channel, error) {
	if s.cache != nil {
		cached, err := s.cache.GetChannel(ctx, channelID)
		if err != nil {
			log.Printf("cache: channel get error: %v", err)
		} else if cached != nil {
			var ch model.Channel
			if err := json.Unmarshal(cached, &ch); err == nil {
				return &ch, nil
			}
		}
	}

	ch, err := s.repo.FindByChannelID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetChannel(ctx, channelID, ch); err != nil {
			log.Printf("cache: channel set error: %v", err)
		}
	}

	return ch, nil
}
