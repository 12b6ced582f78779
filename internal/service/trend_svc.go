package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/BumsooCho/trendix-ai-server/internal/model"
	"github.com/BumsooCho/trendix-ai-server/internal/repository"
)

// TrendService serves the category-level trend reads: hot categories,
// the category list and per-category recommendations.
type TrendService struct {
	categories *repository.CategoryRepo
	stats      *repository.StatsRepo
	cache      *CacheService
}

func NewTrendService(categories *repository.CategoryRepo, stats *repository.StatsRepo, cache *CacheService) *TrendService {
	return &TrendService{categories: categories, stats: stats, cache: cache}
}

// HotCategories returns the latest category aggregates in rank order.
// Uses cache-aside: check Redis first, fall back to DB, then populate cache.
func (s *TrendService) HotCategories(ctx context.Context, platform string, limit int) (*model.HotCategoriesResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.GetHotCategories(ctx, platform, limit)
		if err != nil {
			log.Printf("cache: hot categories get error: %v", err)
		} else if cached != nil {
			var resp model.HotCategoriesResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	trends, err := s.categories.HotCategories(ctx, platform, limit)
	if err != nil {
		return nil, err
	}
	if trends == nil {
		trends = []model.CategoryTrend{}
	}

	resp := &model.HotCategoriesResponse{Items: trends}

	if s.cache != nil {
		if err := s.cache.SetHotCategories(ctx, platform, limit, resp); err != nil {
			log.Printf("cache: hot categories set error: %v", err)
		}
	}

	return resp, nil
}

// ListCategories returns the registered category names.
func (s *TrendService) ListCategories(ctx context.Context, limit int) (*model.CategoryListResponse, error) {
	categories, err := s.categories.ListCategories(ctx, limit)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []string{}
	}
	return &model.CategoryListResponse{Categories: categories}, nil
}

// Recommendations returns recommended videos within a category, best trend
// score first.
func (s *TrendService) Recommendations(ctx context.Context, category, platform string, days, limit int) (*model.RecommendationsResponse, error) {
	videos, err := s.categories.Recommendations(ctx, category, platform, days, limit)
	if err != nil {
		return nil, err
	}
	if videos == nil {
		videos = []model.Video{}
	}
	return &model.RecommendationsResponse{Category: category, Items: videos}, nil
}

// GetStats returns aggregate corpus statistics.
func (s *TrendService) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	return s.stats.GetStats(ctx)
}
