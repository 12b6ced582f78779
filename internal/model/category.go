package model

import "time"

// CategoryTrend is one row of the category_trend aggregate table, produced
// by the offline aggregation job and read here in rank order.
type CategoryTrend struct {
	Category     string    `json:"category"`
	Platform     string    `json:"platform"`
	Rank         int       `json:"rank"`
	VideoCount   int       `json:"video_count"`
	TotalViews   int64     `json:"total_views"`
	AggregatedAt time.Time `json:"aggregated_at"`
}

// HotCategoriesResponse is the API response for GET /api/trends/categories/hot.
type HotCategoriesResponse struct {
	Items []CategoryTrend `json:"items"`
}

// CategoryListResponse is the API response for GET /api/trends/categories.
type CategoryListResponse struct {
	Categories []string `json:"categories"`
}

// RecommendationsResponse is the API response for
// GET /api/trends/categories/:category/recommendations.
type RecommendationsResponse struct {
	Category string  `json:"category"`
	Items    []Video `json:"items"`
}
