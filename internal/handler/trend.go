package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/BumsooCho/trendix-ai-server/internal/middleware"
	"github.com/BumsooCho/trendix-ai-server/internal/model"
	"github.com/BumsooCho/trendix-ai-server/internal/service"
)

type TrendHandler struct {
	surge     *service.SurgeService
	trends    *service.TrendService
	platforms []string
}

func NewTrendHandler(surge *service.SurgeService, trends *service.TrendService, platforms []string) *TrendHandler {
	return &TrendHandler{surge: surge, trends: trends, platforms: platforms}
}

// GetSurgeVideos handles GET /api/trends/videos/surge
func (h *TrendHandler) GetSurgeVideos(c fiber.Ctx) error {
	platform, errMsg := middleware.ValidatePlatform(fiber.Query[string](c, "platform"), h.platforms)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PARAM", errMsg)
	}

	limit, errMsg := middleware.ValidateLimit(
		fiber.Query[int](c, "limit", middleware.DefaultSurgeLimit), middleware.MaxSurgeLimit)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PARAM", errMsg)
	}

	days, errMsg := middleware.ValidateDays(
		fiber.Query[int](c, "days", middleware.DefaultSurgeDays), middleware.MaxSurgeDays)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PARAM", errMsg)
	}

	velocityDays, errMsg := middleware.ValidateVelocityDays(
		fiber.Query[float64](c, "velocity_days", middleware.DefaultVelocityDays))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PARAM", errMsg)
	}

	resp, err := h.surge.GetSurgeVideos(c.Context(), model.SurgeParams{
		Platform:     platform,
		Limit:        limit,
		Days:         days,
		VelocityDays: velocityDays,
	})
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute surge ranking")
	}

	// An empty window is a valid outcome, not an error.
	return c.JSON(resp)
}

// GetHotCategories handles GET /api/trends/categories/hot
func (h *TrendHandler) GetHotCategories(c fiber.Ctx) error {
	platform, errMsg := middleware.ValidateOptionalPlatform(fiber.Query[string](c, "platform"), h.platforms)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PARAM", errMsg)
	}

	limit, errMsg := middleware.ValidateLimit(
		fiber.Query[int](c, "limit", middleware.DefaultHotLimit), middleware.MaxSurgeLimit)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PARAM", errMsg)
	}

	resp, err := h.trends.HotCategories(c.Context(), platform, limit)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch category trends")
	}

	return c.JSON(resp)
}

// ListCategories handles GET /api/trends/categories
func (h *TrendHandler) ListCategories(c fiber.Ctx) error {
	limit, errMsg := middleware.ValidateLimit(
		fiber.Query[int](c, "limit", middleware.DefaultCategoryListLimit), middleware.MaxCategoryListLimit)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PARAM", errMsg)
	}

	resp, err := h.trends.ListCategories(c.Context(), limit)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch categories")
	}

	return c.JSON(resp)
}

// GetRecommendations handles GET /api/trends/categories/:category/recommendations
func (h *TrendHandler) GetRecommendations(c fiber.Ctx) error {
	category, errMsg := middleware.ValidateCategory(c.Params("category"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PARAM", errMsg)
	}

	platform, errMsg := middleware.ValidateOptionalPlatform(fiber.Query[string](c, "platform"), h.platforms)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PARAM", errMsg)
	}

	limit, errMsg := middleware.ValidateLimit(
		fiber.Query[int](c, "limit", middleware.DefaultHotLimit), middleware.MaxSurgeLimit)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PARAM", errMsg)
	}

	days, errMsg := middleware.ValidateDays(
		fiber.Query[int](c, "days", middleware.DefaultRecDays), middleware.MaxRecDays)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PARAM", errMsg)
	}

	resp, err := h.trends.Recommendations(c.Context(), category, platform, days, limit)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch recommendations")
	}

	return c.JSON(resp)
}
