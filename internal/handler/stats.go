package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/BumsooCho/trendix-ai-server/internal/middleware"
	"github.com/BumsooCho/trendix-ai-server/internal/service"
)

type StatsHandler struct {
	svc *service.TrendService
}

func NewStatsHandler(svc *service.TrendService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	stats, err := h.svc.GetStats(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch statistics")
	}

	return c.JSON(stats)
}
