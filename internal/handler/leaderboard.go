package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/omega1entertainment/KOSCOCO-sub001/internal/middleware"
	"github.com/omega1entertainment/KOSCOCO-sub001/internal/model"
	"github.com/omega1entertainment/KOSCOCO-sub001/internal/service"
)

type LeaderboardHandler struct {
	svc *service.LeaderboardService
}

func NewLeaderboardHandler(svc *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

// Get handles GET /api/leaderboard?categoryId=X&phaseId=Y
// Both filters are optional; omitting one means "all" on that dimension.
func (h *LeaderboardHandler) Get(c fiber.Ctx) error {
	categoryID, errMsg := middleware.ValidateScopeID(fiber.Query[string](c, "categoryId"), "categoryId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_SCOPE", errMsg)
	}

	phaseID, errMsg := middleware.ValidateScopeID(fiber.Query[string](c, "phaseId"), "phaseId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_SCOPE", errMsg)
	}

	scope := model.Scope{CategoryID: categoryID, PhaseID: phaseID}

	start := time.Now()
	resp, err := h.svc.Standings(c.Context(), scope)
	if err != nil {
		if errors.Is(err, service.ErrInvalidScope) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_SCOPE", "Scope ids must be positive integers")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute leaderboard")
	}
	Metrics.LeaderboardDuration.Observe(time.Since(start).Seconds())

	return c.JSON(resp)
}
