package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/omega1entertainment/KOSCOCO-sub001/internal/middleware"
	"github.com/omega1entertainment/KOSCOCO-sub001/internal/model"
	"github.com/omega1entertainment/KOSCOCO-sub001/internal/repository"
	"github.com/omega1entertainment/KOSCOCO-sub001/internal/service"
)

type JudgeHandler struct {
	svc *service.JudgeService
}

func NewJudgeHandler(svc *service.JudgeService) *JudgeHandler {
	return &JudgeHandler{svc: svc}
}

// Score handles PUT /api/judges/scores
// PUT because resubmission by the same judge replaces their earlier score.
func (h *JudgeHandler) Score(c fiber.Ctx) error {
	var req model.JudgeScoreRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	videoID, errMsg := middleware.ValidateVideoID(req.VideoID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.VideoID = videoID

	judgeID, errMsg := middleware.ValidateJudgeID(req.JudgeID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.JudgeID = judgeID

	resp, err := h.svc.Score(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScoreOutOfRange):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_SCORE", "Creativity and quality must be integers between 0 and 10")
		case errors.Is(err, repository.ErrNotEligible):
			return middleware.ErrorResponse(c, fiber.StatusUnprocessableEntity, "VIDEO_NOT_ELIGIBLE", "Video is not approved for judging")
		case errors.Is(err, pgx.ErrNoRows):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Video not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record judge score")
	}

	Metrics.JudgeScoresTotal.Inc()

	return c.JSON(resp)
}
