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

type VoteHandler struct {
	svc *service.VoteService
}

func NewVoteHandler(svc *service.VoteService) *VoteHandler {
	return &VoteHandler{svc: svc}
}

// Submit handles POST /api/votes
// Authenticated voters send their hashed userId; anonymous voters omit it
// and are deduplicated by salted IP hash instead.
func (h *VoteHandler) Submit(c fiber.Ctx) error {
	var req model.VoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	videoID, errMsg := middleware.ValidateVideoID(req.VideoID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.VideoID = videoID

	// userId is optional; validate only when present
	if req.UserID != "" {
		userID, errMsg := middleware.ValidateUserID(req.UserID)
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
		req.UserID = userID
	}

	resp, err := h.svc.Submit(c.Context(), req, c.IP())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateSignal):
			return middleware.ErrorResponse(c, fiber.StatusConflict, "DUPLICATE_VOTE", "A vote from this voter is already recorded for this video")
		case errors.Is(err, repository.ErrNotEligible):
			return middleware.ErrorResponse(c, fiber.StatusUnprocessableEntity, "VIDEO_NOT_ELIGIBLE", "Video is not approved for voting")
		case errors.Is(err, pgx.ErrNoRows):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Video not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit vote")
	}

	Metrics.VotesTotal.WithLabelValues("free").Inc()

	return c.Status(fiber.StatusCreated).JSON(resp)
}
