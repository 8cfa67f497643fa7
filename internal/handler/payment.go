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

type PaymentHandler struct {
	svc *service.PaidVoteService
}

func NewPaymentHandler(svc *service.PaidVoteService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// Confirm handles POST /api/payments/confirm
// Called by the payment provider webhook once a purchase settles. Providers
// retry on timeout, so a replayed transactionId must ack with the original
// result instead of double-counting.
func (h *PaymentHandler) Confirm(c fiber.Ctx) error {
	var req model.PaidVoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	txID, errMsg := middleware.ValidateTransactionID(req.TransactionID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	videoID, errMsg := middleware.ValidateVideoID(req.VideoID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.VideoID = videoID

	resp, err := h.svc.Confirm(c.Context(), txID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_QUANTITY", "Quantity must be a positive integer")
		case errors.Is(err, repository.ErrPaymentConflict):
			return middleware.ErrorResponse(c, fiber.StatusConflict, "TRANSACTION_CONFLICT", "Transaction already recorded with different video or quantity")
		case errors.Is(err, repository.ErrNotEligible):
			return middleware.ErrorResponse(c, fiber.StatusUnprocessableEntity, "VIDEO_NOT_ELIGIBLE", "Video is not approved for voting")
		case errors.Is(err, pgx.ErrNoRows):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Video not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to confirm payment")
	}

	if resp.Replay {
		return c.JSON(resp)
	}

	Metrics.VotesTotal.WithLabelValues("paid").Add(float64(resp.Quantity))

	return c.Status(fiber.StatusCreated).JSON(resp)
}
