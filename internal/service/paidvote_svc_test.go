package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/omega1entertainment/KOSCOCO-sub001/internal/model"
)

func TestPaidVoteService_Confirm_RejectsNonPositiveQuantity(t *testing.T) {
	svc := NewPaidVoteService(nil, nil)
	txID := uuid.MustParse("3f1f8a6e-9a1d-4f6e-8f2a-1c9a7b5d4e3c")

	for _, quantity := range []int{0, -1, -50} {
		_, err := svc.Confirm(context.Background(), txID, model.PaidVoteRequest{
			VideoID:  "vid-a",
			Quantity: quantity,
		})
		require.ErrorIs(t, err, ErrInvalidQuantity, "quantity %d must be rejected", quantity)
	}
}
