package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omega1entertainment/KOSCOCO-sub001/internal/model"
)

func TestValidateScore_Bounds(t *testing.T) {
	for n := 0; n <= 10; n++ {
		assert.NoError(t, ValidateScore(n), "score %d should be accepted", n)
	}

	assert.ErrorIs(t, ValidateScore(-1), ErrScoreOutOfRange)
	assert.ErrorIs(t, ValidateScore(11), ErrScoreOutOfRange)
	assert.ErrorIs(t, ValidateScore(100), ErrScoreOutOfRange)
}

func TestJudgeService_Score_RejectsOutOfRangeBeforeStorage(t *testing.T) {
	// Validation runs before any ledger access, so a service with no
	// repository must still reject bad sub-scores.
	svc := NewJudgeService(nil, nil)

	_, err := svc.Score(context.Background(), model.JudgeScoreRequest{
		VideoID:    "vid-a",
		JudgeID:    "judge-1",
		Creativity: 12,
		Quality:    5,
	})
	require.ErrorIs(t, err, ErrScoreOutOfRange)

	_, err = svc.Score(context.Background(), model.JudgeScoreRequest{
		VideoID:    "vid-a",
		JudgeID:    "judge-1",
		Creativity: 5,
		Quality:    -3,
	})
	require.ErrorIs(t, err, ErrScoreOutOfRange)
}
