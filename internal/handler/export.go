package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/omega1entertainment/KOSCOCO-sub001/internal/middleware"
	"github.com/omega1entertainment/KOSCOCO-sub001/internal/model"
	"github.com/omega1entertainment/KOSCOCO-sub001/internal/service"
)

type ExportHandler struct {
	svc *service.LeaderboardService
}

func NewExportHandler(svc *service.LeaderboardService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// Export handles GET /api/leaderboard/export
// Streams the current standings as CSV for offline review by organizers.
func (h *ExportHandler) Export(c fiber.Ctx) error {
	categoryID, errMsg := middleware.ValidateScopeID(fiber.Query[string](c, "categoryId"), "categoryId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_SCOPE", errMsg)
	}

	phaseID, errMsg := middleware.ValidateScopeID(fiber.Query[string](c, "phaseId"), "phaseId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_SCOPE", errMsg)
	}

	resp, err := h.svc.Standings(c.Context(), model.Scope{CategoryID: categoryID, PhaseID: phaseID})
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute leaderboard")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"rank", "video_id", "title", "owner_id", "vote_count", "avg_creativity", "avg_quality", "overall_score"})
	for _, e := range resp.Entries {
		_ = w.Write([]string{
			strconv.Itoa(e.Rank),
			e.VideoID,
			e.Title,
			e.OwnerID,
			strconv.Itoa(e.VoteCount),
			strconv.FormatFloat(e.AvgCreativity, 'f', 2, 64),
			strconv.FormatFloat(e.AvgQuality, 'f', 2, 64),
			strconv.FormatFloat(e.OverallScore, 'f', 2, 64),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to write CSV")
	}

	filename := fmt.Sprintf("leaderboard-%s.csv", time.Now().UTC().Format("20060102-150405"))
	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(buf.Bytes())
}
