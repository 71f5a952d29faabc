package httpadapter

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/xuri/excelize/v2"

	"github.com/essaylab/essaylab-backend/internal/core/domain"
)

func (rt *Router) latestScores(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
		return
	}

	subjects, err := rt.scores.Latest(r.Context())
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, subjects)
}

// exportScores streams the snapshot history as an XLSX workbook for
// offline review.
func (rt *Router) exportScores(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
		return
	}

	snapshots, err := rt.scores.History(r.Context(), 500)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	workbook, err := buildScoreWorkbook(snapshots)
	if err != nil {
		rt.writeError(w, r, fmt.Errorf("build score workbook: %w", err))
		return
	}
	defer workbook.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="scores.xlsx"`)
	if _, err := workbook.WriteTo(w); err != nil {
		// Headers are already written; nothing left to do but log.
		slog.Error("write_score_workbook",
			"request_id", requestIDFromContext(r.Context()),
			"error", err,
		)
	}
}

func buildScoreWorkbook(snapshots []domain.ScoreSnapshot) (*excelize.File, error) {
	const sheet = "Scores"
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	header := []any{"Updated At"}
	for _, c := range domain.Categories {
		header = append(header, string(c))
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, snapshot := range snapshots {
		row := []any{snapshot.UpdatedAt.Format("2006-01-02 15:04:05")}
		for _, c := range domain.Categories {
			row = append(row, snapshot.Scores.Get(c))
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}
