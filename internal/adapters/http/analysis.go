package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/essaylab/essaylab-backend/internal/core/domain"
)

// analyzeText scores raw text without going through document upload.
func (rt *Router) analyzeText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid json"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "text is required"})
		return
	}

	analysis, err := rt.analysis.Analyze(r.Context(), req.Text)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (rt *Router) generateHomework(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
		return
	}

	var req struct {
		Scores *domain.ScoreSet `json:"scores"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid json"})
		return
	}
	if req.Scores == nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "scores are required"})
		return
	}

	homework, err := rt.analysis.GenerateHomework(r.Context(), *req.Scores)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordExercisesServed(serviceName, "generate", len(homework.Exercises))
	}
	writeJSON(w, http.StatusOK, map[string]*domain.Homework{"homework": homework})
}
