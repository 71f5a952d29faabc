package httpadapter

import (
	"net/http"

	"github.com/essaylab/essaylab-backend/internal/core/domain"
)

// latestPractice serves the newest worker-generated practice set. Before
// the first completed upload there is none, which is an empty queue rather
// than an error.
func (rt *Router) latestPractice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
		return
	}

	set, err := rt.practice.LatestSet(r.Context())
	if err != nil {
		if domain.IsKind(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]any{"exercises": []domain.Exercise{}})
			return
		}
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}
