package httpadapter

import (
	"net/http"
)

// upload runs the full pipeline for one multipart file and returns the
// composite result: extracted text, analysis and homework.
func (rt *Router) upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	outcome, err := rt.pipeline.Run(r.Context(), fileHeader.Filename, mimeType, fileHeader.Size, file)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordExercisesServed(serviceName, "upload", len(outcome.Homework.Exercises))
	}
	writeJSON(w, http.StatusOK, outcome)
}
