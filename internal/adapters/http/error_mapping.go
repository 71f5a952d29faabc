package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/essaylab/essaylab-backend/internal/core/domain"
)

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput),
		domain.IsKind(err, domain.ErrEmailTaken):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case domain.IsKind(err, domain.ErrNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case domain.IsKind(err, domain.ErrFileType):
		return http.StatusUnsupportedMediaType
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage keeps 5xx bodies generic; pipeline internals surface only
// as details, and only in development mode.
func clientMessage(err error, status int) string {
	if status < http.StatusInternalServerError {
		switch {
		case domain.IsKind(err, domain.ErrUnauthorized):
			return domain.ErrUnauthorized.Error()
		case domain.IsKind(err, domain.ErrEmailTaken):
			return domain.ErrEmailTaken.Error()
		case domain.IsKind(err, domain.ErrFileTooLarge):
			return "file exceeds the 5 MB limit"
		case domain.IsKind(err, domain.ErrFileType):
			return "only PDF, PNG and JPEG files are accepted"
		default:
			return err.Error()
		}
	}
	return "failed to process document"
}

func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToHTTPStatus(err)
	body := errorBody{Error: clientMessage(err, status)}
	if status >= http.StatusInternalServerError {
		slog.Error("request_error",
			"request_id", requestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"status", status,
			"error", err,
		)
		if rt.cfg.IsDevelopment() {
			body.Details = err.Error()
		}
	}
	writeJSON(w, status, body)
}
