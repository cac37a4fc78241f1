package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/matzehuels/scenesvg/pkg/errors"
)

type errorResponse struct {
	Error     string         `json:"error"`
	Code      apperrors.Code `json:"code,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

// statusFor maps error codes to HTTP statuses.
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeFileNotFound, apperrors.ErrCodeSessionNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeEmptySelection:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	if apperrors.IsUserError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeError answers with a JSON error. Internal errors are logged and
// reported without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := errorResponse{
		Error:     apperrors.UserMessage(err),
		Code:      apperrors.GetCode(err),
		RequestID: requestIDFrom(r.Context()),
	}
	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
		s.opts.Logger.Error("request failed", "path", r.URL.Path, "request_id", resp.RequestID, "error", err)
		if resp.Code == "" {
			resp.Error = http.StatusText(status)
			resp.Code = apperrors.ErrCodeInternal
		}
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
