package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tably/tably/internal/engine"
	"github.com/tably/tably/internal/logging"
	"github.com/tably/tably/internal/source"
)

// ErrorResponse is the JSON envelope for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeError logs the failure with request context and writes a JSON
// error envelope.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"code", code,
		"error", message,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message, Code: code})
}

// respondLoadFailure maps a source or parse failure onto the API error
// taxonomy: unreachable source -> 502, reachable but unusable data -> 422.
func (s *Server) respondLoadFailure(w http.ResponseWriter, r *http.Request, err error) {
	var le *source.LoadError
	switch {
	case errors.As(err, &le):
		writeError(w, r, http.StatusBadGateway, "SOURCE_UNAVAILABLE", le.Error())
	case errors.Is(err, engine.ErrEmptyData):
		writeError(w, r, http.StatusUnprocessableEntity, "EMPTY_DATA", "the CSV source contains no data rows")
	default:
		writeError(w, r, http.StatusInternalServerError, "INTERNAL", "unexpected error while loading data")
	}
}

// writeJSON encodes v as JSON. Encoding errors are logged since headers
// are already sent.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode failed", "error", err)
	}
}
