package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Sentinel errors mapped to HTTP status codes in writeError. Handlers
// pass these (optionally wrapped with fmt.Errorf("...: %w", err)) to
// writeError, which writes the error response for them.
var (
	ErrMalformedRequest = errors.New("malformed request")
	ErrValidation       = errors.New("validation failed")
	ErrQueueFull        = errors.New("server busy")
)

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps a sentinel error to its HTTP status and writes the
// `{"error": "<reason>"}` body spec.md §7 requires. Unrecognized errors
// fall back to 500, which should never be reachable from a handler that
// only returns the sentinels above.
func writeError(w http.ResponseWriter, reason string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrMalformedRequest):
		status = http.StatusBadRequest
	case errors.Is(err, ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, ErrQueueFull):
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, errorBody{Error: reason})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
