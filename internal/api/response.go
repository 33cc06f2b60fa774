package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hashicorp/go-hclog"

	"github.com/figerout/figerout/internal/collection"
	"github.com/figerout/figerout/internal/colour"
	"github.com/figerout/figerout/internal/describe"
	imgload "github.com/figerout/figerout/internal/image"
	"github.com/figerout/figerout/internal/sampler"
)

// Envelope provides a consistent JSON response structure.
type Envelope struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeEnvelope(w http.ResponseWriter, status int, env Envelope, logger hclog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// writeJSON writes data with status; statuses below 400 are successes.
func writeJSON(w http.ResponseWriter, status int, data any, logger hclog.Logger) {
	writeEnvelope(w, status, Envelope{Success: status < 400, Data: data}, logger)
}

func writeError(w http.ResponseWriter, status int, message string, logger hclog.Logger) {
	writeEnvelope(w, status, Envelope{Error: message}, logger)
}

// handleError maps domain errors to HTTP statuses. Unknown errors become 500
// and are logged; their text is not sent to the client.
func handleError(w http.ResponseWriter, err error, logger hclog.Logger) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		writeEnvelope(w, http.StatusBadRequest, Envelope{Error: verr.Error(), Fields: verr.Fields}, logger)
	case errors.Is(err, colour.ErrMalformedColour),
		errors.Is(err, colour.ErrInvalidShadeParams),
		errors.Is(err, collection.ErrNoteTooLong),
		errors.Is(err, imgload.ErrUnsupportedFormat):
		writeError(w, http.StatusBadRequest, err.Error(), logger)
	case errors.Is(err, imgload.ErrImageTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, err.Error(), logger)
	case errors.Is(err, collection.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error(), logger)
	case errors.Is(err, describe.ErrUnavailable):
		logger.Warn("description unavailable", "error", err)
		writeError(w, http.StatusServiceUnavailable, describe.ErrUnavailable.Error(), logger)
	case errors.Is(err, sampler.ErrSurfaceNotReady):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), logger)
	default:
		logger.Error("unhandled error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error", logger)
	}
}
