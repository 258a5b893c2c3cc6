package handlers

import (
	"encoding/json"
	"net/http"

	"megapicks-go/logging"
	"megapicks-go/services"

	"github.com/cockroachdb/errors"
)

// errorResponse is the JSON body every failed request returns
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Errorf("Encoding response: %v", err)
	}
}

// writeError maps the service error taxonomy onto HTTP statuses. Validation
// failures are the contestant's to fix; conflicts are retryable; everything
// else is a server fault whose detail stays in the logs.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUnknownContestant):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrSubmissionConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "a concurrent submission won, retry"})
	case errors.Is(err, services.ErrSubmissionLocked):
		writeJSON(w, http.StatusLocked, errorResponse{Error: err.Error()})
	case services.IsValidationError(err):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		logging.Errorf("Request failed: %+v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
