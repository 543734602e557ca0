package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"learnhr.service/internal/core"
	"learnhr.service/internal/ports/storage"
)

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// respondError maps domain errors onto HTTP statuses. Anything unrecognized
// is a plain 500 so storage failures never leak details to the client.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotOnCompanyNetwork):
		http.Error(w, "Check-in/out is only allowed from the company network", http.StatusForbidden)
	case errors.Is(err, core.ErrAlreadyCheckedIn),
		errors.Is(err, core.ErrAlreadyCheckedOut),
		errors.Is(err, core.ErrCheckInRequired),
		errors.Is(err, core.ErrCheckOutBeforeIn),
		errors.Is(err, core.ErrActiveQuizResult),
		errors.Is(err, core.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, core.ErrInvalidPolicy),
		errors.Is(err, core.ErrInvalidDuration),
		errors.Is(err, core.ErrAnswerCountMismatch):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, core.ErrQuizResultNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, storage.ErrUploadTimeout):
		http.Error(w, "Photo upload timed out, please retry", http.StatusGatewayTimeout)
	case errors.Is(err, storage.ErrUploadFailed):
		http.Error(w, "Photo upload failed, check your file", http.StatusBadGateway)
	default:
		http.Error(w, "Service error processing request", http.StatusInternalServerError)
	}
}
