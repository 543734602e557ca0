package handler

import (
	"encoding/json"
	"net/http"

	"learnhr.service/internal/core/model"
	"learnhr.service/internal/ports/repository"
)

type PolicyHandler struct {
	Repo repository.PolicyRepository
}

// Get handles GET /policy.
func (h *PolicyHandler) Get(w http.ResponseWriter, r *http.Request) {
	policy, err := h.Repo.Get(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if policy == nil {
		http.Error(w, "No company policy configured", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, policy)
}

// Update handles PUT /policy (admin action).
func (h *PolicyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var policy model.CompanyPolicy
	if err := json.NewDecoder(r.Body).Decode(&policy); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if policy.LateThresholdMinutes < 0 || policy.WorkingDaysPerMonth < 0 {
		http.Error(w, "Threshold and working days must be non-negative", http.StatusBadRequest)
		return
	}
	if policy.WorkStart == "" || policy.WorkEnd == "" {
		http.Error(w, "Work start and end times are required", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Save(r.Context(), &policy); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, policy)
}
