package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"learnhr.service/internal/core"
)

type PayrollHandler struct {
	Service *core.PayrollService
}

type snapshotRequest struct {
	EmployeeID string  `json:"employeeId"`
	Month      string  `json:"month"`
	BaseSalary float64 `json:"baseSalary"`
}

type manualRequest struct {
	EmployeeID  string  `json:"employeeId"`
	Month       string  `json:"month"`
	BaseSalary  float64 `json:"baseSalary"`
	AbsentDays  int     `json:"absentDays"`
	LateDays    int     `json:"lateDays"`
	WorkingDays int     `json:"workingDays"` // 0 = use the fixed default of 26
}

// Preview handles POST /payroll/preview: computes the attendance-derived
// snapshot without saving it.
func (h *PayrollHandler) Preview(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSnapshotRequest(w, r)
	if !ok {
		return
	}

	rec, err := h.Service.Preview(r.Context(), req.EmployeeID, req.Month, req.BaseSalary)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// Snapshot handles POST /payroll/snapshot: computes, saves and queues the
// legacy sync and summary email.
func (h *PayrollHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSnapshotRequest(w, r)
	if !ok {
		return
	}

	rec, err := h.Service.Snapshot(r.Context(), req.EmployeeID, req.Month, req.BaseSalary)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

// Manual handles POST /payroll/manual: the manual-entry formula over
// administrator-supplied counts.
func (h *PayrollHandler) Manual(w http.ResponseWriter, r *http.Request) {
	var req manualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.EmployeeID == "" || req.Month == "" {
		http.Error(w, "EmployeeID and month are required", http.StatusBadRequest)
		return
	}
	if req.BaseSalary < 0 || req.AbsentDays < 0 || req.LateDays < 0 || req.WorkingDays < 0 {
		http.Error(w, "Counts and base salary must be non-negative", http.StatusBadRequest)
		return
	}

	rec, err := h.Service.SaveManual(r.Context(), req.EmployeeID, req.Month, req.BaseSalary,
		req.AbsentDays, req.LateDays, req.WorkingDays)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

// Get handles GET /payroll/{employeeId}/{month}.
func (h *PayrollHandler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	rec, err := h.Service.Get(r.Context(), vars["employeeId"], vars["month"])
	if err != nil {
		respondError(w, err)
		return
	}
	if rec == nil {
		http.Error(w, "No salary snapshot for this month", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func decodeSnapshotRequest(w http.ResponseWriter, r *http.Request) (snapshotRequest, bool) {
	var req snapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return req, false
	}
	if req.EmployeeID == "" || req.Month == "" {
		http.Error(w, "EmployeeID and month are required", http.StatusBadRequest)
		return req, false
	}
	if req.BaseSalary < 0 {
		http.Error(w, "Base salary must be non-negative", http.StatusBadRequest)
		return req, false
	}
	return req, true
}
