package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"learnhr.service/internal/core"
	"learnhr.service/internal/core/model"
)

type EnrollmentHandler struct {
	Service *core.EnrollmentService
}

type enrollRequest struct {
	UserID string `json:"userId"`
}

// Request handles POST /courses/{courseId}/enrollments (student action).
func (h *EnrollmentHandler) Request(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["courseId"]

	var req enrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		http.Error(w, "UserID is required", http.StatusBadRequest)
		return
	}

	if err := h.Service.Request(r.Context(), courseID, req.UserID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]any{"state": model.EnrollmentPending})
}

// Leave handles DELETE /courses/{courseId}/enrollments/{userId}: a pending
// request is cancelled, an enrolled student is unenrolled.
func (h *EnrollmentHandler) Leave(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courseID, userID := vars["courseId"], vars["userId"]

	state, err := h.Service.State(r.Context(), courseID, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	switch state {
	case model.EnrollmentPending:
		err = h.Service.Cancel(r.Context(), courseID, userID)
	case model.EnrollmentEnrolled:
		err = h.Service.Unenroll(r.Context(), courseID, userID)
	default:
		http.Error(w, "User has no relation to this course", http.StatusNotFound)
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Approve handles POST /courses/{courseId}/enrollments/{userId}/approve (admin action).
func (h *EnrollmentHandler) Approve(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.Service.Approve(r.Context(), vars["courseId"], vars["userId"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"state": model.EnrollmentEnrolled})
}

// Reject handles POST /courses/{courseId}/enrollments/{userId}/reject (admin action).
func (h *EnrollmentHandler) Reject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.Service.Reject(r.Context(), vars["courseId"], vars["userId"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"state": model.EnrollmentNone})
}

// Roster handles GET /courses/{courseId}/roster.
func (h *EnrollmentHandler) Roster(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["courseId"]

	students, pending, err := h.Service.Roster(r.Context(), courseID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"students":        students,
		"pendingStudents": pending,
	})
}
