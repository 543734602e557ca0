package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"learnhr.service/internal/core"
)

type LearningHandler struct {
	Progress *core.ProgressService
	Quizzes  *core.QuizService
}

type progressTickRequest struct {
	UserID         string  `json:"userId"`
	LessonID       string  `json:"lessonId"`
	CourseID       string  `json:"courseId"`
	WatchedSeconds float64 `json:"watchedSeconds"`
	TotalSeconds   int     `json:"totalSeconds"`
}

// SaveProgress handles POST /progress: one playback tick.
func (h *LearningHandler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	var req progressTickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.LessonID == "" {
		http.Error(w, "UserID and lessonId are required", http.StatusBadRequest)
		return
	}
	if req.WatchedSeconds < 0 {
		http.Error(w, "Watched seconds must be non-negative", http.StatusBadRequest)
		return
	}

	progress, err := h.Progress.SaveTick(r.Context(), req.UserID, req.LessonID, req.CourseID,
		req.WatchedSeconds, req.TotalSeconds)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

// GetProgress handles GET /progress/{userId}/{lessonId}. The response carries
// the position a reinitialized player should seek to.
func (h *LearningHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	progress, resumeAt, err := h.Progress.Get(r.Context(), vars["userId"], vars["lessonId"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"progress": progress, "resumeAt": resumeAt})
}

type quizSubmitRequest struct {
	UserID           string `json:"userId"`
	LessonID         string `json:"lessonId"`
	CourseID         string `json:"courseId"`
	Answers          []int  `json:"answers"`
	AnswerKey        []int  `json:"answerKey"`
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
}

// SubmitQuiz handles POST /quizzes. Unanswered questions are sent as -1.
func (h *LearningHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.LessonID == "" {
		http.Error(w, "UserID and lessonId are required", http.StatusBadRequest)
		return
	}

	result, err := h.Quizzes.Submit(r.Context(), req.UserID, req.LessonID, req.CourseID,
		req.Answers, req.AnswerKey, req.TimeSpentSeconds)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// GetQuizResult handles GET /quizzes/{userId}/{lessonId}.
func (h *LearningHandler) GetQuizResult(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	result, err := h.Quizzes.Result(r.Context(), vars["userId"], vars["lessonId"])
	if err != nil {
		respondError(w, err)
		return
	}
	if result == nil {
		http.Error(w, "No quiz result", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// DiscardQuizResult handles DELETE /quizzes/{userId}/{lessonId}, freeing the
// user for a re-attempt.
func (h *LearningHandler) DiscardQuizResult(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.Quizzes.Discard(r.Context(), vars["userId"], vars["lessonId"]); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
