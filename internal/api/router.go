package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"learnhr.service/internal/api/handler"
	"learnhr.service/internal/core"
	"learnhr.service/internal/ports/network"
	"learnhr.service/internal/ports/repository"
)

// Services groups everything the router needs wired in.
type Services struct {
	Attendance *core.AttendanceService
	Payroll    *core.PayrollService
	Progress   *core.ProgressService
	Quizzes    *core.QuizService
	Enrollment *core.EnrollmentService
	Policies   repository.PolicyRepository
	Resolver   network.AddressResolver
}

// NewRouter sets up the gorilla/mux router and defines all API routes.
func NewRouter(svc Services) *mux.Router {

	attendanceHandler := handler.AttendanceHandler{Service: svc.Attendance, Resolver: svc.Resolver}
	payrollHandler := handler.PayrollHandler{Service: svc.Payroll}
	learningHandler := handler.LearningHandler{Progress: svc.Progress, Quizzes: svc.Quizzes}
	enrollmentHandler := handler.EnrollmentHandler{Service: svc.Enrollment}
	policyHandler := handler.PolicyHandler{Repo: svc.Policies}

	r := mux.NewRouter()
	r.Use(RequestID)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/attendance/check-in", attendanceHandler.CheckIn).Methods(http.MethodPost)
	api.HandleFunc("/attendance/check-out", attendanceHandler.CheckOut).Methods(http.MethodPost)
	api.HandleFunc("/attendance/{employeeId}", attendanceHandler.History).Methods(http.MethodGet)

	api.HandleFunc("/payroll/preview", payrollHandler.Preview).Methods(http.MethodPost)
	api.HandleFunc("/payroll/snapshot", payrollHandler.Snapshot).Methods(http.MethodPost)
	api.HandleFunc("/payroll/manual", payrollHandler.Manual).Methods(http.MethodPost)
	api.HandleFunc("/payroll/{employeeId}/{month}", payrollHandler.Get).Methods(http.MethodGet)

	api.HandleFunc("/progress", learningHandler.SaveProgress).Methods(http.MethodPost)
	api.HandleFunc("/progress/{userId}/{lessonId}", learningHandler.GetProgress).Methods(http.MethodGet)

	api.HandleFunc("/quizzes", learningHandler.SubmitQuiz).Methods(http.MethodPost)
	api.HandleFunc("/quizzes/{userId}/{lessonId}", learningHandler.GetQuizResult).Methods(http.MethodGet)
	api.HandleFunc("/quizzes/{userId}/{lessonId}", learningHandler.DiscardQuizResult).Methods(http.MethodDelete)

	api.HandleFunc("/courses/{courseId}/enrollments", enrollmentHandler.Request).Methods(http.MethodPost)
	api.HandleFunc("/courses/{courseId}/enrollments/{userId}", enrollmentHandler.Leave).Methods(http.MethodDelete)
	api.HandleFunc("/courses/{courseId}/enrollments/{userId}/approve", enrollmentHandler.Approve).Methods(http.MethodPost)
	api.HandleFunc("/courses/{courseId}/enrollments/{userId}/reject", enrollmentHandler.Reject).Methods(http.MethodPost)
	api.HandleFunc("/courses/{courseId}/roster", enrollmentHandler.Roster).Methods(http.MethodGet)

	api.HandleFunc("/policy", policyHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/policy", policyHandler.Update).Methods(http.MethodPut)

	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Service is operational."))
	}).Methods(http.MethodGet)

	return r
}
