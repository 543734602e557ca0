package repository

import (
	"context"
	"time"

	"learnhr.service/internal/core/model"
)

// AttendanceRepository contract. Lookups that find nothing return (nil, nil).
type AttendanceRepository interface {
	GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*model.AttendanceRecord, error)
	CreateCheckIn(ctx context.Context, rec *model.AttendanceRecord) (int64, error)
	UpdateCheckOut(ctx context.Context, id int64, checkOutAt time.Time, address, photoURL string, workedHours float64, status model.AttendanceStatus) error
	ListMonth(ctx context.Context, employeeID, month string) ([]model.AttendanceRecord, error)
	CountMonthStatuses(ctx context.Context, employeeID, month string) (model.AttendanceCounts, error)
}

// PolicyRepository contract for the single company policy row.
type PolicyRepository interface {
	Get(ctx context.Context) (*model.CompanyPolicy, error)
	Save(ctx context.Context, p *model.CompanyPolicy) error
}

// SalaryRepository contract for monthly payroll snapshots.
type SalaryRepository interface {
	Get(ctx context.Context, employeeID, month string) (*model.SalaryRecord, error)
	GetByID(ctx context.Context, id int64) (*model.SalaryRecord, error)
	Upsert(ctx context.Context, rec *model.SalaryRecord) (int64, error)
	UpdateSyncStatus(ctx context.Context, id int64, status model.SyncStatus, retryCount int) error
	UpdateEmailStatus(ctx context.Context, id int64, status model.EmailStatus, retryCount int) error
}

// ProgressRepository contract for per-lesson video progress.
type ProgressRepository interface {
	Get(ctx context.Context, userID, lessonID string) (*model.LessonProgress, error)
	Upsert(ctx context.Context, p *model.LessonProgress) error
}

// QuizRepository contract. One result per (user, lesson).
type QuizRepository interface {
	Get(ctx context.Context, userID, lessonID string) (*model.QuizResult, error)
	Create(ctx context.Context, r *model.QuizResult) error
	Delete(ctx context.Context, userID, lessonID string) error
}

// CourseRepository contract for course membership. One row per (course, user)
// keeps pending and enrolled mutually exclusive at the schema level.
type CourseRepository interface {
	GetMember(ctx context.Context, courseID, userID string) (*model.CourseMember, error)
	RequestEnrollment(ctx context.Context, courseID, userID string) error
	Approve(ctx context.Context, courseID, userID string) error
	RemoveMember(ctx context.Context, courseID, userID string) error
	ListMembers(ctx context.Context, courseID string, state model.EnrollmentState) ([]model.CourseMember, error)
}
