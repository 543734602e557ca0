package model

import (
	"time"
)

// AttendanceStatus is the derived classification of a day of attendance.
// It is never set directly by a user; check-in and check-out decide it.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "PRESENT"
	StatusLate    AttendanceStatus = "LATE"
	StatusHalfDay AttendanceStatus = "HALF_DAY"
	StatusAbsent  AttendanceStatus = "ABSENT"
)

// SyncStatus defines the state of the legacy HR sync for a salary snapshot.
type SyncStatus string

const (
	StatusSyncPending    SyncStatus = "PENDING"
	StatusSyncProcessing SyncStatus = "PROCESSING"
	StatusSyncCompleted  SyncStatus = "COMPLETED"
	StatusSyncFailed     SyncStatus = "FAILED"
)

// EmailStatus defines the state of the notification email for a salary snapshot.
type EmailStatus string

const (
	StatusEmailPending    EmailStatus = "PENDING"
	StatusEmailProcessing EmailStatus = "PROCESSING"
	StatusEmailCompleted  EmailStatus = "COMPLETED"
	StatusEmailFailed     EmailStatus = "FAILED"
)

// EnrollmentState is a user's relation to a course. A user holds at most one
// membership row per course, so nobody can be pending and enrolled at once.
type EnrollmentState string

const (
	EnrollmentNone     EnrollmentState = "NONE"
	EnrollmentPending  EnrollmentState = "PENDING"
	EnrollmentEnrolled EnrollmentState = "ENROLLED"
)

// CompanyPolicy holds the administrator-configured attendance and payroll
// rules. There is a single active policy row.
type CompanyPolicy struct {
	WorkStart            string    `json:"workStart"` // "HH:MM", local office time
	WorkEnd              string    `json:"workEnd"`
	LateThresholdMinutes int       `json:"lateThresholdMinutes"`
	WorkingDaysPerMonth  int       `json:"workingDaysPerMonth"`
	AllowedNetworks      []string  `json:"allowedNetworks"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// AttendanceRecord is one employee's attendance for one calendar date.
// Created on check-in, completed on check-out, immutable afterwards.
type AttendanceRecord struct {
	ID               int64            `json:"id"`
	EmployeeID       string           `json:"employeeId"`
	Date             string           `json:"date"` // "2006-01-02"
	CheckInAt        time.Time        `json:"checkInAt"`
	CheckOutAt       *time.Time       `json:"checkOutAt,omitempty"`
	CheckInAddress   string           `json:"checkInAddress"`
	CheckOutAddress  string           `json:"checkOutAddress,omitempty"`
	CheckInPhotoURL  string           `json:"checkInPhotoUrl,omitempty"`
	CheckOutPhotoURL string           `json:"checkOutPhotoUrl,omitempty"`
	Status           AttendanceStatus `json:"status"`
	LateMinutes      int              `json:"lateMinutes"`
	WorkedHours      float64          `json:"workedHours,omitempty"`
}

// AttendanceCounts aggregates one employee's statuses over a month.
type AttendanceCounts struct {
	PresentDays int `json:"presentDays"`
	LateDays    int `json:"lateDays"`
	HalfDays    int `json:"halfDays"`
}

// SalaryRecord is the persisted payroll snapshot for one employee and month.
// Recomputing a snapshot overwrites the previous one for the same key.
type SalaryRecord struct {
	ID              int64       `json:"id"`
	EmployeeID      string      `json:"employeeId"`
	Month           string      `json:"month"` // "2006-01"
	BaseSalary      float64     `json:"baseSalary"`
	WorkingDays     int         `json:"workingDays"`
	PresentDays     int         `json:"presentDays"`
	AbsentDays      int         `json:"absentDays"`
	LateDays        int         `json:"lateDays"`
	HalfDays        int         `json:"halfDays"`
	TotalDeduction  float64     `json:"totalDeduction"`
	FinalSalary     float64     `json:"finalSalary"`
	SyncStatus      SyncStatus  `json:"syncStatus"`
	SyncRetryCount  int         `json:"syncRetryCount"`
	EmailStatus     EmailStatus `json:"emailStatus"`
	EmailRetryCount int         `json:"emailRetryCount"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// LessonProgress tracks how much of a lesson's video a user has watched.
// WatchedSeconds never decreases and Completed never flips back to false.
type LessonProgress struct {
	UserID         string    `json:"userId"`
	LessonID       string    `json:"lessonId"`
	CourseID       string    `json:"courseId"`
	WatchedSeconds int       `json:"watchedSeconds"`
	TotalSeconds   int       `json:"totalSeconds"`
	Completed      bool      `json:"completed"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// QuizResult is the single active result for a (user, lesson). A re-attempt
// requires discarding the previous result first.
type QuizResult struct {
	UserID           string    `json:"userId"`
	LessonID         string    `json:"lessonId"`
	CourseID         string    `json:"courseId"`
	Answers          []int     `json:"answers"` // selected option index per question, -1 = unanswered
	CorrectCount     int       `json:"correctCount"`
	TotalQuestions   int       `json:"totalQuestions"`
	Score            int       `json:"score"` // 0-100
	Passed           bool      `json:"passed"`
	TimeSpentSeconds int       `json:"timeSpentSeconds"`
	CompletedAt      time.Time `json:"completedAt"`
}

// CourseMember is one row of a course's membership roster.
type CourseMember struct {
	CourseID  string          `json:"courseId"`
	UserID    string          `json:"userId"`
	State     EnrollmentState `json:"state"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
