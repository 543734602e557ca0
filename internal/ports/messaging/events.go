package messaging

import "time"

// SalarySyncEvent is the JSON payload sent via SQS for the payroll queue.
// The payroll worker forwards the snapshot to the legacy HR system.
type SalarySyncEvent struct {
	SalaryRecordID int64     `json:"salaryRecordId"`
	EmployeeID     string    `json:"employeeId"`
	Month          string    `json:"month"`
	FinalSalary    float64   `json:"finalSalary"`
	SnapshotAt     time.Time `json:"snapshotAt"`
}

// Email event kinds.
const (
	EmailKindSalarySummary      = "SALARY_SUMMARY"
	EmailKindEnrollmentDecision = "ENROLLMENT_DECISION"
)

// EmailEvent is the JSON payload sent via SQS for the email queue.
type EmailEvent struct {
	Kind           string    `json:"kind"`
	EmployeeID     string    `json:"employeeId,omitempty"`
	SalaryRecordID int64     `json:"salaryRecordId,omitempty"`
	Month          string    `json:"month,omitempty"`
	FinalSalary    float64   `json:"finalSalary,omitempty"`
	UserID         string    `json:"userId,omitempty"`
	CourseID       string    `json:"courseId,omitempty"`
	Approved       bool      `json:"approved,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}
