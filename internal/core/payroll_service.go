package core

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"learnhr.service/internal/core/model"
	"learnhr.service/internal/ports/messaging"
	"learnhr.service/internal/ports/repository"
)

// DefaultWorkingDays is the fixed divisor of the manual payroll formula.
const DefaultWorkingDays = 26

// SalaryBreakdown is the result of a payroll computation.
type SalaryBreakdown struct {
	AbsentDays     int     `json:"absentDays"`
	DailySalary    float64 `json:"dailySalary"`
	TotalDeduction float64 `json:"totalDeduction"`
	FinalSalary    float64 `json:"finalSalary"`
}

// ComputeMonthly is the attendance-derived payroll formula. Absent days are
// the residual of the working days not covered by any recorded status, and
// late and half days each cost half a daily salary.
func ComputeMonthly(base float64, workingDays, presentDays, lateDays, halfDays int) (SalaryBreakdown, error) {
	if workingDays < 1 {
		return SalaryBreakdown{}, ErrInvalidPolicy
	}

	absentDays := workingDays - presentDays - lateDays - halfDays
	if absentDays < 0 {
		absentDays = 0
	}

	daily := base / float64(workingDays)
	deduction := daily*float64(absentDays) + 0.5*daily*float64(lateDays) + 0.5*daily*float64(halfDays)

	return SalaryBreakdown{
		AbsentDays:     absentDays,
		DailySalary:    daily,
		TotalDeduction: deduction,
		FinalSalary:    math.Max(0, base-deduction),
	}, nil
}

// ComputeFromCounts is the manual-entry payroll formula. It takes absences as
// given and carries no half-day term. It is a separate business rule from
// ComputeMonthly and the two must not be unified; different admin workflows
// depend on each.
func ComputeFromCounts(base float64, absentDays, lateDays, workingDays int) (SalaryBreakdown, error) {
	if workingDays < 1 {
		return SalaryBreakdown{}, ErrInvalidPolicy
	}

	daily := base / float64(workingDays)
	deduction := daily*float64(absentDays) + 0.5*daily*float64(lateDays)

	return SalaryBreakdown{
		AbsentDays:     absentDays,
		DailySalary:    daily,
		TotalDeduction: deduction,
		FinalSalary:    math.Max(0, base-deduction),
	}, nil
}

// PayrollService computes and persists monthly salary snapshots and hands the
// saved snapshot off to the background queues.
type PayrollService struct {
	salaries   repository.SalaryRepository
	attendance repository.AttendanceRepository
	policies   repository.PolicyRepository
	producer   messaging.QueueProducer
}

// NewPayrollService wires repositories and the queue producer.
func NewPayrollService(salaries repository.SalaryRepository, attendance repository.AttendanceRepository, policies repository.PolicyRepository, producer messaging.QueueProducer) *PayrollService {
	return &PayrollService{
		salaries:   salaries,
		attendance: attendance,
		policies:   policies,
		producer:   producer,
	}
}

// Preview computes a snapshot from the month's attendance without saving it.
func (s *PayrollService) Preview(ctx context.Context, employeeID, month string, baseSalary float64) (*model.SalaryRecord, error) {
	return s.compute(ctx, employeeID, month, baseSalary)
}

// Snapshot computes a snapshot, persists it (overwriting any prior snapshot
// for the same employee and month) and publishes the sync and email events.
func (s *PayrollService) Snapshot(ctx context.Context, employeeID, month string, baseSalary float64) (*model.SalaryRecord, error) {
	rec, err := s.compute(ctx, employeeID, month, baseSalary)
	if err != nil {
		return nil, err
	}

	id, err := s.salaries.Upsert(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to save salary snapshot: %w", err)
	}
	rec.ID = id

	s.publishEvents(ctx, rec)
	return rec, nil
}

// SaveManual persists a snapshot from administrator-entered counts using the
// manual-entry formula. workingDays of 0 means "use the fixed default".
func (s *PayrollService) SaveManual(ctx context.Context, employeeID, month string, baseSalary float64, absentDays, lateDays, workingDays int) (*model.SalaryRecord, error) {
	if workingDays == 0 {
		workingDays = DefaultWorkingDays
	}

	breakdown, err := ComputeFromCounts(baseSalary, absentDays, lateDays, workingDays)
	if err != nil {
		return nil, err
	}

	rec := &model.SalaryRecord{
		EmployeeID:     employeeID,
		Month:          month,
		BaseSalary:     baseSalary,
		WorkingDays:    workingDays,
		AbsentDays:     absentDays,
		LateDays:       lateDays,
		TotalDeduction: breakdown.TotalDeduction,
		FinalSalary:    breakdown.FinalSalary,
		SyncStatus:     model.StatusSyncPending,
		EmailStatus:    model.StatusEmailPending,
	}

	id, err := s.salaries.Upsert(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to save salary snapshot: %w", err)
	}
	rec.ID = id

	s.publishEvents(ctx, rec)
	return rec, nil
}

// Get returns the saved snapshot for an employee and month, (nil, nil) if none.
func (s *PayrollService) Get(ctx context.Context, employeeID, month string) (*model.SalaryRecord, error) {
	return s.salaries.Get(ctx, employeeID, month)
}

func (s *PayrollService) compute(ctx context.Context, employeeID, month string, baseSalary float64) (*model.SalaryRecord, error) {
	policy, err := s.policies.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load company policy: %w", err)
	}

	workingDays := DefaultWorkingDays
	if policy != nil && policy.WorkingDaysPerMonth > 0 {
		workingDays = policy.WorkingDaysPerMonth
	}

	counts, err := s.attendance.CountMonthStatuses(ctx, employeeID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate attendance: %w", err)
	}

	breakdown, err := ComputeMonthly(baseSalary, workingDays, counts.PresentDays, counts.LateDays, counts.HalfDays)
	if err != nil {
		return nil, err
	}

	return &model.SalaryRecord{
		EmployeeID:     employeeID,
		Month:          month,
		BaseSalary:     baseSalary,
		WorkingDays:    workingDays,
		PresentDays:    counts.PresentDays,
		AbsentDays:     breakdown.AbsentDays,
		LateDays:       counts.LateDays,
		HalfDays:       counts.HalfDays,
		TotalDeduction: breakdown.TotalDeduction,
		FinalSalary:    breakdown.FinalSalary,
		SyncStatus:     model.StatusSyncPending,
		EmailStatus:    model.StatusEmailPending,
	}, nil
}

// publishEvents hands the snapshot to the payroll and email queues. A failed
// email publish is logged but does not fail the snapshot; the sync event is
// the one the legacy system depends on.
func (s *PayrollService) publishEvents(ctx context.Context, rec *model.SalaryRecord) {
	emailEvent := messaging.EmailEvent{
		Kind:           messaging.EmailKindSalarySummary,
		EmployeeID:     rec.EmployeeID,
		SalaryRecordID: rec.ID,
		Month:          rec.Month,
		FinalSalary:    rec.FinalSalary,
		OccurredAt:     time.Now(),
	}
	if err := s.producer.PublishEmail(ctx, emailEvent); err != nil {
		log.Ctx(ctx).Warn().Err(err).Int64("salary_record_id", rec.ID).Msg("Failed to publish salary email event")
	}

	syncEvent := messaging.SalarySyncEvent{
		SalaryRecordID: rec.ID,
		EmployeeID:     rec.EmployeeID,
		Month:          rec.Month,
		FinalSalary:    rec.FinalSalary,
		SnapshotAt:     time.Now(),
	}
	if err := s.producer.PublishPayroll(ctx, syncEvent); err != nil {
		log.Ctx(ctx).Error().Err(err).Int64("salary_record_id", rec.ID).Msg("Failed to publish salary sync event")
	}
}
