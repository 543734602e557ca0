package core

import (
	"context"
	"errors"
	"math"
	"testing"

	"learnhr.service/internal/core/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestComputeMonthly(t *testing.T) {
	tests := []struct {
		name          string
		base          float64
		workingDays   int
		presentDays   int
		lateDays      int
		halfDays      int
		wantAbsent    int
		wantDeduction float64
		wantFinal     float64
		wantErr       error
	}{
		{
			name: "mixed month", base: 10_000_000, workingDays: 26,
			presentDays: 20, lateDays: 2, halfDays: 1,
			wantAbsent: 3, wantDeduction: 1_730_769.23, wantFinal: 8_269_230.77,
		},
		{
			name: "perfect attendance", base: 10_000_000, workingDays: 26,
			presentDays: 26,
			wantAbsent:  0, wantDeduction: 0, wantFinal: 10_000_000,
		},
		{
			name: "overfull month clamps absences", base: 5_200_000, workingDays: 26,
			presentDays: 25, lateDays: 3,
			wantAbsent: 0, wantDeduction: 300_000, wantFinal: 4_900_000,
		},
		{
			name: "fully absent", base: 2_600_000, workingDays: 26,
			wantAbsent: 26, wantDeduction: 2_600_000, wantFinal: 0,
		},
		{
			name: "zero working days rejected", base: 10_000_000, workingDays: 0,
			wantErr: ErrInvalidPolicy,
		},
		{
			name: "negative working days rejected", base: 10_000_000, workingDays: -5,
			wantErr: ErrInvalidPolicy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeMonthly(tt.base, tt.workingDays, tt.presentDays, tt.lateDays, tt.halfDays)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ComputeMonthly() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeMonthly() error = %v", err)
			}
			if got.AbsentDays != tt.wantAbsent {
				t.Errorf("AbsentDays = %d, want %d", got.AbsentDays, tt.wantAbsent)
			}
			if !almostEqual(got.TotalDeduction, tt.wantDeduction) {
				t.Errorf("TotalDeduction = %.2f, want %.2f", got.TotalDeduction, tt.wantDeduction)
			}
			if !almostEqual(got.FinalSalary, tt.wantFinal) {
				t.Errorf("FinalSalary = %.2f, want %.2f", got.FinalSalary, tt.wantFinal)
			}
		})
	}
}

func TestComputeFromCounts(t *testing.T) {
	tests := []struct {
		name          string
		base          float64
		absentDays    int
		lateDays      int
		workingDays   int
		wantDeduction float64
		wantFinal     float64
		wantErr       error
	}{
		{
			name: "absences and lates", base: 10_000_000, absentDays: 3, lateDays: 2, workingDays: 26,
			wantDeduction: 1_538_461.54, wantFinal: 8_461_538.46,
		},
		{
			name: "no deductions", base: 10_000_000, workingDays: 26,
			wantDeduction: 0, wantFinal: 10_000_000,
		},
		{
			name: "deductions exceed base floors at zero", base: 1_000_000, absentDays: 30, workingDays: 26,
			wantDeduction: 1_153_846.15, wantFinal: 0,
		},
		{
			name: "zero working days rejected", base: 10_000_000, workingDays: 0,
			wantErr: ErrInvalidPolicy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeFromCounts(tt.base, tt.absentDays, tt.lateDays, tt.workingDays)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ComputeFromCounts() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeFromCounts() error = %v", err)
			}
			if !almostEqual(got.TotalDeduction, tt.wantDeduction) {
				t.Errorf("TotalDeduction = %.2f, want %.2f", got.TotalDeduction, tt.wantDeduction)
			}
			if !almostEqual(got.FinalSalary, tt.wantFinal) {
				t.Errorf("FinalSalary = %.2f, want %.2f", got.FinalSalary, tt.wantFinal)
			}
		})
	}
}

func TestPayrollServiceSnapshot(t *testing.T) {
	salaries := newFakeSalaryRepo()
	attendance := newFakeAttendanceRepo()
	attendance.counts = model.AttendanceCounts{PresentDays: 20, LateDays: 2, HalfDays: 1}
	producer := &fakeProducer{}

	svc := NewPayrollService(salaries, attendance, &fakePolicyRepo{policy: testPolicy()}, producer)

	rec, err := svc.Snapshot(context.Background(), "emp-1", "2026-03", 10_000_000)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if rec.AbsentDays != 3 {
		t.Errorf("AbsentDays = %d, want 3", rec.AbsentDays)
	}
	if !almostEqual(rec.FinalSalary, 8_269_230.77) {
		t.Errorf("FinalSalary = %.2f, want 8269230.77", rec.FinalSalary)
	}
	if rec.SyncStatus != model.StatusSyncPending || rec.EmailStatus != model.StatusEmailPending {
		t.Errorf("statuses = (%s, %s), want (PENDING, PENDING)", rec.SyncStatus, rec.EmailStatus)
	}

	if len(producer.payrollEvents) != 1 || len(producer.emailEvents) != 1 {
		t.Fatalf("published events = (%d payroll, %d email), want (1, 1)",
			len(producer.payrollEvents), len(producer.emailEvents))
	}
	if producer.payrollEvents[0].SalaryRecordID != rec.ID {
		t.Errorf("sync event record ID = %d, want %d", producer.payrollEvents[0].SalaryRecordID, rec.ID)
	}

	// Re-snapshotting the same month overwrites, not duplicates.
	again, err := svc.Snapshot(context.Background(), "emp-1", "2026-03", 12_000_000)
	if err != nil {
		t.Fatalf("second Snapshot() error = %v", err)
	}
	if again.ID != rec.ID {
		t.Errorf("second snapshot ID = %d, want %d", again.ID, rec.ID)
	}
}

func TestPayrollServicePreviewDoesNotPersist(t *testing.T) {
	salaries := newFakeSalaryRepo()
	attendance := newFakeAttendanceRepo()
	attendance.counts = model.AttendanceCounts{PresentDays: 26}
	producer := &fakeProducer{}

	svc := NewPayrollService(salaries, attendance, &fakePolicyRepo{policy: testPolicy()}, producer)

	if _, err := svc.Preview(context.Background(), "emp-1", "2026-03", 10_000_000); err != nil {
		t.Fatalf("Preview() error = %v", err)
	}

	saved, err := svc.Get(context.Background(), "emp-1", "2026-03")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if saved != nil {
		t.Error("Preview() persisted a record, want none")
	}
	if len(producer.payrollEvents) != 0 || len(producer.emailEvents) != 0 {
		t.Error("Preview() published events, want none")
	}
}

func TestPayrollServiceSaveManual(t *testing.T) {
	t.Run("zero working days falls back to default", func(t *testing.T) {
		svc := NewPayrollService(newFakeSalaryRepo(), newFakeAttendanceRepo(), &fakePolicyRepo{}, &fakeProducer{})

		rec, err := svc.SaveManual(context.Background(), "emp-1", "2026-03", 10_000_000, 3, 2, 0)
		if err != nil {
			t.Fatalf("SaveManual() error = %v", err)
		}
		if rec.WorkingDays != DefaultWorkingDays {
			t.Errorf("WorkingDays = %d, want %d", rec.WorkingDays, DefaultWorkingDays)
		}
		if !almostEqual(rec.FinalSalary, 8_461_538.46) {
			t.Errorf("FinalSalary = %.2f, want 8461538.46", rec.FinalSalary)
		}
	})

	t.Run("explicit working days are honored", func(t *testing.T) {
		svc := NewPayrollService(newFakeSalaryRepo(), newFakeAttendanceRepo(), &fakePolicyRepo{}, &fakeProducer{})

		rec, err := svc.SaveManual(context.Background(), "emp-1", "2026-03", 4_400_000, 2, 0, 22)
		if err != nil {
			t.Fatalf("SaveManual() error = %v", err)
		}
		if rec.WorkingDays != 22 {
			t.Errorf("WorkingDays = %d, want 22", rec.WorkingDays)
		}
		if !almostEqual(rec.FinalSalary, 4_000_000) {
			t.Errorf("FinalSalary = %.2f, want 4000000", rec.FinalSalary)
		}
	})
}
