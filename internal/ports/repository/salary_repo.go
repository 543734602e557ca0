package repository

import (
	"context"
	"database/sql"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"learnhr.service/internal/core/model"
)

// SalaryRepo is the concrete implementation for a PostgreSQL database.
type SalaryRepo struct {
	DB *sql.DB
}

// NewSalaryRepo create new instance
func NewSalaryRepo(db *sql.DB) SalaryRepository {
	return &SalaryRepo{DB: db}
}

const salaryColumns = `id, employee_id, month, base_salary, working_days, present_days, absent_days,
                       late_days, half_days, total_deduction, final_salary,
                       sync_status, sync_retry_count, email_status, email_retry_count, created_at`

func scanSalary(row *sql.Row) (*model.SalaryRecord, error) {
	rec := &model.SalaryRecord{}
	err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.Month, &rec.BaseSalary, &rec.WorkingDays,
		&rec.PresentDays, &rec.AbsentDays, &rec.LateDays, &rec.HalfDays,
		&rec.TotalDeduction, &rec.FinalSalary,
		&rec.SyncStatus, &rec.SyncRetryCount, &rec.EmailStatus, &rec.EmailRetryCount, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Get fetches the snapshot for an employee and month ("2006-01").
func (r *SalaryRepo) Get(ctx context.Context, employeeID, month string) (*model.SalaryRecord, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.employee_id", employeeID))

	query := `SELECT ` + salaryColumns + ` FROM salary_records WHERE employee_id = $1 AND month = $2`
	return scanSalary(r.DB.QueryRowContext(ctx, query, employeeID, month))
}

// GetByID fetches a snapshot by its ID, used by the background workers.
func (r *SalaryRepo) GetByID(ctx context.Context, id int64) (*model.SalaryRecord, error) {
	query := `SELECT ` + salaryColumns + ` FROM salary_records WHERE id = $1`
	return scanSalary(r.DB.QueryRowContext(ctx, query, id))
}

// Upsert writes a snapshot in a single statement so a failed save can never
// leave a half-overwritten previous snapshot behind.
func (r *SalaryRepo) Upsert(ctx context.Context, rec *model.SalaryRecord) (int64, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.employee_id", rec.EmployeeID))

	var id int64
	query := `INSERT INTO salary_records
                  (employee_id, month, base_salary, working_days, present_days, absent_days,
                   late_days, half_days, total_deduction, final_salary,
                   sync_status, sync_retry_count, email_status, email_retry_count, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 0, $12, 0, NOW())
              ON CONFLICT (employee_id, month) DO UPDATE
              SET base_salary = EXCLUDED.base_salary,
                  working_days = EXCLUDED.working_days,
                  present_days = EXCLUDED.present_days,
                  absent_days = EXCLUDED.absent_days,
                  late_days = EXCLUDED.late_days,
                  half_days = EXCLUDED.half_days,
                  total_deduction = EXCLUDED.total_deduction,
                  final_salary = EXCLUDED.final_salary,
                  sync_status = EXCLUDED.sync_status,
                  sync_retry_count = 0,
                  email_status = EXCLUDED.email_status,
                  email_retry_count = 0,
                  created_at = NOW()
              RETURNING id`

	err := r.DB.QueryRowContext(ctx, query,
		rec.EmployeeID, rec.Month, rec.BaseSalary, rec.WorkingDays, rec.PresentDays, rec.AbsentDays,
		rec.LateDays, rec.HalfDays, rec.TotalDeduction, rec.FinalSalary,
		model.StatusSyncPending, model.StatusEmailPending).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateSyncStatus updates the status and retry count for the legacy HR sync job.
func (r *SalaryRepo) UpdateSyncStatus(ctx context.Context, id int64, status model.SyncStatus, retryCount int) error {
	query := `UPDATE salary_records SET sync_status = $1, sync_retry_count = $2 WHERE id = $3`
	_, err := r.DB.ExecContext(ctx, query, status, retryCount, id)
	return err
}

// UpdateEmailStatus updates the status and retry count for the summary email job.
func (r *SalaryRepo) UpdateEmailStatus(ctx context.Context, id int64, status model.EmailStatus, retryCount int) error {
	query := `UPDATE salary_records SET email_status = $1, email_retry_count = $2 WHERE id = $3`
	_, err := r.DB.ExecContext(ctx, query, status, retryCount, id)
	return err
}
