package repository

import (
	"context"
	"database/sql"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"learnhr.service/internal/core/model"
)

// AttendanceRepo is the concrete implementation for a PostgreSQL database.
type AttendanceRepo struct {
	DB *sql.DB
}

// NewAttendanceRepo create new instance
func NewAttendanceRepo(db *sql.DB) AttendanceRepository {
	return &AttendanceRepo{DB: db}
}

// GetByEmployeeAndDate fetches the single record for an employee and calendar date.
func (r *AttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*model.AttendanceRecord, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.employee_id", employeeID))

	rec := &model.AttendanceRecord{EmployeeID: employeeID, Date: date}
	var (
		checkOutAt       sql.NullTime
		checkOutAddress  sql.NullString
		checkOutPhotoURL sql.NullString
		workedHours      sql.NullFloat64
	)

	query := `SELECT id, check_in_at, check_out_at, check_in_address, check_out_address,
                     check_in_photo_url, check_out_photo_url, status, late_minutes, worked_hours
              FROM attendance_records
              WHERE employee_id = $1 AND date = $2`

	row := r.DB.QueryRowContext(ctx, query, employeeID, date)
	err := row.Scan(&rec.ID, &rec.CheckInAt, &checkOutAt, &rec.CheckInAddress, &checkOutAddress,
		&rec.CheckInPhotoURL, &checkOutPhotoURL, &rec.Status, &rec.LateMinutes, &workedHours)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if checkOutAt.Valid {
		t := checkOutAt.Time
		rec.CheckOutAt = &t
	}
	rec.CheckOutAddress = checkOutAddress.String
	rec.CheckOutPhotoURL = checkOutPhotoURL.String
	rec.WorkedHours = workedHours.Float64
	return rec, nil
}

// CreateCheckIn inserts the record that opens an attendance day.
func (r *AttendanceRepo) CreateCheckIn(ctx context.Context, rec *model.AttendanceRecord) (int64, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.employee_id", rec.EmployeeID))

	var id int64
	query := `INSERT INTO attendance_records
                  (employee_id, date, check_in_at, check_in_address, check_in_photo_url, status, late_minutes)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	err := r.DB.QueryRowContext(ctx, query,
		rec.EmployeeID, rec.Date, rec.CheckInAt, rec.CheckInAddress, rec.CheckInPhotoURL,
		rec.Status, rec.LateMinutes).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateCheckOut closes the attendance day with worked hours and the final status.
func (r *AttendanceRepo) UpdateCheckOut(ctx context.Context, id int64, checkOutAt time.Time, address, photoURL string, workedHours float64, status model.AttendanceStatus) error {
	query := `UPDATE attendance_records
              SET check_out_at = $1,
                  check_out_address = $2,
                  check_out_photo_url = $3,
                  worked_hours = $4,
                  status = $5
              WHERE id = $6`

	_, err := r.DB.ExecContext(ctx, query, checkOutAt, address, photoURL, workedHours, status, id)
	return err
}

// ListMonth returns the employee's records for a month ("2006-01"), newest first.
func (r *AttendanceRepo) ListMonth(ctx context.Context, employeeID, month string) ([]model.AttendanceRecord, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.employee_id", employeeID))

	query := `SELECT id, date, check_in_at, check_out_at, check_in_address, check_out_address,
                     check_in_photo_url, check_out_photo_url, status, late_minutes, worked_hours
              FROM attendance_records
              WHERE employee_id = $1 AND date LIKE $2 || '-%'
              ORDER BY date DESC`

	rows, err := r.DB.QueryContext(ctx, query, employeeID, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.AttendanceRecord
	for rows.Next() {
		rec := model.AttendanceRecord{EmployeeID: employeeID}
		var (
			checkOutAt       sql.NullTime
			checkOutAddress  sql.NullString
			checkOutPhotoURL sql.NullString
			workedHours      sql.NullFloat64
		)
		if err := rows.Scan(&rec.ID, &rec.Date, &rec.CheckInAt, &checkOutAt, &rec.CheckInAddress,
			&checkOutAddress, &rec.CheckInPhotoURL, &checkOutPhotoURL, &rec.Status,
			&rec.LateMinutes, &workedHours); err != nil {
			return nil, err
		}
		if checkOutAt.Valid {
			t := checkOutAt.Time
			rec.CheckOutAt = &t
		}
		rec.CheckOutAddress = checkOutAddress.String
		rec.CheckOutPhotoURL = checkOutPhotoURL.String
		rec.WorkedHours = workedHours.Float64
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountMonthStatuses aggregates status counts used by the payroll snapshot.
func (r *AttendanceRepo) CountMonthStatuses(ctx context.Context, employeeID, month string) (model.AttendanceCounts, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.employee_id", employeeID))

	var counts model.AttendanceCounts
	query := `SELECT
                  COUNT(*) FILTER (WHERE status = $3),
                  COUNT(*) FILTER (WHERE status = $4),
                  COUNT(*) FILTER (WHERE status = $5)
              FROM attendance_records
              WHERE employee_id = $1 AND date LIKE $2 || '-%'`

	err := r.DB.QueryRowContext(ctx, query, employeeID, month,
		model.StatusPresent, model.StatusLate, model.StatusHalfDay).
		Scan(&counts.PresentDays, &counts.LateDays, &counts.HalfDays)
	if err != nil {
		return model.AttendanceCounts{}, err
	}
	return counts, nil
}
