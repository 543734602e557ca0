package repository

import (
	"context"
	"database/sql"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"learnhr.service/internal/core/model"
)

// CourseRepo is the concrete implementation for a PostgreSQL database.
// Membership is one row per (course, user) with a state column, so a user can
// never be pending and enrolled at the same time.
type CourseRepo struct {
	DB *sql.DB
}

// NewCourseRepo create new instance
func NewCourseRepo(db *sql.DB) CourseRepository {
	return &CourseRepo{DB: db}
}

// GetMember fetches a user's membership row for a course, (nil, nil) when none.
func (r *CourseRepo) GetMember(ctx context.Context, courseID, userID string) (*model.CourseMember, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.user_id", userID))

	m := &model.CourseMember{CourseID: courseID, UserID: userID}
	query := `SELECT state, updated_at FROM course_members WHERE course_id = $1 AND user_id = $2`

	row := r.DB.QueryRowContext(ctx, query, courseID, userID)
	err := row.Scan(&m.State, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// RequestEnrollment inserts a pending membership. Requesting twice is a no-op,
// and an existing enrolled row is left untouched.
func (r *CourseRepo) RequestEnrollment(ctx context.Context, courseID, userID string) error {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.user_id", userID))

	query := `INSERT INTO course_members (course_id, user_id, state, updated_at)
              VALUES ($1, $2, $3, NOW())
              ON CONFLICT (course_id, user_id) DO NOTHING`

	_, err := r.DB.ExecContext(ctx, query, courseID, userID, model.EnrollmentPending)
	return err
}

// Approve flips a pending membership to enrolled in one statement, so the user
// leaves the pending set and joins the student set atomically.
func (r *CourseRepo) Approve(ctx context.Context, courseID, userID string) error {
	query := `UPDATE course_members SET state = $1, updated_at = NOW()
              WHERE course_id = $2 AND user_id = $3 AND state = $4`

	res, err := r.DB.ExecContext(ctx, query, model.EnrollmentEnrolled, courseID, userID, model.EnrollmentPending)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// RemoveMember deletes the membership row (cancel, reject or unenroll).
func (r *CourseRepo) RemoveMember(ctx context.Context, courseID, userID string) error {
	query := `DELETE FROM course_members WHERE course_id = $1 AND user_id = $2`
	_, err := r.DB.ExecContext(ctx, query, courseID, userID)
	return err
}

// ListMembers returns the course roster filtered by state.
func (r *CourseRepo) ListMembers(ctx context.Context, courseID string, state model.EnrollmentState) ([]model.CourseMember, error) {
	query := `SELECT user_id, state, updated_at FROM course_members
              WHERE course_id = $1 AND state = $2
              ORDER BY updated_at`

	rows, err := r.DB.QueryContext(ctx, query, courseID, state)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []model.CourseMember
	for rows.Next() {
		m := model.CourseMember{CourseID: courseID}
		if err := rows.Scan(&m.UserID, &m.State, &m.UpdatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
