package repository

import (
	"context"
	"database/sql"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"learnhr.service/internal/core/model"
)

// ProgressRepo is the concrete implementation for a PostgreSQL database.
type ProgressRepo struct {
	DB *sql.DB
}

// NewProgressRepo create new instance
func NewProgressRepo(db *sql.DB) ProgressRepository {
	return &ProgressRepo{DB: db}
}

// Get fetches the stored progress for a user and lesson, (nil, nil) when none.
func (r *ProgressRepo) Get(ctx context.Context, userID, lessonID string) (*model.LessonProgress, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.user_id", userID))

	p := &model.LessonProgress{UserID: userID, LessonID: lessonID}
	query := `SELECT course_id, watched_seconds, total_seconds, completed, updated_at
              FROM lesson_progress
              WHERE user_id = $1 AND lesson_id = $2`

	row := r.DB.QueryRowContext(ctx, query, userID, lessonID)
	err := row.Scan(&p.CourseID, &p.WatchedSeconds, &p.TotalSeconds, &p.Completed, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Upsert writes the merged progress. GREATEST and OR in the update mirror the
// monotonic merge so a stale concurrent writer cannot roll progress back.
func (r *ProgressRepo) Upsert(ctx context.Context, p *model.LessonProgress) error {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.user_id", p.UserID))

	query := `INSERT INTO lesson_progress
                  (user_id, lesson_id, course_id, watched_seconds, total_seconds, completed, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, NOW())
              ON CONFLICT (user_id, lesson_id) DO UPDATE
              SET watched_seconds = GREATEST(lesson_progress.watched_seconds, EXCLUDED.watched_seconds),
                  total_seconds = EXCLUDED.total_seconds,
                  completed = lesson_progress.completed OR EXCLUDED.completed,
                  updated_at = NOW()`

	_, err := r.DB.ExecContext(ctx, query,
		p.UserID, p.LessonID, p.CourseID, p.WatchedSeconds, p.TotalSeconds, p.Completed)
	return err
}
