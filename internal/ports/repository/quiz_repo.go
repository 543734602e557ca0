package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"learnhr.service/internal/core/model"
)

// QuizRepo is the concrete implementation for a PostgreSQL database.
// Answers are stored as a JSONB array of selected option indices.
type QuizRepo struct {
	DB *sql.DB
}

// NewQuizRepo create new instance
func NewQuizRepo(db *sql.DB) QuizRepository {
	return &QuizRepo{DB: db}
}

// Get fetches the active result for a user and lesson, (nil, nil) when none.
func (r *QuizRepo) Get(ctx context.Context, userID, lessonID string) (*model.QuizResult, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.user_id", userID))

	res := &model.QuizResult{UserID: userID, LessonID: lessonID}
	var answers []byte

	query := `SELECT course_id, answers, correct_count, total_questions, score, passed,
                     time_spent_seconds, completed_at
              FROM quiz_results
              WHERE user_id = $1 AND lesson_id = $2`

	row := r.DB.QueryRowContext(ctx, query, userID, lessonID)
	err := row.Scan(&res.CourseID, &answers, &res.CorrectCount, &res.TotalQuestions,
		&res.Score, &res.Passed, &res.TimeSpentSeconds, &res.CompletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(answers, &res.Answers); err != nil {
		return nil, fmt.Errorf("failed to decode answers: %w", err)
	}
	return res, nil
}

// Create inserts a result. The unique (user_id, lesson_id) index enforces
// the single-active-result rule at the schema level too.
func (r *QuizRepo) Create(ctx context.Context, res *model.QuizResult) error {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.user_id", res.UserID))

	answers, err := json.Marshal(res.Answers)
	if err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}

	query := `INSERT INTO quiz_results
                  (user_id, lesson_id, course_id, answers, correct_count, total_questions,
                   score, passed, time_spent_seconds, completed_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = r.DB.ExecContext(ctx, query,
		res.UserID, res.LessonID, res.CourseID, answers, res.CorrectCount, res.TotalQuestions,
		res.Score, res.Passed, res.TimeSpentSeconds, res.CompletedAt)
	return err
}

// Delete discards the active result so the user can re-attempt the quiz.
func (r *QuizRepo) Delete(ctx context.Context, userID, lessonID string) error {
	query := `DELETE FROM quiz_results WHERE user_id = $1 AND lesson_id = $2`
	_, err := r.DB.ExecContext(ctx, query, userID, lessonID)
	return err
}
