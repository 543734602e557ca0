package core

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"learnhr.service/internal/core/model"
	"learnhr.service/internal/ports/repository"
)

// PassThreshold is the fixed score (0-100) from which a quiz counts as passed.
const PassThreshold = 70

// GradeQuiz scores submitted answers against the answer key. Unanswered
// questions are submitted as -1 and never match. The caller must pad answers
// to the key's length; a mismatch is a workflow bug, not user input.
func GradeQuiz(answers, answerKey []int) (correctCount, score int, passed bool, err error) {
	if len(answers) != len(answerKey) {
		return 0, 0, false, ErrAnswerCountMismatch
	}
	if len(answerKey) == 0 {
		return 0, 0, false, ErrAnswerCountMismatch
	}

	for i, key := range answerKey {
		if answers[i] == key {
			correctCount++
		}
	}

	score = int(math.Round(100 * float64(correctCount) / float64(len(answerKey))))
	return correctCount, score, score >= PassThreshold, nil
}

// QuizService grades submissions and enforces the single-attempt rule:
// exactly one result may exist per (user, lesson) and a re-attempt requires
// the previous result to be discarded first.
type QuizService struct {
	repo repository.QuizRepository
}

// NewQuizService create new instance
func NewQuizService(repo repository.QuizRepository) *QuizService {
	return &QuizService{repo: repo}
}

// Submit grades and stores a quiz attempt. It is rejected while an active
// result exists.
func (s *QuizService) Submit(ctx context.Context, userID, lessonID, courseID string, answers, answerKey []int, timeSpentSeconds int) (*model.QuizResult, error) {
	active, err := s.repo.Get(ctx, userID, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz result: %w", err)
	}
	if active != nil {
		return nil, ErrActiveQuizResult
	}

	correct, score, passed, err := GradeQuiz(answers, answerKey)
	if err != nil {
		return nil, err
	}

	res := &model.QuizResult{
		UserID:           userID,
		LessonID:         lessonID,
		CourseID:         courseID,
		Answers:          answers,
		CorrectCount:     correct,
		TotalQuestions:   len(answerKey),
		Score:            score,
		Passed:           passed,
		TimeSpentSeconds: timeSpentSeconds,
		CompletedAt:      time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, res); err != nil {
		return nil, fmt.Errorf("failed to save quiz result: %w", err)
	}

	log.Ctx(ctx).Info().
		Str("user_id", userID).
		Str("lesson_id", lessonID).
		Int("score", score).
		Bool("passed", passed).
		Msg("Quiz graded")

	return res, nil
}

// Discard deletes the active result so the user can re-attempt the quiz.
func (s *QuizService) Discard(ctx context.Context, userID, lessonID string) error {
	active, err := s.repo.Get(ctx, userID, lessonID)
	if err != nil {
		return fmt.Errorf("failed to query quiz result: %w", err)
	}
	if active == nil {
		return ErrQuizResultNotFound
	}
	return s.repo.Delete(ctx, userID, lessonID)
}

// HasActiveResult reports whether a result exists for (user, lesson).
func (s *QuizService) HasActiveResult(ctx context.Context, userID, lessonID string) (bool, error) {
	active, err := s.repo.Get(ctx, userID, lessonID)
	if err != nil {
		return false, err
	}
	return active != nil, nil
}

// Result returns the active result, (nil, nil) when none exists.
func (s *QuizService) Result(ctx context.Context, userID, lessonID string) (*model.QuizResult, error) {
	return s.repo.Get(ctx, userID, lessonID)
}
