package core

import (
	"context"
	"errors"
	"testing"
)

func TestGradeQuiz(t *testing.T) {
	tests := []struct {
		name        string
		answers     []int
		answerKey   []int
		wantCorrect int
		wantScore   int
		wantPassed  bool
		wantErr     error
	}{
		{
			name: "three of four", answers: []int{0, 1, 0, 3}, answerKey: []int{0, 1, 2, 3},
			wantCorrect: 3, wantScore: 75, wantPassed: true,
		},
		{
			name: "perfect score", answers: []int{2, 2, 2}, answerKey: []int{2, 2, 2},
			wantCorrect: 3, wantScore: 100, wantPassed: true,
		},
		{
			name: "all wrong", answers: []int{1, 1, 1}, answerKey: []int{0, 0, 0},
			wantCorrect: 0, wantScore: 0, wantPassed: false,
		},
		{
			name: "unanswered never matches", answers: []int{-1, -1, 1}, answerKey: []int{0, 1, 1},
			wantCorrect: 1, wantScore: 33, wantPassed: false,
		},
		{
			name: "score rounds half up", answers: []int{0, 0, 0, 0, 0, 9, 9, 9}, answerKey: []int{0, 0, 0, 0, 0, 1, 1, 1},
			wantCorrect: 5, wantScore: 63, wantPassed: false,
		},
		{
			name: "two of three just misses the bar", answers: []int{0, 1, 9}, answerKey: []int{0, 1, 2},
			wantCorrect: 2, wantScore: 67, wantPassed: false,
		},
		{
			name: "length mismatch", answers: []int{0, 1}, answerKey: []int{0, 1, 2},
			wantErr: ErrAnswerCountMismatch,
		},
		{
			name: "empty key", answers: []int{}, answerKey: []int{},
			wantErr: ErrAnswerCountMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			correct, score, passed, err := GradeQuiz(tt.answers, tt.answerKey)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("GradeQuiz() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GradeQuiz() error = %v", err)
			}
			if correct != tt.wantCorrect || score != tt.wantScore || passed != tt.wantPassed {
				t.Errorf("GradeQuiz() = (%d, %d, %v), want (%d, %d, %v)",
					correct, score, passed, tt.wantCorrect, tt.wantScore, tt.wantPassed)
			}
		})
	}
}

func TestQuizServiceSubmit(t *testing.T) {
	ctx := context.Background()
	answerKey := []int{0, 1, 2, 3}

	t.Run("stores a graded result", func(t *testing.T) {
		svc := NewQuizService(newFakeQuizRepo())

		res, err := svc.Submit(ctx, "user-1", "lesson-1", "course-1", []int{0, 1, 0, 3}, answerKey, 90)
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		if res.Score != 75 || !res.Passed || res.CorrectCount != 3 {
			t.Errorf("Submit() = (score %d, passed %v, correct %d), want (75, true, 3)",
				res.Score, res.Passed, res.CorrectCount)
		}
		if res.TotalQuestions != 4 || res.TimeSpentSeconds != 90 {
			t.Errorf("metadata = (%d questions, %ds), want (4, 90s)", res.TotalQuestions, res.TimeSpentSeconds)
		}
	})

	t.Run("second attempt rejected while a result exists", func(t *testing.T) {
		svc := NewQuizService(newFakeQuizRepo())

		if _, err := svc.Submit(ctx, "user-1", "lesson-1", "course-1", []int{0, 1, 0, 3}, answerKey, 90); err != nil {
			t.Fatalf("first Submit() error = %v", err)
		}
		_, err := svc.Submit(ctx, "user-1", "lesson-1", "course-1", []int{0, 1, 2, 3}, answerKey, 60)
		if !errors.Is(err, ErrActiveQuizResult) {
			t.Fatalf("second Submit() error = %v, want ErrActiveQuizResult", err)
		}
	})

	t.Run("discard allows a re-attempt", func(t *testing.T) {
		svc := NewQuizService(newFakeQuizRepo())

		if _, err := svc.Submit(ctx, "user-1", "lesson-1", "course-1", []int{9, 9, 9, 9}, answerKey, 30); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		if err := svc.Discard(ctx, "user-1", "lesson-1"); err != nil {
			t.Fatalf("Discard() error = %v", err)
		}

		res, err := svc.Submit(ctx, "user-1", "lesson-1", "course-1", []int{0, 1, 2, 3}, answerKey, 45)
		if err != nil {
			t.Fatalf("re-Submit() error = %v", err)
		}
		if res.Score != 100 {
			t.Errorf("re-attempt score = %d, want 100", res.Score)
		}
	})

	t.Run("discard without a result", func(t *testing.T) {
		svc := NewQuizService(newFakeQuizRepo())

		err := svc.Discard(ctx, "user-1", "lesson-1")
		if !errors.Is(err, ErrQuizResultNotFound) {
			t.Fatalf("Discard() error = %v, want ErrQuizResultNotFound", err)
		}
	})

	t.Run("results are scoped per lesson", func(t *testing.T) {
		svc := NewQuizService(newFakeQuizRepo())

		if _, err := svc.Submit(ctx, "user-1", "lesson-1", "course-1", []int{0, 1, 2, 3}, answerKey, 30); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		if _, err := svc.Submit(ctx, "user-1", "lesson-2", "course-1", []int{0, 1, 2, 3}, answerKey, 30); err != nil {
			t.Fatalf("Submit() to another lesson error = %v", err)
		}

		active, err := svc.HasActiveResult(ctx, "user-1", "lesson-2")
		if err != nil || !active {
			t.Fatalf("HasActiveResult() = (%v, %v), want (true, nil)", active, err)
		}
	})
}
