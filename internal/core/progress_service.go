package core

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"learnhr.service/internal/core/model"
	"learnhr.service/internal/ports/repository"
)

const (
	// completionRatio is the fraction of a video that must be watched before
	// the lesson counts as completed.
	completionRatio = 0.9
	// resumeThresholdSeconds: below this there is nothing worth resuming.
	resumeThresholdSeconds = 5
)

// MergeProgress folds an incoming playback report into the stored progress.
// Watched seconds only ever grow and completion is sticky: a later, smaller
// report can neither shrink the position nor un-complete the lesson. The
// returned bool is false when the merge changed nothing and the write can be
// skipped.
func MergeProgress(incomingSeconds float64, totalSeconds int, prev *model.LessonProgress) (model.LessonProgress, bool) {
	shouldComplete := totalSeconds > 0 && incomingSeconds/float64(totalSeconds) > completionRatio

	merged := model.LessonProgress{
		WatchedSeconds: int(math.Floor(incomingSeconds)),
		TotalSeconds:   totalSeconds,
		Completed:      shouldComplete,
	}

	if prev == nil {
		return merged, true
	}

	merged.UserID = prev.UserID
	merged.LessonID = prev.LessonID
	merged.CourseID = prev.CourseID
	merged.Completed = prev.Completed || shouldComplete
	if prev.WatchedSeconds > merged.WatchedSeconds {
		merged.WatchedSeconds = prev.WatchedSeconds
	}

	changed := merged.Completed != prev.Completed || merged.WatchedSeconds > prev.WatchedSeconds
	return merged, changed
}

// ResumePosition is where a reinitialized player should seek to.
func ResumePosition(prev *model.LessonProgress) int {
	if prev == nil || prev.WatchedSeconds <= resumeThresholdSeconds {
		return 0
	}
	return prev.WatchedSeconds
}

// ProgressService persists lesson progress with read-modify-write merges so a
// stale concurrent writer cannot lose progress.
type ProgressService struct {
	repo repository.ProgressRepository
}

// NewProgressService create new instance
func NewProgressService(repo repository.ProgressRepository) *ProgressService {
	return &ProgressService{repo: repo}
}

// SaveTick merges a playback report into the stored progress. Writes are
// skipped when the merge changes nothing.
func (s *ProgressService) SaveTick(ctx context.Context, userID, lessonID, courseID string, watchedSeconds float64, totalSeconds int) (*model.LessonProgress, error) {
	if totalSeconds < 1 {
		return nil, ErrInvalidDuration
	}

	prev, err := s.repo.Get(ctx, userID, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lesson progress: %w", err)
	}

	merged, changed := MergeProgress(watchedSeconds, totalSeconds, prev)
	merged.UserID = userID
	merged.LessonID = lessonID
	merged.CourseID = courseID

	if !changed {
		log.Ctx(ctx).Debug().
			Str("user_id", userID).
			Str("lesson_id", lessonID).
			Msg("Progress unchanged, skipping write")
		return &merged, nil
	}

	if err := s.repo.Upsert(ctx, &merged); err != nil {
		return nil, fmt.Errorf("failed to save lesson progress: %w", err)
	}
	return &merged, nil
}

// Get returns the stored progress and the position the player should resume
// from. A user who never played the lesson gets (nil, 0).
func (s *ProgressService) Get(ctx context.Context, userID, lessonID string) (*model.LessonProgress, int, error) {
	prev, err := s.repo.Get(ctx, userID, lessonID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load lesson progress: %w", err)
	}
	return prev, ResumePosition(prev), nil
}
