package core

import (
	"context"
	"errors"
	"testing"

	"learnhr.service/internal/core/model"
)

func TestMergeProgress(t *testing.T) {
	tests := []struct {
		name        string
		incoming    float64
		total       int
		prev        *model.LessonProgress
		wantWatched int
		wantDone    bool
		wantChanged bool
	}{
		{
			name: "first report", incoming: 42.7, total: 600,
			wantWatched: 42, wantDone: false, wantChanged: true,
		},
		{
			name: "progress grows", incoming: 120, total: 600,
			prev:        &model.LessonProgress{WatchedSeconds: 42, TotalSeconds: 600},
			wantWatched: 120, wantDone: false, wantChanged: true,
		},
		{
			name: "stale report never shrinks", incoming: 30, total: 600,
			prev:        &model.LessonProgress{WatchedSeconds: 120, TotalSeconds: 600},
			wantWatched: 120, wantDone: false, wantChanged: false,
		},
		{
			name: "exactly ninety percent is not complete", incoming: 540, total: 600,
			wantWatched: 540, wantDone: false, wantChanged: true,
		},
		{
			name: "past ninety percent completes", incoming: 541, total: 600,
			wantWatched: 541, wantDone: true, wantChanged: true,
		},
		{
			name: "completion is sticky after a seek back", incoming: 60, total: 600,
			prev:        &model.LessonProgress{WatchedSeconds: 590, TotalSeconds: 600, Completed: true},
			wantWatched: 590, wantDone: true, wantChanged: false,
		},
		{
			name: "completing flips the flag once", incoming: 595, total: 600,
			prev:        &model.LessonProgress{WatchedSeconds: 500, TotalSeconds: 600},
			wantWatched: 595, wantDone: true, wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, changed := MergeProgress(tt.incoming, tt.total, tt.prev)
			if merged.WatchedSeconds != tt.wantWatched {
				t.Errorf("WatchedSeconds = %d, want %d", merged.WatchedSeconds, tt.wantWatched)
			}
			if merged.Completed != tt.wantDone {
				t.Errorf("Completed = %v, want %v", merged.Completed, tt.wantDone)
			}
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
		})
	}
}

func TestResumePosition(t *testing.T) {
	tests := []struct {
		name string
		prev *model.LessonProgress
		want int
	}{
		{name: "never played", prev: nil, want: 0},
		{name: "barely started restarts", prev: &model.LessonProgress{WatchedSeconds: 5}, want: 0},
		{name: "past the threshold resumes", prev: &model.LessonProgress{WatchedSeconds: 6}, want: 6},
		{name: "deep into the video", prev: &model.LessonProgress{WatchedSeconds: 480}, want: 480},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResumePosition(tt.prev); got != tt.want {
				t.Errorf("ResumePosition() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestProgressServiceSaveTick(t *testing.T) {
	t.Run("rejects zero duration", func(t *testing.T) {
		svc := NewProgressService(newFakeProgressRepo())

		_, err := svc.SaveTick(context.Background(), "user-1", "lesson-1", "course-1", 30, 0)
		if !errors.Is(err, ErrInvalidDuration) {
			t.Fatalf("SaveTick() error = %v, want ErrInvalidDuration", err)
		}
	})

	t.Run("skips write when nothing changed", func(t *testing.T) {
		repo := newFakeProgressRepo()
		svc := NewProgressService(repo)

		if _, err := svc.SaveTick(context.Background(), "user-1", "lesson-1", "course-1", 120, 600); err != nil {
			t.Fatalf("SaveTick() error = %v", err)
		}
		if repo.upserts != 1 {
			t.Fatalf("upserts = %d, want 1", repo.upserts)
		}

		// A stale, smaller report changes nothing and must not write.
		if _, err := svc.SaveTick(context.Background(), "user-1", "lesson-1", "course-1", 60, 600); err != nil {
			t.Fatalf("stale SaveTick() error = %v", err)
		}
		if repo.upserts != 1 {
			t.Errorf("upserts after stale tick = %d, want 1", repo.upserts)
		}
	})

	t.Run("merge keeps identity fields", func(t *testing.T) {
		repo := newFakeProgressRepo()
		svc := NewProgressService(repo)

		got, err := svc.SaveTick(context.Background(), "user-1", "lesson-1", "course-1", 550, 600)
		if err != nil {
			t.Fatalf("SaveTick() error = %v", err)
		}
		if got.UserID != "user-1" || got.LessonID != "lesson-1" || got.CourseID != "course-1" {
			t.Errorf("identity = (%s, %s, %s), want (user-1, lesson-1, course-1)", got.UserID, got.LessonID, got.CourseID)
		}
		if !got.Completed {
			t.Error("Completed = false, want true past 90%")
		}
	})

	t.Run("resume position survives round trip", func(t *testing.T) {
		repo := newFakeProgressRepo()
		svc := NewProgressService(repo)

		if _, err := svc.SaveTick(context.Background(), "user-1", "lesson-1", "course-1", 200, 600); err != nil {
			t.Fatalf("SaveTick() error = %v", err)
		}

		prev, resumeAt, err := svc.Get(context.Background(), "user-1", "lesson-1")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if prev == nil || resumeAt != 200 {
			t.Errorf("Get() = (%v, %d), want progress with resume 200", prev, resumeAt)
		}
	})
}
