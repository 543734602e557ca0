package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"learnhr.service/internal/core/model"
	"learnhr.service/internal/ports/messaging"
	"learnhr.service/internal/ports/repository"
)

// EnrollmentService runs the course membership state machine:
//
//	NONE --request--> PENDING --approve--> ENROLLED
//	PENDING --cancel/reject--> NONE
//	ENROLLED --unenroll--> NONE
//
// A membership is a single row per (course, user), so pending and enrolled
// are mutually exclusive by construction. The cycle may repeat.
type EnrollmentService struct {
	repo     repository.CourseRepository
	producer messaging.QueueProducer
}

// NewEnrollmentService wires the course repository and the queue producer.
func NewEnrollmentService(repo repository.CourseRepository, producer messaging.QueueProducer) *EnrollmentService {
	return &EnrollmentService{repo: repo, producer: producer}
}

// State returns the user's current relation to the course.
func (s *EnrollmentService) State(ctx context.Context, courseID, userID string) (model.EnrollmentState, error) {
	m, err := s.repo.GetMember(ctx, courseID, userID)
	if err != nil {
		return "", fmt.Errorf("failed to query course membership: %w", err)
	}
	if m == nil {
		return model.EnrollmentNone, nil
	}
	return m.State, nil
}

// Request moves NONE to PENDING. Requesting again while already pending is a
// no-op; requesting while enrolled is rejected.
func (s *EnrollmentService) Request(ctx context.Context, courseID, userID string) error {
	state, err := s.State(ctx, courseID, userID)
	if err != nil {
		return err
	}
	if state == model.EnrollmentEnrolled {
		return ErrInvalidTransition
	}

	if err := s.repo.RequestEnrollment(ctx, courseID, userID); err != nil {
		return fmt.Errorf("failed to request enrollment: %w", err)
	}
	return nil
}

// Cancel is the student withdrawing a pending request.
func (s *EnrollmentService) Cancel(ctx context.Context, courseID, userID string) error {
	return s.removeFrom(ctx, courseID, userID, model.EnrollmentPending)
}

// Approve is the admin accepting a pending request. The row flips from
// pending to enrolled in one statement.
func (s *EnrollmentService) Approve(ctx context.Context, courseID, userID string) error {
	if err := s.repo.Approve(ctx, courseID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvalidTransition
		}
		return fmt.Errorf("failed to approve enrollment: %w", err)
	}

	s.publishDecision(ctx, courseID, userID, true)
	return nil
}

// Reject is the admin declining a pending request.
func (s *EnrollmentService) Reject(ctx context.Context, courseID, userID string) error {
	if err := s.removeFrom(ctx, courseID, userID, model.EnrollmentPending); err != nil {
		return err
	}
	s.publishDecision(ctx, courseID, userID, false)
	return nil
}

// Unenroll removes an enrolled student (their own action or the admin's).
func (s *EnrollmentService) Unenroll(ctx context.Context, courseID, userID string) error {
	return s.removeFrom(ctx, courseID, userID, model.EnrollmentEnrolled)
}

// Roster returns the course's enrolled students and pending requests.
func (s *EnrollmentService) Roster(ctx context.Context, courseID string) (students, pending []model.CourseMember, err error) {
	students, err = s.repo.ListMembers(ctx, courseID, model.EnrollmentEnrolled)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list students: %w", err)
	}
	pending, err = s.repo.ListMembers(ctx, courseID, model.EnrollmentPending)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	return students, pending, nil
}

func (s *EnrollmentService) removeFrom(ctx context.Context, courseID, userID string, required model.EnrollmentState) error {
	state, err := s.State(ctx, courseID, userID)
	if err != nil {
		return err
	}
	if state != required {
		return ErrInvalidTransition
	}

	if err := s.repo.RemoveMember(ctx, courseID, userID); err != nil {
		return fmt.Errorf("failed to remove course membership: %w", err)
	}
	return nil
}

func (s *EnrollmentService) publishDecision(ctx context.Context, courseID, userID string, approved bool) {
	event := messaging.EmailEvent{
		Kind:       messaging.EmailKindEnrollmentDecision,
		UserID:     userID,
		CourseID:   courseID,
		Approved:   approved,
		OccurredAt: time.Now(),
	}
	if err := s.producer.PublishEmail(ctx, event); err != nil {
		log.Ctx(ctx).Warn().Err(err).
			Str("course_id", courseID).
			Str("user_id", userID).
			Msg("Failed to publish enrollment decision email event")
	}
}
