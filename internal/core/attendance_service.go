package core

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"learnhr.service/internal/core/model"
	"learnhr.service/internal/ports/repository"
	"learnhr.service/internal/ports/storage"
)

// halfDayHours is the worked-hours floor below which a day is reclassified.
const halfDayHours = 4.0

// IsNetworkAllowed reports whether addr may check in or out under the policy.
// An empty or unknown address always fails closed.
func IsNetworkAllowed(addr string, p *model.CompanyPolicy) bool {
	if addr == "" || p == nil {
		return false
	}
	for _, allowed := range p.AllowedNetworks {
		if addr == allowed {
			return true
		}
	}
	return false
}

// ClassifyCheckIn decides the status for a check-in timestamp. Minutes past
// the policy's work start within the late threshold still count as present.
// Without a configured policy there is no rule to break, so the check-in is
// present.
func ClassifyCheckIn(at time.Time, p *model.CompanyPolicy) (model.AttendanceStatus, int) {
	if p == nil {
		return model.StatusPresent, 0
	}

	hour, minute, ok := parseClock(p.WorkStart)
	if !ok {
		return model.StatusPresent, 0
	}

	workStart := time.Date(at.Year(), at.Month(), at.Day(), hour, minute, 0, 0, at.Location())
	lateMinutes := int(math.Floor(at.Sub(workStart).Minutes()))

	// Early arrivals produce negative minutes and land under the threshold.
	if lateMinutes <= p.LateThresholdMinutes {
		return model.StatusPresent, 0
	}
	return model.StatusLate, lateMinutes
}

// EvaluateWorkHours computes worked hours (one decimal) for a completed day
// and returns the final status. Short days become half-day regardless of the
// check-in classification; otherwise the prior status stands.
func EvaluateWorkHours(checkIn, checkOut time.Time, prior model.AttendanceStatus) (float64, model.AttendanceStatus) {
	hours := math.Round(checkOut.Sub(checkIn).Hours()*10) / 10
	if hours < halfDayHours {
		return hours, model.StatusHalfDay
	}
	return hours, prior
}

// parseClock parses "HH:MM".
func parseClock(s string) (hour, minute int, ok bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// AttendanceService orchestrates the check-in/out workflows: network gating,
// photo upload, classification and persistence.
type AttendanceService struct {
	repo     repository.AttendanceRepository
	policies repository.PolicyRepository
	photos   storage.BlobStore
}

// NewAttendanceService wires the attendance repository, the policy store and
// the photo blob store.
func NewAttendanceService(repo repository.AttendanceRepository, policies repository.PolicyRepository, photos storage.BlobStore) *AttendanceService {
	return &AttendanceService{
		repo:     repo,
		policies: policies,
		photos:   photos,
	}
}

// CheckIn opens today's attendance record for an employee.
func (s *AttendanceService) CheckIn(ctx context.Context, employeeID string, now time.Time, addr string, photo []byte, contentType string) (*model.AttendanceRecord, error) {
	policy, err := s.policies.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load company policy: %w", err)
	}

	if err := s.gate(addr, policy); err != nil {
		return nil, err
	}

	date := now.Format("2006-01-02")
	existing, err := s.repo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance record: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyCheckedIn
	}

	photoURL, err := s.uploadPhoto(ctx, employeeID, date, "in", photo, contentType)
	if err != nil {
		return nil, err
	}

	status, lateMinutes := ClassifyCheckIn(now, policy)

	rec := &model.AttendanceRecord{
		EmployeeID:      employeeID,
		Date:            date,
		CheckInAt:       now,
		CheckInAddress:  addr,
		CheckInPhotoURL: photoURL,
		Status:          status,
		LateMinutes:     lateMinutes,
	}

	id, err := s.repo.CreateCheckIn(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to create check-in record: %w", err)
	}
	rec.ID = id

	log.Ctx(ctx).Info().
		Str("employee_id", employeeID).
		Str("status", string(status)).
		Int("late_minutes", lateMinutes).
		Msg("Check-in recorded")

	return rec, nil
}

// CheckOut closes today's attendance record, computing worked hours and the
// final status. It requires an open record with a check-in.
func (s *AttendanceService) CheckOut(ctx context.Context, employeeID string, now time.Time, addr string, photo []byte, contentType string) (*model.AttendanceRecord, error) {
	policy, err := s.policies.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load company policy: %w", err)
	}

	if err := s.gate(addr, policy); err != nil {
		return nil, err
	}

	date := now.Format("2006-01-02")
	rec, err := s.repo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance record: %w", err)
	}
	if rec == nil {
		return nil, ErrCheckInRequired
	}
	if rec.CheckOutAt != nil {
		return nil, ErrAlreadyCheckedOut
	}
	if now.Before(rec.CheckInAt) {
		return nil, ErrCheckOutBeforeIn
	}

	photoURL, err := s.uploadPhoto(ctx, employeeID, date, "out", photo, contentType)
	if err != nil {
		return nil, err
	}

	hours, status := EvaluateWorkHours(rec.CheckInAt, now, rec.Status)

	if err := s.repo.UpdateCheckOut(ctx, rec.ID, now, addr, photoURL, hours, status); err != nil {
		return nil, fmt.Errorf("failed to update check-out record: %w", err)
	}

	rec.CheckOutAt = &now
	rec.CheckOutAddress = addr
	rec.CheckOutPhotoURL = photoURL
	rec.WorkedHours = hours
	rec.Status = status

	log.Ctx(ctx).Info().
		Str("employee_id", employeeID).
		Float64("worked_hours", hours).
		Str("status", string(status)).
		Msg("Check-out recorded")

	return rec, nil
}

// History returns an employee's records for a month ("2006-01").
func (s *AttendanceService) History(ctx context.Context, employeeID, month string) ([]model.AttendanceRecord, error) {
	return s.repo.ListMonth(ctx, employeeID, month)
}

// gate enforces the network allow-list. An unconfigured allow-list means the
// administrator has not restricted networks yet, so nothing is enforced.
func (s *AttendanceService) gate(addr string, policy *model.CompanyPolicy) error {
	if policy == nil || len(policy.AllowedNetworks) == 0 {
		return nil
	}
	if !IsNetworkAllowed(addr, policy) {
		return ErrNotOnCompanyNetwork
	}
	return nil
}

func (s *AttendanceService) uploadPhoto(ctx context.Context, employeeID, date, direction string, photo []byte, contentType string) (string, error) {
	if len(photo) == 0 {
		return "", nil
	}
	key := fmt.Sprintf("attendance/%s/%s-%s-%s", employeeID, date, direction, uuid.NewString())
	return s.photos.Upload(ctx, key, photo, contentType)
}
