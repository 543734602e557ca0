package core

import "errors"

var (
	// ErrInvalidPolicy means a policy value is out of domain (e.g. working days < 1).
	ErrInvalidPolicy = errors.New("working days must be at least 1")

	// Attendance preconditions.
	ErrNotOnCompanyNetwork = errors.New("check-in/out is only allowed from the company network")
	ErrAlreadyCheckedIn    = errors.New("employee has already checked in today")
	ErrCheckInRequired     = errors.New("check-out requires a prior check-in for today")
	ErrAlreadyCheckedOut   = errors.New("employee has already checked out today")
	ErrCheckOutBeforeIn    = errors.New("check-out time is before check-in time")

	// Learning preconditions.
	ErrInvalidDuration     = errors.New("lesson duration must be positive")
	ErrAnswerCountMismatch = errors.New("answer count does not match the answer key")
	ErrActiveQuizResult    = errors.New("an active quiz result exists; discard it before re-attempting")
	ErrQuizResultNotFound  = errors.New("no quiz result found")

	// ErrInvalidTransition means an enrollment action is not allowed from the
	// user's current membership state.
	ErrInvalidTransition = errors.New("enrollment action not allowed from current state")
)
