package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecordNotFound         = errors.New("record not found")
	ErrInvalidRequest         = errors.New("invalid request")
	ErrSchedulingConflict     = errors.New("showtime overlaps an existing showtime in the same room")
	ErrSeatConflict           = errors.New("seat(s) are already booked")
	ErrForbidden              = errors.New("you do not have permission to perform this action")
	ErrIllegalStateTransition = errors.New("illegal booking state transition")
	ErrEditConflict           = errors.New("edit conflict")
	ErrUserAlreadyExists      = errors.New("user already exists")
	ErrInvalidCredentials     = errors.New("invalid authentication credentials")
	ErrDuplicateBookingCode   = errors.New("duplicate booking code")
)

// NotFound wraps ErrRecordNotFound with the kind and id of the missing entity.
func NotFound(kind string, id int) error {
	return fmt.Errorf("%s %d: %w", kind, id, ErrRecordNotFound)
}

func InvalidRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

func IllegalTransition(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIllegalStateTransition, fmt.Sprintf(format, args...))
}

// SchedulingConflictError lists the showtimes a candidate interval overlaps.
type SchedulingConflictError struct {
	Conflicts []Showtime
}

func (e *SchedulingConflictError) Error() string {
	ids := make([]string, len(e.Conflicts))
	for i, s := range e.Conflicts {
		ids[i] = fmt.Sprintf("%d", s.ID)
	}

	if len(ids) == 0 {
		return ErrSchedulingConflict.Error()
	}

	return fmt.Sprintf("%s (conflicting showtimes: %s)", ErrSchedulingConflict, strings.Join(ids, ", "))
}

func (e *SchedulingConflictError) Unwrap() error {
	return ErrSchedulingConflict
}

// SeatConflictError names the seats already held by a non-cancelled booking.
type SeatConflictError struct {
	SeatNumbers []string
}

func (e *SeatConflictError) Error() string {
	if len(e.SeatNumbers) == 0 {
		return ErrSeatConflict.Error()
	}

	return fmt.Sprintf("seat(s) already booked: %s", strings.Join(e.SeatNumbers, ", "))
}

func (e *SeatConflictError) Unwrap() error {
	return ErrSeatConflict
}
