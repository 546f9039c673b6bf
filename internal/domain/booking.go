package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingPaid      BookingStatus = "PAID"
	BookingCancelled BookingStatus = "CANCELLED"
)

func (s BookingStatus) Valid() bool {
	return s == BookingPending || s == BookingPaid || s == BookingCancelled
}

func (s BookingStatus) Terminal() bool {
	return s == BookingPaid || s == BookingCancelled
}

const (
	bookingCodePrefix    = "BK"
	bookingCodeSuffixLen = 10
)

type Booking struct {
	ID          int
	UserID      int
	ShowtimeID  int
	BookingCode string
	Status      BookingStatus
	TotalPrice  decimal.Decimal
	PaymentTime *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Confirm moves a pending booking to PAID and stamps the payment time.
func (b *Booking) Confirm(now time.Time) error {
	if b.Status != BookingPending {
		return IllegalTransition("booking %s is already %s", b.BookingCode, b.Status)
	}

	b.Status = BookingPaid
	b.PaymentTime = &now

	return nil
}

// Cancel moves a pending booking to CANCELLED as long as its showtime has not started.
func (b *Booking) Cancel(showtimeStart, now time.Time) error {
	switch b.Status {
	case BookingPaid:
		return IllegalTransition("booking %s is already paid and cannot be cancelled", b.BookingCode)
	case BookingCancelled:
		return IllegalTransition("booking %s is already cancelled", b.BookingCode)
	}

	if showtimeStart.Before(now) {
		return IllegalTransition("showtime of booking %s has already started", b.BookingCode)
	}

	b.Status = BookingCancelled

	return nil
}

type Ticket struct {
	ID         int
	BookingID  int
	ShowtimeID int
	SeatID     int
	SeatNumber string
	Row        string
	Col        int
	SeatType   SeatType
	Price      decimal.Decimal
	CreatedAt  time.Time
}

type BookingRefreshment struct {
	ID            int
	BookingID     int
	RefreshmentID int
	Name          string
	Quantity      int
	UnitPrice     decimal.Decimal
	TotalPrice    decimal.Decimal
}

type UserSummary struct {
	ID       int
	Username string
	Email    string
	FullName string
}

// BookingDetail is the fully loaded view of a booking returned to callers.
type BookingDetail struct {
	Booking
	User         UserSummary
	Showtime     Showtime
	Tickets      []Ticket
	Refreshments []BookingRefreshment
}

type RefreshmentOrder struct {
	RefreshmentID int
	Quantity      int
}

type CreateBookingInput struct {
	ShowtimeID   int
	SeatIDs      []int
	Refreshments []RefreshmentOrder
}

type BookingFilter struct {
	// UserID restricts results to one owner when non-zero.
	UserID int
	Status BookingStatus
	Pagination
}

// GenerateBookingCode returns "BK" followed by ten uppercase hex characters.
func GenerateBookingCode() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return bookingCodePrefix + strings.ToUpper(hex[:bookingCodeSuffixLen])
}

type BookingRepository interface {
	// Create stores the booking and returns ErrDuplicateBookingCode when the code is taken.
	Create(ctx context.Context, booking *Booking) error
	GetById(ctx context.Context, id int) (*Booking, error)
	GetAll(ctx context.Context, filter BookingFilter) ([]Booking, *Metadata, error)
	GetByShowtime(ctx context.Context, showtimeID int) ([]Booking, error)
	// UpdateStatus persists booking.Status and booking.PaymentTime if the stored status is still from.
	// It returns ErrEditConflict otherwise.
	UpdateStatus(ctx context.Context, booking *Booking, from BookingStatus) error
	Delete(ctx context.Context, id int) error
}

type TicketRepository interface {
	// CreateAll returns a *SeatConflictError if a seat is already held for the showtime.
	CreateAll(ctx context.Context, tickets []Ticket) error
	GetByBooking(ctx context.Context, bookingID int) ([]Ticket, error)
	// FindOccupied returns the tickets among seatIDs held by non-cancelled bookings of the showtime.
	FindOccupied(ctx context.Context, showtimeID int, seatIDs []int) ([]Ticket, error)
	GetBookedByShowtime(ctx context.Context, showtimeID int) ([]Ticket, error)
	DeleteByBooking(ctx context.Context, bookingID int) error
}

type BookingRefreshmentRepository interface {
	CreateAll(ctx context.Context, items []BookingRefreshment) error
	GetByBooking(ctx context.Context, bookingID int) ([]BookingRefreshment, error)
	DeleteByBooking(ctx context.Context, bookingID int) error
}
