package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type BookingEventType string

const (
	BookingCreatedEvent   BookingEventType = "booking.created"
	BookingConfirmedEvent BookingEventType = "booking.confirmed"
	BookingCancelledEvent BookingEventType = "booking.cancelled"
)

type BookingEvent struct {
	Type        BookingEventType `json:"type"`
	BookingID   int              `json:"bookingId"`
	BookingCode string           `json:"bookingCode"`
	UserID      int              `json:"userId"`
	ShowtimeID  int              `json:"showtimeId"`
	Status      BookingStatus    `json:"status"`
	TotalPrice  decimal.Decimal  `json:"totalPrice"`
	SeatIDs     []int            `json:"seatIds,omitempty"`
	OccurredAt  time.Time        `json:"occurredAt"`
}

func NewBookingEvent(eventType BookingEventType, b *BookingDetail, now time.Time) BookingEvent {
	seatIDs := make([]int, len(b.Tickets))
	for i, t := range b.Tickets {
		seatIDs[i] = t.SeatID
	}

	return BookingEvent{
		Type:        eventType,
		BookingID:   b.ID,
		BookingCode: b.BookingCode,
		UserID:      b.UserID,
		ShowtimeID:  b.ShowtimeID,
		Status:      b.Status,
		TotalPrice:  b.TotalPrice,
		SeatIDs:     seatIDs,
		OccurredAt:  now,
	}
}

// EventPublisher delivers booking lifecycle events after the owning transaction commits.
type EventPublisher interface {
	Publish(ctx context.Context, event BookingEvent) error
}

// BookedSeatsCache caches the booked-seat view of a showtime. It is never consulted
// when deciding whether a booking may be created.
//
// Every Invalidate bumps the showtime's version. Get reports the version it saw
// and Set stores the tickets under it, so a view read from the database before
// an invalidation can never be served after it.
type BookedSeatsCache interface {
	Get(ctx context.Context, showtimeID int) (tickets []Ticket, version int64, ok bool, err error)
	Set(ctx context.Context, showtimeID int, version int64, tickets []Ticket) error
	Invalidate(ctx context.Context, showtimeID int) error
}
