// Package service holds the booking workflow and the showtime scheduler on top of a domain.Store.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/metinatakli/cinema-booking-system/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/metinatakli/cinema-booking-system/internal/service"

var tracer = otel.Tracer(instrumentationName)

// notFound attaches the entity kind and id to a bare ErrRecordNotFound.
func notFound(err error, kind string, id int) error {
	if errors.Is(err, domain.ErrRecordNotFound) {
		return domain.NotFound(kind, id)
	}

	return err
}

type bookingMetrics struct {
	created       metric.Int64Counter
	seatConflicts metric.Int64Counter
	cancelled     metric.Int64Counter
	confirmed     metric.Int64Counter
}

func newBookingMetrics() *bookingMetrics {
	meter := otel.Meter(instrumentationName)

	m := &bookingMetrics{}
	m.created, _ = meter.Int64Counter("bookings.created", metric.WithDescription("Bookings successfully created"))
	m.seatConflicts, _ = meter.Int64Counter("bookings.seat_conflicts", metric.WithDescription("Booking attempts rejected because a seat was taken"))
	m.cancelled, _ = meter.Int64Counter("bookings.cancelled")
	m.confirmed, _ = meter.Int64Counter("bookings.confirmed")

	return m
}

func (m *bookingMetrics) add(ctx context.Context, c metric.Int64Counter) {
	if c != nil {
		c.Add(ctx, 1)
	}
}

func requireAdmin(caller domain.Caller) error {
	if !domain.CanManageCatalog(caller) {
		return domain.ErrForbidden
	}

	return nil
}

func discardLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}

	return slog.New(slog.DiscardHandler)
}

func duplicateInts(ids []int) (int, bool) {
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return id, true
		}
		seen[id] = true
	}

	return 0, false
}

func firstMissing(ids []int, found map[int]bool) (int, bool) {
	for _, id := range ids {
		if !found[id] {
			return id, true
		}
	}

	return 0, false
}
