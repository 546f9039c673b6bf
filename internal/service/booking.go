package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/metinatakli/cinema-booking-system/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// bookingCodeAttempts bounds how often a colliding booking code is regenerated.
const bookingCodeAttempts = 3

type BookingService struct {
	store     domain.Store
	cache     domain.BookedSeatsCache
	publisher domain.EventPublisher
	logger    *slog.Logger
	metrics   *bookingMetrics
	now       func() time.Time
	newCode   func() string
}

func NewBookingService(
	store domain.Store,
	cache domain.BookedSeatsCache,
	publisher domain.EventPublisher,
	logger *slog.Logger) *BookingService {

	return &BookingService{
		store:     store,
		cache:     cache,
		publisher: publisher,
		logger:    discardLogger(logger),
		metrics:   newBookingMetrics(),
		now:       time.Now,
		newCode:   domain.GenerateBookingCode,
	}
}

var _ domain.BookingService = (*BookingService)(nil)

func (s *BookingService) Create(
	ctx context.Context,
	caller domain.Caller,
	input domain.CreateBookingInput) (*domain.BookingDetail, error) {

	ctx, span := tracer.Start(ctx, "BookingService.Create", trace.WithAttributes(
		attribute.Int("showtime.id", input.ShowtimeID),
		attribute.Int("seats.count", len(input.SeatIDs)),
	))
	defer span.End()

	err := validateBookingInput(input)
	if err != nil {
		return nil, err
	}

	var detail *domain.BookingDetail

	err = s.store.InTx(ctx, func(tx domain.Store) error {
		user, err := tx.Users().GetById(ctx, caller.UserID)
		if err != nil {
			return notFound(err, "user", caller.UserID)
		}

		// Holding the showtime row serializes bookings for the same showtime, so the
		// occupancy check below and the ticket inserts act as one unit.
		showtime, err := tx.Showtimes().Lock(ctx, input.ShowtimeID)
		if err != nil {
			return notFound(err, "showtime", input.ShowtimeID)
		}

		if showtime.HasStarted(s.now()) {
			return domain.InvalidRequest("showtime %d has already started", showtime.ID)
		}

		seats, err := s.loadSeats(ctx, tx, showtime, input.SeatIDs)
		if err != nil {
			return err
		}

		occupied, err := tx.Tickets().FindOccupied(ctx, showtime.ID, input.SeatIDs)
		if err != nil {
			return err
		}

		if len(occupied) > 0 {
			numbers := make([]string, len(occupied))
			for i, t := range occupied {
				numbers[i] = t.SeatNumber
			}

			return &domain.SeatConflictError{SeatNumbers: numbers}
		}

		lines, err := s.priceRefreshments(ctx, tx, input.Refreshments)
		if err != nil {
			return err
		}

		booking := domain.Booking{
			UserID:     user.ID,
			ShowtimeID: showtime.ID,
			Status:     domain.BookingPending,
			TotalPrice: domain.TotalPrice(showtime.Price, len(seats), lines),
		}

		err = s.insertWithUniqueCode(ctx, tx, &booking)
		if err != nil {
			return err
		}

		tickets := make([]domain.Ticket, len(seats))
		for i, seat := range seats {
			tickets[i] = domain.Ticket{
				BookingID:  booking.ID,
				ShowtimeID: showtime.ID,
				SeatID:     seat.ID,
				SeatNumber: seat.SeatNumber,
				Row:        seat.Row,
				Col:        seat.Col,
				SeatType:   seat.Type,
				Price:      showtime.Price,
			}
		}

		err = tx.Tickets().CreateAll(ctx, tickets)
		if err != nil {
			return err
		}

		if len(lines) > 0 {
			for i := range lines {
				lines[i].BookingID = booking.ID
			}

			err = tx.BookingRefreshments().CreateAll(ctx, lines)
			if err != nil {
				return err
			}
		}

		detail = &domain.BookingDetail{
			Booking:      booking,
			User:         user.Summary(),
			Showtime:     *showtime,
			Tickets:      tickets,
			Refreshments: lines,
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrSeatConflict) {
			s.metrics.add(ctx, s.metrics.seatConflicts)
		}

		span.RecordError(err)

		return nil, err
	}

	s.metrics.add(ctx, s.metrics.created)
	s.invalidate(ctx, detail.ShowtimeID)
	s.publish(ctx, domain.BookingCreatedEvent, detail)

	return detail, nil
}

func validateBookingInput(input domain.CreateBookingInput) error {
	if len(input.SeatIDs) == 0 {
		return domain.InvalidRequest("at least one seat must be selected")
	}

	if id, dup := duplicateInts(input.SeatIDs); dup {
		return domain.InvalidRequest("seat %d is selected more than once", id)
	}

	refreshmentIDs := make([]int, len(input.Refreshments))
	for i, r := range input.Refreshments {
		if r.Quantity < 1 {
			return domain.InvalidRequest("quantity of refreshment %d must be at least 1", r.RefreshmentID)
		}

		refreshmentIDs[i] = r.RefreshmentID
	}

	if id, dup := duplicateInts(refreshmentIDs); dup {
		return domain.InvalidRequest("refreshment %d is listed more than once", id)
	}

	return nil
}

// loadSeats returns the requested seats in request order after checking they exist
// and belong to the showtime's room.
func (s *BookingService) loadSeats(
	ctx context.Context,
	tx domain.Store,
	showtime *domain.Showtime,
	seatIDs []int) ([]domain.Seat, error) {

	found, err := tx.Seats().GetByIds(ctx, seatIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]domain.Seat, len(found))
	present := make(map[int]bool, len(found))
	for _, seat := range found {
		byID[seat.ID] = seat
		present[seat.ID] = true
	}

	if id, missing := firstMissing(seatIDs, present); missing {
		return nil, domain.NotFound("seat", id)
	}

	seats := make([]domain.Seat, len(seatIDs))
	for i, id := range seatIDs {
		seat := byID[id]
		if seat.RoomID != showtime.RoomID {
			return nil, domain.InvalidRequest("seat %s does not belong to the room of showtime %d", seat.SeatNumber, showtime.ID)
		}

		seats[i] = seat
	}

	return seats, nil
}

func (s *BookingService) priceRefreshments(
	ctx context.Context,
	tx domain.Store,
	orders []domain.RefreshmentOrder) ([]domain.BookingRefreshment, error) {

	if len(orders) == 0 {
		return nil, nil
	}

	ids := make([]int, len(orders))
	for i, o := range orders {
		ids[i] = o.RefreshmentID
	}

	found, err := tx.Refreshments().GetByIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]domain.Refreshment, len(found))
	present := make(map[int]bool, len(found))
	for _, r := range found {
		byID[r.ID] = r
		present[r.ID] = true
	}

	if id, missing := firstMissing(ids, present); missing {
		return nil, domain.NotFound("refreshment", id)
	}

	lines := make([]domain.BookingRefreshment, len(orders))
	for i, o := range orders {
		item := byID[o.RefreshmentID]
		if !item.IsCurrent {
			return nil, domain.InvalidRequest("refreshment %s is no longer sold", item.Name)
		}

		lines[i] = domain.BookingRefreshment{
			RefreshmentID: item.ID,
			Name:          item.Name,
			Quantity:      o.Quantity,
			UnitPrice:     item.Price,
			TotalPrice:    domain.LineTotal(item.Price, o.Quantity),
		}
	}

	return lines, nil
}

func (s *BookingService) insertWithUniqueCode(ctx context.Context, tx domain.Store, booking *domain.Booking) error {
	var err error

	for range bookingCodeAttempts {
		booking.BookingCode = s.newCode()

		err = tx.Bookings().Create(ctx, booking)
		if !errors.Is(err, domain.ErrDuplicateBookingCode) {
			return err
		}
	}

	return err
}

func (s *BookingService) List(
	ctx context.Context,
	caller domain.Caller,
	filter domain.BookingFilter) ([]domain.Booking, *domain.Metadata, error) {

	if !caller.IsAdmin() {
		filter.UserID = caller.UserID
	}

	return s.store.Bookings().GetAll(ctx, filter)
}

func (s *BookingService) Get(ctx context.Context, caller domain.Caller, id int) (*domain.BookingDetail, error) {
	booking, err := s.store.Bookings().GetById(ctx, id)
	if err != nil {
		return nil, notFound(err, "booking", id)
	}

	if !domain.CanView(caller, booking) {
		return nil, domain.ErrForbidden
	}

	return s.loadDetail(ctx, s.store, booking)
}

func (s *BookingService) Confirm(ctx context.Context, caller domain.Caller, id int) (*domain.BookingDetail, error) {
	var detail *domain.BookingDetail

	err := s.store.InTx(ctx, func(tx domain.Store) error {
		booking, err := tx.Bookings().GetById(ctx, id)
		if err != nil {
			return notFound(err, "booking", id)
		}

		if !domain.CanConfirm(caller, booking) {
			return domain.ErrForbidden
		}

		err = booking.Confirm(s.now())
		if err != nil {
			return err
		}

		err = tx.Bookings().UpdateStatus(ctx, booking, domain.BookingPending)
		if err != nil {
			return err
		}

		detail, err = s.loadDetail(ctx, tx, booking)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.add(ctx, s.metrics.confirmed)
	s.publish(ctx, domain.BookingConfirmedEvent, detail)

	return detail, nil
}

func (s *BookingService) Cancel(ctx context.Context, caller domain.Caller, id int) (*domain.BookingDetail, error) {
	var detail *domain.BookingDetail

	err := s.store.InTx(ctx, func(tx domain.Store) error {
		booking, err := tx.Bookings().GetById(ctx, id)
		if err != nil {
			return notFound(err, "booking", id)
		}

		if !domain.CanCancel(caller, booking) {
			return domain.ErrForbidden
		}

		showtime, err := tx.Showtimes().GetById(ctx, booking.ShowtimeID)
		if err != nil {
			return notFound(err, "showtime", booking.ShowtimeID)
		}

		err = booking.Cancel(showtime.StartTime, s.now())
		if err != nil {
			return err
		}

		err = tx.Bookings().UpdateStatus(ctx, booking, domain.BookingPending)
		if err != nil {
			return err
		}

		detail, err = s.loadDetail(ctx, tx, booking)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.add(ctx, s.metrics.cancelled)
	s.invalidate(ctx, detail.ShowtimeID)
	s.publish(ctx, domain.BookingCancelledEvent, detail)

	return detail, nil
}

// Delete removes a booking together with its tickets and refreshment lines.
func (s *BookingService) Delete(ctx context.Context, caller domain.Caller, id int) error {
	err := requireAdmin(caller)
	if err != nil {
		return err
	}

	var showtimeID int

	err = s.store.InTx(ctx, func(tx domain.Store) error {
		booking, err := tx.Bookings().GetById(ctx, id)
		if err != nil {
			return notFound(err, "booking", id)
		}

		showtimeID = booking.ShowtimeID

		return deleteBooking(ctx, tx, booking.ID)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, showtimeID)

	return nil
}

func deleteBooking(ctx context.Context, tx domain.Store, id int) error {
	err := tx.Tickets().DeleteByBooking(ctx, id)
	if err != nil {
		return err
	}

	err = tx.BookingRefreshments().DeleteByBooking(ctx, id)
	if err != nil {
		return err
	}

	return tx.Bookings().Delete(ctx, id)
}

// BookedSeats lists the tickets that currently hold seats of the showtime.
// The answer may be served from cache and is advisory only.
func (s *BookingService) BookedSeats(ctx context.Context, showtimeID int) ([]domain.Ticket, error) {
	tickets, version, ok, err := s.cache.Get(ctx, showtimeID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to read booked seats from cache", "showtime_id", showtimeID, "error", err)
	}

	if ok {
		return tickets, nil
	}

	_, err = s.store.Showtimes().GetById(ctx, showtimeID)
	if err != nil {
		return nil, notFound(err, "showtime", showtimeID)
	}

	tickets, err = s.store.Tickets().GetBookedByShowtime(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	err = s.cache.Set(ctx, showtimeID, version, tickets)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to cache booked seats", "showtime_id", showtimeID, "error", err)
	}

	return tickets, nil
}

func (s *BookingService) TicketsByBooking(ctx context.Context, caller domain.Caller, bookingID int) ([]domain.Ticket, error) {
	booking, err := s.store.Bookings().GetById(ctx, bookingID)
	if err != nil {
		return nil, notFound(err, "booking", bookingID)
	}

	if !domain.CanView(caller, booking) {
		return nil, domain.ErrForbidden
	}

	return s.store.Tickets().GetByBooking(ctx, bookingID)
}

func (s *BookingService) loadDetail(
	ctx context.Context,
	store domain.Store,
	booking *domain.Booking) (*domain.BookingDetail, error) {

	showtime, err := store.Showtimes().GetById(ctx, booking.ShowtimeID)
	if err != nil {
		return nil, notFound(err, "showtime", booking.ShowtimeID)
	}

	user, err := store.Users().GetById(ctx, booking.UserID)
	if err != nil {
		return nil, notFound(err, "user", booking.UserID)
	}

	tickets, err := store.Tickets().GetByBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	refreshments, err := store.BookingRefreshments().GetByBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	return &domain.BookingDetail{
		Booking:      *booking,
		User:         user.Summary(),
		Showtime:     *showtime,
		Tickets:      tickets,
		Refreshments: refreshments,
	}, nil
}

func (s *BookingService) invalidate(ctx context.Context, showtimeID int) {
	err := s.cache.Invalidate(ctx, showtimeID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate booked seats cache", "showtime_id", showtimeID, "error", err)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType domain.BookingEventType, detail *domain.BookingDetail) {
	event := domain.NewBookingEvent(eventType, detail, s.now())

	err := s.publisher.Publish(ctx, event)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to publish booking event",
			"event", eventType, "booking_id", detail.ID, "error", err)
	}
}
