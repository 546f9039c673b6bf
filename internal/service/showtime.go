package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/metinatakli/cinema-booking-system/internal/domain"
)

// upcomingShowtimeLead hides showtimes that start too soon to be booked from
// the per-movie listing.
const upcomingShowtimeLead = 30 * time.Minute

type ShowtimeService struct {
	store  domain.Store
	cache  domain.BookedSeatsCache
	logger *slog.Logger
	now    func() time.Time
}

func NewShowtimeService(store domain.Store, cache domain.BookedSeatsCache, logger *slog.Logger) *ShowtimeService {
	return &ShowtimeService{
		store:  store,
		cache:  cache,
		logger: discardLogger(logger),
		now:    time.Now,
	}
}

var _ domain.ShowtimeService = (*ShowtimeService)(nil)

func (s *ShowtimeService) Create(
	ctx context.Context,
	caller domain.Caller,
	input domain.ShowtimeInput) (*domain.Showtime, error) {

	err := requireAdmin(caller)
	if err != nil {
		return nil, err
	}

	var showtime *domain.Showtime

	err = s.store.InTx(ctx, func(tx domain.Store) error {
		showtime, err = s.schedule(ctx, tx, 0, input)
		if err != nil {
			return err
		}

		return tx.Showtimes().Create(ctx, showtime)
	})
	if err != nil {
		return nil, s.describeConflict(ctx, err, showtime)
	}

	return showtime, nil
}

func (s *ShowtimeService) Update(
	ctx context.Context,
	caller domain.Caller,
	id int,
	input domain.ShowtimeInput) (*domain.Showtime, error) {

	err := requireAdmin(caller)
	if err != nil {
		return nil, err
	}

	var showtime *domain.Showtime

	err = s.store.InTx(ctx, func(tx domain.Store) error {
		current, err := tx.Showtimes().Lock(ctx, id)
		if err != nil {
			return notFound(err, "showtime", id)
		}

		// tickets reference seats of the current room
		if input.RoomID != current.RoomID {
			bookings, err := tx.Bookings().GetByShowtime(ctx, id)
			if err != nil {
				return err
			}

			if hasActiveBookings(bookings) {
				return domain.InvalidRequest("showtime %d has active bookings and cannot change room", id)
			}
		}

		showtime, err = s.schedule(ctx, tx, id, input)
		if err != nil {
			return err
		}

		return tx.Showtimes().Update(ctx, showtime)
	})
	if err != nil {
		return nil, s.describeConflict(ctx, err, showtime)
	}

	return showtime, nil
}

// schedule validates input and checks it against the room's other showtimes.
// The room row stays locked until the caller's transaction ends so two
// schedulers cannot both pass the overlap check for the same room.
func (s *ShowtimeService) schedule(
	ctx context.Context,
	tx domain.Store,
	id int,
	input domain.ShowtimeInput) (*domain.Showtime, error) {

	if !input.Price.IsPositive() {
		return nil, domain.InvalidRequest("ticket price must be greater than zero")
	}

	movie, err := tx.Movies().GetById(ctx, input.MovieID)
	if err != nil {
		return nil, notFound(err, "movie", input.MovieID)
	}

	_, err = tx.Rooms().Lock(ctx, input.RoomID)
	if err != nil {
		return nil, notFound(err, "room", input.RoomID)
	}

	start := input.StartTime

	var end time.Time
	if input.EndTime != nil {
		end = *input.EndTime
	} else {
		if movie.Duration <= 0 {
			return nil, domain.InvalidRequest("movie %d has no duration to derive the end time from", movie.ID)
		}

		end = start.Add(time.Duration(movie.Duration) * time.Minute)
	}

	if !start.Before(end) {
		return nil, domain.InvalidRequest("start time must be before end time")
	}

	if start.Before(s.now().Add(-domain.ShowtimeStartTolerance)) {
		return nil, domain.InvalidRequest("start time must not be in the past")
	}

	if movie.Status == domain.MovieEnded {
		return nil, domain.InvalidRequest("movie %s has ended and cannot be scheduled", movie.Title)
	}

	if !movie.ShowsOn(start) {
		return nil, domain.InvalidRequest("showtime date must be between %s and %s",
			movie.ReleaseDate.Format(time.DateOnly), movie.EndDate.Format(time.DateOnly))
	}

	conflicts, err := tx.Showtimes().FindConflicting(ctx, input.RoomID, start, end, id)
	if err != nil {
		return nil, err
	}

	if len(conflicts) > 0 {
		return nil, &domain.SchedulingConflictError{Conflicts: conflicts}
	}

	return &domain.Showtime{
		ID:        id,
		MovieID:   movie.ID,
		RoomID:    input.RoomID,
		StartTime: start,
		EndTime:   end,
		Price:     input.Price,
	}, nil
}

// describeConflict fills in the showtimes behind a conflict the database
// caught on write. A concurrent scheduler commits after our own overlap check,
// so its row is only visible outside the failed transaction.
func (s *ShowtimeService) describeConflict(ctx context.Context, err error, showtime *domain.Showtime) error {
	var conflict *domain.SchedulingConflictError
	if !errors.As(err, &conflict) || len(conflict.Conflicts) > 0 || showtime == nil {
		return err
	}

	conflicts, findErr := s.store.Showtimes().FindConflicting(ctx,
		showtime.RoomID, showtime.StartTime, showtime.EndTime, showtime.ID)
	if findErr != nil {
		s.logger.WarnContext(ctx, "failed to look up conflicting showtimes", "room_id", showtime.RoomID, "error", findErr)
		return err
	}

	return &domain.SchedulingConflictError{Conflicts: conflicts}
}

// Delete removes a showtime once none of its bookings still hold seats.
// Cancelled bookings are deleted together with their tickets and refreshments.
func (s *ShowtimeService) Delete(ctx context.Context, caller domain.Caller, id int) error {
	err := requireAdmin(caller)
	if err != nil {
		return err
	}

	err = s.store.InTx(ctx, func(tx domain.Store) error {
		_, err := tx.Showtimes().Lock(ctx, id)
		if err != nil {
			return notFound(err, "showtime", id)
		}

		bookings, err := tx.Bookings().GetByShowtime(ctx, id)
		if err != nil {
			return err
		}

		if hasActiveBookings(bookings) {
			return domain.InvalidRequest("showtime %d has active bookings and cannot be deleted", id)
		}

		for _, b := range bookings {
			err = deleteBooking(ctx, tx, b.ID)
			if err != nil {
				return err
			}
		}

		return tx.Showtimes().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	err = s.cache.Invalidate(ctx, id)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate booked seats cache", "showtime_id", id, "error", err)
	}

	return nil
}

func (s *ShowtimeService) Get(ctx context.Context, id int) (*domain.Showtime, error) {
	showtime, err := s.store.Showtimes().GetById(ctx, id)
	if err != nil {
		return nil, notFound(err, "showtime", id)
	}

	return showtime, nil
}

func (s *ShowtimeService) ListByMovie(ctx context.Context, movieID int) ([]domain.Showtime, error) {
	_, err := s.store.Movies().GetById(ctx, movieID)
	if err != nil {
		return nil, notFound(err, "movie", movieID)
	}

	return s.store.Showtimes().GetByMovieStartingAfter(ctx, movieID, s.now().Add(upcomingShowtimeLead))
}

// ListByDate returns showtimes starting on the calendar day of date in date's location.
func (s *ShowtimeService) ListByDate(ctx context.Context, date time.Time) ([]domain.Showtime, error) {
	y, m, d := date.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, date.Location())

	return s.store.Showtimes().GetBetween(ctx, from, from.AddDate(0, 0, 1))
}

func (s *ShowtimeService) FindConflicts(
	ctx context.Context,
	roomID int,
	start, end time.Time,
	excludeID int) ([]domain.Showtime, error) {

	if !start.Before(end) {
		return nil, domain.InvalidRequest("start time must be before end time")
	}

	return s.store.Showtimes().FindConflicting(ctx, roomID, start, end, excludeID)
}

func hasActiveBookings(bookings []domain.Booking) bool {
	for _, b := range bookings {
		if b.Status != domain.BookingCancelled {
			return true
		}
	}

	return false
}
