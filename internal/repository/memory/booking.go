package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/metinatakli/cinema-booking-system/internal/domain"
)

type showtimeRepo struct{ s *Store }

func (d *data) enrichShowtime(st domain.Showtime) domain.Showtime {
	st.MovieTitle = d.movies[st.MovieID].Title

	room := d.rooms[st.RoomID]
	st.RoomNumber = room.RoomNumber
	st.CinemaID = room.CinemaID
	st.CinemaName = d.cinemas[room.CinemaID].Name

	return st
}

func sortByStart(showtimes []domain.Showtime) {
	slices.SortFunc(showtimes, func(a, b domain.Showtime) int {
		return cmp.Or(a.StartTime.Compare(b.StartTime), cmp.Compare(a.ID, b.ID))
	})
}

func (r *showtimeRepo) Create(ctx context.Context, showtime *domain.Showtime) error {
	return r.s.view(func(d *data) error {
		if _, ok := d.movies[showtime.MovieID]; !ok {
			return domain.NotFound("movie", showtime.MovieID)
		}
		if _, ok := d.rooms[showtime.RoomID]; !ok {
			return domain.NotFound("room", showtime.RoomID)
		}

		showtime.ID = d.next("showtimes")
		showtime.CreatedAt = r.s.now()
		d.showtimes[showtime.ID] = *showtime
		*showtime = d.enrichShowtime(*showtime)

		return nil
	})
}

func (r *showtimeRepo) Update(ctx context.Context, showtime *domain.Showtime) error {
	return r.s.view(func(d *data) error {
		existing, ok := d.showtimes[showtime.ID]
		if !ok {
			return domain.ErrRecordNotFound
		}

		showtime.CreatedAt = existing.CreatedAt
		d.showtimes[showtime.ID] = *showtime
		*showtime = d.enrichShowtime(*showtime)

		return nil
	})
}

func (r *showtimeRepo) Delete(ctx context.Context, id int) error {
	return r.s.view(func(d *data) error {
		if _, ok := d.showtimes[id]; !ok {
			return domain.ErrRecordNotFound
		}

		for _, b := range d.bookings {
			if b.ShowtimeID == id {
				return domain.InvalidRequest("showtime %d still has bookings", id)
			}
		}

		delete(d.showtimes, id)

		return nil
	})
}

func (r *showtimeRepo) GetById(ctx context.Context, id int) (*domain.Showtime, error) {
	var showtime domain.Showtime

	err := r.s.view(func(d *data) error {
		st, ok := d.showtimes[id]
		if !ok {
			return domain.ErrRecordNotFound
		}

		showtime = d.enrichShowtime(st)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &showtime, nil
}

// Lock is a plain read: transactions already hold the store lock.
func (r *showtimeRepo) Lock(ctx context.Context, id int) (*domain.Showtime, error) {
	return r.GetById(ctx, id)
}

func (r *showtimeRepo) FindConflicting(
	ctx context.Context,
	roomID int,
	start, end time.Time,
	excludeID int) ([]domain.Showtime, error) {

	return r.filter(func(st domain.Showtime) bool {
		return st.RoomID == roomID && st.ID != excludeID && domain.Overlaps(start, end, st.StartTime, st.EndTime)
	})
}

func (r *showtimeRepo) GetByMovieStartingAfter(ctx context.Context, movieID int, after time.Time) ([]domain.Showtime, error) {
	return r.filter(func(st domain.Showtime) bool {
		return st.MovieID == movieID && !st.StartTime.Before(after)
	})
}

func (r *showtimeRepo) GetBetween(ctx context.Context, from, to time.Time) ([]domain.Showtime, error) {
	return r.filter(func(st domain.Showtime) bool {
		return !st.StartTime.Before(from) && st.StartTime.Before(to)
	})
}

func (r *showtimeRepo) filter(keep func(domain.Showtime) bool) ([]domain.Showtime, error) {
	var showtimes []domain.Showtime

	err := r.s.view(func(d *data) error {
		for _, st := range d.showtimes {
			if keep(st) {
				showtimes = append(showtimes, d.enrichShowtime(st))
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sortByStart(showtimes)

	return showtimes, nil
}

type bookingRepo struct{ s *Store }

func (r *bookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	return r.s.view(func(d *data) error {
		for _, b := range d.bookings {
			if b.BookingCode == booking.BookingCode {
				return domain.ErrDuplicateBookingCode
			}
		}

		booking.ID = d.next("bookings")
		booking.CreatedAt = r.s.now()
		booking.UpdatedAt = booking.CreatedAt
		d.bookings[booking.ID] = *booking

		return nil
	})
}

func (r *bookingRepo) GetById(ctx context.Context, id int) (*domain.Booking, error) {
	var booking domain.Booking

	err := r.s.view(func(d *data) error {
		b, ok := d.bookings[id]
		if !ok {
			return domain.ErrRecordNotFound
		}

		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *bookingRepo) GetAll(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, *domain.Metadata, error) {
	var bookings []domain.Booking

	err := r.s.view(func(d *data) error {
		for _, b := range d.bookings {
			if filter.UserID != 0 && b.UserID != filter.UserID {
				continue
			}
			if filter.Status != "" && b.Status != filter.Status {
				continue
			}

			bookings = append(bookings, b)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	slices.SortFunc(bookings, func(a, b domain.Booking) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.ID, a.ID))
	})

	start, end := filter.Window(len(bookings))
	metadata := domain.NewMetadata(len(bookings), filter.Page, filter.PageSize)

	return slices.Clone(bookings[start:end]), metadata, nil
}

func (r *bookingRepo) GetByShowtime(ctx context.Context, showtimeID int) ([]domain.Booking, error) {
	var bookings []domain.Booking

	err := r.s.view(func(d *data) error {
		for _, b := range d.bookings {
			if b.ShowtimeID == showtimeID {
				bookings = append(bookings, b)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(bookings, func(a, b domain.Booking) int { return cmp.Compare(a.ID, b.ID) })

	return bookings, nil
}

func (r *bookingRepo) UpdateStatus(ctx context.Context, booking *domain.Booking, from domain.BookingStatus) error {
	return r.s.view(func(d *data) error {
		stored, ok := d.bookings[booking.ID]
		if !ok {
			return domain.ErrRecordNotFound
		}

		if stored.Status != from {
			return domain.ErrEditConflict
		}

		stored.Status = booking.Status
		stored.PaymentTime = booking.PaymentTime
		stored.UpdatedAt = r.s.now()
		d.bookings[booking.ID] = stored

		booking.UpdatedAt = stored.UpdatedAt

		return nil
	})
}

func (r *bookingRepo) Delete(ctx context.Context, id int) error {
	return r.s.view(func(d *data) error {
		if _, ok := d.bookings[id]; !ok {
			return domain.ErrRecordNotFound
		}

		for _, t := range d.tickets {
			if t.BookingID == id {
				return domain.InvalidRequest("booking %d still has tickets", id)
			}
		}

		for _, br := range d.bookingRefreshments {
			if br.BookingID == id {
				return domain.InvalidRequest("booking %d still has refreshments", id)
			}
		}

		delete(d.bookings, id)

		return nil
	})
}

type ticketRepo struct{ s *Store }

func (d *data) enrichTicket(t domain.Ticket) domain.Ticket {
	seat := d.seats[t.SeatID]
	t.SeatNumber = seat.SeatNumber
	t.Row = seat.Row
	t.Col = seat.Col
	t.SeatType = seat.Type

	return t
}

// held reports whether the ticket belongs to a booking that still reserves its seat.
func (d *data) held(t domain.Ticket) bool {
	b, ok := d.bookings[t.BookingID]
	return ok && b.Status != domain.BookingCancelled
}

func (r *ticketRepo) CreateAll(ctx context.Context, tickets []domain.Ticket) error {
	return r.s.view(func(d *data) error {
		var taken []string

		for _, nt := range tickets {
			for _, t := range d.tickets {
				if t.ShowtimeID == nt.ShowtimeID && t.SeatID == nt.SeatID && d.held(t) {
					taken = append(taken, d.seats[nt.SeatID].SeatNumber)
				}
			}
		}

		if len(taken) > 0 {
			return &domain.SeatConflictError{SeatNumbers: taken}
		}

		for i := range tickets {
			tickets[i].ID = d.next("tickets")
			tickets[i].CreatedAt = r.s.now()
			d.tickets[tickets[i].ID] = tickets[i]
			tickets[i] = d.enrichTicket(tickets[i])
		}

		return nil
	})
}

func (r *ticketRepo) GetByBooking(ctx context.Context, bookingID int) ([]domain.Ticket, error) {
	return r.filter(func(d *data, t domain.Ticket) bool {
		return t.BookingID == bookingID
	})
}

func (r *ticketRepo) FindOccupied(ctx context.Context, showtimeID int, seatIDs []int) ([]domain.Ticket, error) {
	return r.filter(func(d *data, t domain.Ticket) bool {
		return t.ShowtimeID == showtimeID && slices.Contains(seatIDs, t.SeatID) && d.held(t)
	})
}

func (r *ticketRepo) GetBookedByShowtime(ctx context.Context, showtimeID int) ([]domain.Ticket, error) {
	return r.filter(func(d *data, t domain.Ticket) bool {
		return t.ShowtimeID == showtimeID && d.held(t)
	})
}

func (r *ticketRepo) DeleteByBooking(ctx context.Context, bookingID int) error {
	return r.s.view(func(d *data) error {
		for id, t := range d.tickets {
			if t.BookingID == bookingID {
				delete(d.tickets, id)
			}
		}

		return nil
	})
}

func (r *ticketRepo) filter(keep func(*data, domain.Ticket) bool) ([]domain.Ticket, error) {
	var tickets []domain.Ticket

	err := r.s.view(func(d *data) error {
		for _, t := range d.tickets {
			if keep(d, t) {
				tickets = append(tickets, d.enrichTicket(t))
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(tickets, func(a, b domain.Ticket) int { return cmp.Compare(a.ID, b.ID) })

	return tickets, nil
}

type bookingRefreshmentRepo struct{ s *Store }

func (r *bookingRefreshmentRepo) CreateAll(ctx context.Context, items []domain.BookingRefreshment) error {
	return r.s.view(func(d *data) error {
		for i := range items {
			for _, existing := range d.bookingRefreshments {
				if existing.BookingID == items[i].BookingID && existing.RefreshmentID == items[i].RefreshmentID {
					return domain.InvalidRequest("refreshment %d listed more than once", items[i].RefreshmentID)
				}
			}

			items[i].ID = d.next("booking_refreshments")
			items[i].Name = d.refreshments[items[i].RefreshmentID].Name
			d.bookingRefreshments[items[i].ID] = items[i]
		}

		return nil
	})
}

func (r *bookingRefreshmentRepo) GetByBooking(ctx context.Context, bookingID int) ([]domain.BookingRefreshment, error) {
	var items []domain.BookingRefreshment

	err := r.s.view(func(d *data) error {
		for _, item := range d.bookingRefreshments {
			if item.BookingID == bookingID {
				item.Name = d.refreshments[item.RefreshmentID].Name
				items = append(items, item)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(items, func(a, b domain.BookingRefreshment) int { return cmp.Compare(a.ID, b.ID) })

	return items, nil
}

func (r *bookingRefreshmentRepo) DeleteByBooking(ctx context.Context, bookingID int) error {
	return r.s.view(func(d *data) error {
		for id, item := range d.bookingRefreshments {
			if item.BookingID == bookingID {
				delete(d.bookingRefreshments, id)
			}
		}

		return nil
	})
}
