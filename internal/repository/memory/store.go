// Package memory keeps every repository in process memory. Transactions are
// serializable: InTx holds the store lock for its whole duration and restores a
// snapshot when the callback fails.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/metinatakli/cinema-booking-system/internal/domain"
)

type data struct {
	movies              map[int]domain.Movie
	cinemas             map[int]domain.Cinema
	rooms               map[int]domain.Room
	seats               map[int]domain.Seat
	showtimes           map[int]domain.Showtime
	bookings            map[int]domain.Booking
	tickets             map[int]domain.Ticket
	bookingRefreshments map[int]domain.BookingRefreshment
	refreshments        map[int]domain.Refreshment
	users               map[int]domain.User
	seq                 map[string]int
}

func newData() *data {
	return &data{
		movies:              make(map[int]domain.Movie),
		cinemas:             make(map[int]domain.Cinema),
		rooms:               make(map[int]domain.Room),
		seats:               make(map[int]domain.Seat),
		showtimes:           make(map[int]domain.Showtime),
		bookings:            make(map[int]domain.Booking),
		tickets:             make(map[int]domain.Ticket),
		bookingRefreshments: make(map[int]domain.BookingRefreshment),
		refreshments:        make(map[int]domain.Refreshment),
		users:               make(map[int]domain.User),
		seq:                 make(map[string]int),
	}
}

func (d *data) clone() *data {
	return &data{
		movies:              maps.Clone(d.movies),
		cinemas:             maps.Clone(d.cinemas),
		rooms:               maps.Clone(d.rooms),
		seats:               maps.Clone(d.seats),
		showtimes:           maps.Clone(d.showtimes),
		bookings:            maps.Clone(d.bookings),
		tickets:             maps.Clone(d.tickets),
		bookingRefreshments: maps.Clone(d.bookingRefreshments),
		refreshments:        maps.Clone(d.refreshments),
		users:               maps.Clone(d.users),
		seq:                 maps.Clone(d.seq),
	}
}

func (d *data) next(table string) int {
	d.seq[table]++
	return d.seq[table]
}

type Store struct {
	mu   *sync.Mutex
	root **data
	inTx bool
	now  func() time.Time
}

func NewStore() *Store {
	d := newData()

	return &Store{
		mu:   &sync.Mutex{},
		root: &d,
		now:  time.Now,
	}
}

func (s *Store) InTx(ctx context.Context, fn func(tx domain.Store) error) error {
	if s.inTx {
		return fn(s)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := (*s.root).clone()

	tx := &Store{mu: s.mu, root: s.root, inTx: true, now: s.now}

	err := fn(tx)
	if err != nil {
		*s.root = snapshot
		return err
	}

	return nil
}

// view runs fn against the current data, taking the lock unless the store is
// already inside a transaction.
func (s *Store) view(fn func(d *data) error) error {
	if !s.inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	return fn(*s.root)
}

func (s *Store) Movies() domain.MovieRepository { return &movieRepo{s} }

func (s *Store) Cinemas() domain.CinemaRepository { return &cinemaRepo{s} }

func (s *Store) Rooms() domain.RoomRepository { return &roomRepo{s} }

func (s *Store) Seats() domain.SeatRepository { return &seatRepo{s} }

func (s *Store) Showtimes() domain.ShowtimeRepository { return &showtimeRepo{s} }

func (s *Store) Bookings() domain.BookingRepository { return &bookingRepo{s} }

func (s *Store) Tickets() domain.TicketRepository { return &ticketRepo{s} }

func (s *Store) BookingRefreshments() domain.BookingRefreshmentRepository {
	return &bookingRefreshmentRepo{s}
}

func (s *Store) Refreshments() domain.RefreshmentRepository { return &refreshmentRepo{s} }

func (s *Store) Users() domain.UserRepository { return &userRepo{s} }

var _ domain.Store = (*Store)(nil)
