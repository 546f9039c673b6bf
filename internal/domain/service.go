package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type ShowtimeInput struct {
	MovieID   int
	RoomID    int
	StartTime time.Time
	// EndTime defaults to StartTime plus the movie's duration when nil.
	EndTime *time.Time
	Price   decimal.Decimal
}

type BookingService interface {
	Create(ctx context.Context, caller Caller, input CreateBookingInput) (*BookingDetail, error)
	List(ctx context.Context, caller Caller, filter BookingFilter) ([]Booking, *Metadata, error)
	Get(ctx context.Context, caller Caller, id int) (*BookingDetail, error)
	Confirm(ctx context.Context, caller Caller, id int) (*BookingDetail, error)
	Cancel(ctx context.Context, caller Caller, id int) (*BookingDetail, error)
	Delete(ctx context.Context, caller Caller, id int) error
	BookedSeats(ctx context.Context, showtimeID int) ([]Ticket, error)
	TicketsByBooking(ctx context.Context, caller Caller, bookingID int) ([]Ticket, error)
}

type ShowtimeService interface {
	Create(ctx context.Context, caller Caller, input ShowtimeInput) (*Showtime, error)
	Update(ctx context.Context, caller Caller, id int, input ShowtimeInput) (*Showtime, error)
	Delete(ctx context.Context, caller Caller, id int) error
	Get(ctx context.Context, id int) (*Showtime, error)
	ListByMovie(ctx context.Context, movieID int) ([]Showtime, error)
	ListByDate(ctx context.Context, date time.Time) ([]Showtime, error)
	FindConflicts(ctx context.Context, roomID int, start, end time.Time, excludeID int) ([]Showtime, error)
}

type CatalogService interface {
	ListMovies(ctx context.Context, filters Pagination) ([]*Movie, *Metadata, error)
	GetMovie(ctx context.Context, id int) (*Movie, error)
	CreateMovie(ctx context.Context, caller Caller, movie *Movie) error
	ListCinemas(ctx context.Context) ([]Cinema, error)
	CreateCinema(ctx context.Context, caller Caller, cinema *Cinema) error
	CreateRoom(ctx context.Context, caller Caller, cinemaID int, roomNumber string, rows, cols int) (*Room, []Seat, error)
	GetRoomSeats(ctx context.Context, roomID int) (*Room, []Seat, error)
	ListRefreshments(ctx context.Context, caller Caller, includeRetired bool) ([]Refreshment, error)
	CreateRefreshment(ctx context.Context, caller Caller, refreshment *Refreshment) error
}

type UserService interface {
	Register(ctx context.Context, user *User, plaintextPassword string) error
	Authenticate(ctx context.Context, email, plaintextPassword string) (*User, error)
	GetById(ctx context.Context, id int) (*User, error)
}
