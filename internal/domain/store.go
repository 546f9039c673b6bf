package domain

import "context"

// Store groups the repositories. A Store handed to the InTx callback is bound to
// one transaction; nested InTx calls on it join that transaction.
type Store interface {
	Movies() MovieRepository
	Cinemas() CinemaRepository
	Rooms() RoomRepository
	Seats() SeatRepository
	Showtimes() ShowtimeRepository
	Bookings() BookingRepository
	Tickets() TicketRepository
	BookingRefreshments() BookingRefreshmentRepository
	Refreshments() RefreshmentRepository
	Users() UserRepository

	InTx(ctx context.Context, fn func(tx Store) error) error
}
