package service

import (
	"context"
	"testing"
	"time"

	"github.com/metinatakli/cinema-booking-system/internal/cache"
	"github.com/metinatakli/cinema-booking-system/internal/domain"
	"github.com/metinatakli/cinema-booking-system/internal/events"
	"github.com/metinatakli/cinema-booking-system/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	// all fixtures are scheduled against this clock
	fixedNow     = time.Date(2095, 3, 1, 10, 0, 0, 0, time.UTC)
	showStart    = time.Date(2095, 3, 1, 15, 0, 0, 0, time.UTC)
	ticketPrice  = decimal.NewFromInt(75000)
	popcornPrice = decimal.NewFromInt(30000)
)

type fixture struct {
	store    *memory.Store
	movie    *domain.Movie
	room     *domain.Room
	seats    []domain.Seat
	showtime *domain.Showtime
	popcorn  *domain.Refreshment
	nachos   *domain.Refreshment
	alice    domain.Caller
	bob      domain.Caller
	admin    domain.Caller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctx := context.Background()
	store := memory.NewStore()
	f := &fixture{store: store}

	f.movie = &domain.Movie{
		Title:       "Inception",
		Duration:    120,
		ReleaseDate: time.Date(2095, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2095, 6, 30, 0, 0, 0, 0, time.UTC),
		Status:      domain.MovieNowShowing,
	}
	require.NoError(t, store.Movies().Create(ctx, f.movie))

	cinema := &domain.Cinema{Name: "Downtown", Address: "1 Main St"}
	require.NoError(t, store.Cinemas().Create(ctx, cinema))

	room, err := domain.NewRoom(cinema.ID, "1", 3, 4)
	require.NoError(t, err)
	require.NoError(t, store.Rooms().Create(ctx, room))
	f.room = room

	f.seats = room.GenerateSeats()
	require.NoError(t, store.Seats().CreateAll(ctx, f.seats))

	f.showtime = &domain.Showtime{
		MovieID:   f.movie.ID,
		RoomID:    room.ID,
		StartTime: showStart,
		EndTime:   showStart.Add(2 * time.Hour),
		Price:     ticketPrice,
	}
	require.NoError(t, store.Showtimes().Create(ctx, f.showtime))

	f.popcorn = &domain.Refreshment{Name: "Popcorn", Price: popcornPrice, IsCurrent: true}
	require.NoError(t, store.Refreshments().Create(ctx, f.popcorn))

	f.nachos = &domain.Refreshment{Name: "Nachos", Price: decimal.NewFromInt(40000)}
	require.NoError(t, store.Refreshments().Create(ctx, f.nachos))

	f.alice = f.addUser(t, "alice", domain.RoleCustomer)
	f.bob = f.addUser(t, "bob", domain.RoleCustomer)
	f.admin = f.addUser(t, "root", domain.RoleAdmin)

	return f
}

func (f *fixture) addUser(t *testing.T, name string, role domain.Role) domain.Caller {
	t.Helper()

	user := &domain.User{
		Username: name,
		Email:    name + "@example.com",
		FullName: name,
		Role:     role,
		Status:   domain.UserActive,
	}
	require.NoError(t, f.store.Users().Create(context.Background(), user))

	return user.Caller()
}

func (f *fixture) seatIDs(numbers ...string) []int {
	ids := make([]int, 0, len(numbers))

	for _, n := range numbers {
		for _, s := range f.seats {
			if s.SeatNumber == n {
				ids = append(ids, s.ID)
			}
		}
	}

	return ids
}

func (f *fixture) bookingService() (*BookingService, *events.RecordingPublisher) {
	publisher := &events.RecordingPublisher{}

	svc := NewBookingService(f.store, cache.NoopCache{}, publisher, nil)
	svc.now = func() time.Time { return fixedNow }

	return svc, publisher
}

func (f *fixture) showtimeService() *ShowtimeService {
	svc := NewShowtimeService(f.store, cache.NoopCache{}, nil)
	svc.now = func() time.Time { return fixedNow }

	return svc
}
