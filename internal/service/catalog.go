package service

import (
	"context"

	"github.com/metinatakli/cinema-booking-system/internal/domain"
)

type CatalogService struct {
	store domain.Store
}

func NewCatalogService(store domain.Store) *CatalogService {
	return &CatalogService{
		store: store,
	}
}

var _ domain.CatalogService = (*CatalogService)(nil)

func (s *CatalogService) ListMovies(ctx context.Context, filters domain.Pagination) ([]*domain.Movie, *domain.Metadata, error) {
	return s.store.Movies().GetAll(ctx, filters)
}

func (s *CatalogService) GetMovie(ctx context.Context, id int) (*domain.Movie, error) {
	movie, err := s.store.Movies().GetById(ctx, id)
	if err != nil {
		return nil, notFound(err, "movie", id)
	}

	return movie, nil
}

func (s *CatalogService) CreateMovie(ctx context.Context, caller domain.Caller, movie *domain.Movie) error {
	err := requireAdmin(caller)
	if err != nil {
		return err
	}

	if movie.Status == "" {
		movie.Status = domain.MovieComingSoon
	}

	err = movie.Validate()
	if err != nil {
		return err
	}

	return s.store.Movies().Create(ctx, movie)
}

func (s *CatalogService) ListCinemas(ctx context.Context) ([]domain.Cinema, error) {
	return s.store.Cinemas().GetAll(ctx)
}

func (s *CatalogService) CreateCinema(ctx context.Context, caller domain.Caller, cinema *domain.Cinema) error {
	err := requireAdmin(caller)
	if err != nil {
		return err
	}

	return s.store.Cinemas().Create(ctx, cinema)
}

// CreateRoom stores the room and its generated seat grid in one transaction.
func (s *CatalogService) CreateRoom(
	ctx context.Context,
	caller domain.Caller,
	cinemaID int,
	roomNumber string,
	rows, cols int) (*domain.Room, []domain.Seat, error) {

	err := requireAdmin(caller)
	if err != nil {
		return nil, nil, err
	}

	room, err := domain.NewRoom(cinemaID, roomNumber, rows, cols)
	if err != nil {
		return nil, nil, err
	}

	var seats []domain.Seat

	err = s.store.InTx(ctx, func(tx domain.Store) error {
		_, err := tx.Cinemas().GetById(ctx, cinemaID)
		if err != nil {
			return notFound(err, "cinema", cinemaID)
		}

		err = tx.Rooms().Create(ctx, room)
		if err != nil {
			return err
		}

		seats = room.GenerateSeats()

		return tx.Seats().CreateAll(ctx, seats)
	})
	if err != nil {
		return nil, nil, err
	}

	return room, seats, nil
}

func (s *CatalogService) GetRoomSeats(ctx context.Context, roomID int) (*domain.Room, []domain.Seat, error) {
	room, err := s.store.Rooms().GetById(ctx, roomID)
	if err != nil {
		return nil, nil, notFound(err, "room", roomID)
	}

	seats, err := s.store.Seats().GetByRoom(ctx, roomID)
	if err != nil {
		return nil, nil, err
	}

	return room, seats, nil
}

// ListRefreshments returns items still on sale; admins may ask for retired ones too.
func (s *CatalogService) ListRefreshments(
	ctx context.Context,
	caller domain.Caller,
	includeRetired bool) ([]domain.Refreshment, error) {

	onlyCurrent := !(includeRetired && caller.IsAdmin())

	return s.store.Refreshments().GetAll(ctx, onlyCurrent)
}

func (s *CatalogService) CreateRefreshment(ctx context.Context, caller domain.Caller, refreshment *domain.Refreshment) error {
	err := requireAdmin(caller)
	if err != nil {
		return err
	}

	if refreshment.Price.IsNegative() {
		return domain.InvalidRequest("refreshment price must not be negative")
	}

	return s.store.Refreshments().Create(ctx, refreshment)
}
