package mocks

import (
	"context"

	"github.com/metinatakli/cinema-booking-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockCatalogService struct {
	mock.Mock
}

var _ domain.CatalogService = (*MockCatalogService)(nil)

func (m *MockCatalogService) ListMovies(ctx context.Context, filters domain.Pagination) ([]*domain.Movie, *domain.Metadata, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]*domain.Movie), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockCatalogService) GetMovie(ctx context.Context, id int) (*domain.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}

func (m *MockCatalogService) CreateMovie(ctx context.Context, caller domain.Caller, movie *domain.Movie) error {
	args := m.Called(ctx, caller, movie)
	return args.Error(0)
}

func (m *MockCatalogService) ListCinemas(ctx context.Context) ([]domain.Cinema, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Cinema), args.Error(1)
}

func (m *MockCatalogService) CreateCinema(ctx context.Context, caller domain.Caller, cinema *domain.Cinema) error {
	args := m.Called(ctx, caller, cinema)
	return args.Error(0)
}

func (m *MockCatalogService) CreateRoom(ctx context.Context, caller domain.Caller, cinemaID int, roomNumber string, rows, cols int) (*domain.Room, []domain.Seat, error) {
	args := m.Called(ctx, caller, cinemaID, roomNumber, rows, cols)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Room), args.Get(1).([]domain.Seat), args.Error(2)
}

func (m *MockCatalogService) GetRoomSeats(ctx context.Context, roomID int) (*domain.Room, []domain.Seat, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Room), args.Get(1).([]domain.Seat), args.Error(2)
}

func (m *MockCatalogService) ListRefreshments(ctx context.Context, caller domain.Caller, includeRetired bool) ([]domain.Refreshment, error) {
	args := m.Called(ctx, caller, includeRetired)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Refreshment), args.Error(1)
}

func (m *MockCatalogService) CreateRefreshment(ctx context.Context, caller domain.Caller, refreshment *domain.Refreshment) error {
	args := m.Called(ctx, caller, refreshment)
	return args.Error(0)
}
