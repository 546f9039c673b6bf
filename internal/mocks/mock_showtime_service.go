package mocks

import (
	"context"
	"time"

	"github.com/metinatakli/cinema-booking-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockShowtimeService struct {
	mock.Mock
}

var _ domain.ShowtimeService = (*MockShowtimeService)(nil)

func (m *MockShowtimeService) Create(ctx context.Context, caller domain.Caller, input domain.ShowtimeInput) (*domain.Showtime, error) {
	args := m.Called(ctx, caller, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Showtime), args.Error(1)
}

func (m *MockShowtimeService) Update(ctx context.Context, caller domain.Caller, id int, input domain.ShowtimeInput) (*domain.Showtime, error) {
	args := m.Called(ctx, caller, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Showtime), args.Error(1)
}

func (m *MockShowtimeService) Delete(ctx context.Context, caller domain.Caller, id int) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

func (m *MockShowtimeService) Get(ctx context.Context, id int) (*domain.Showtime, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Showtime), args.Error(1)
}

func (m *MockShowtimeService) ListByMovie(ctx context.Context, movieID int) ([]domain.Showtime, error) {
	args := m.Called(ctx, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Showtime), args.Error(1)
}

func (m *MockShowtimeService) ListByDate(ctx context.Context, date time.Time) ([]domain.Showtime, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Showtime), args.Error(1)
}

func (m *MockShowtimeService) FindConflicts(ctx context.Context, roomID int, start, end time.Time, excludeID int) ([]domain.Showtime, error) {
	args := m.Called(ctx, roomID, start, end, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Showtime), args.Error(1)
}
