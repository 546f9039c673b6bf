package mocks

import (
	"context"

	"github.com/metinatakli/cinema-booking-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBookingService struct {
	mock.Mock
}

var _ domain.BookingService = (*MockBookingService)(nil)

func (m *MockBookingService) Create(ctx context.Context, caller domain.Caller, input domain.CreateBookingInput) (*domain.BookingDetail, error) {
	args := m.Called(ctx, caller, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDetail), args.Error(1)
}

func (m *MockBookingService) List(ctx context.Context, caller domain.Caller, filter domain.BookingFilter) ([]domain.Booking, *domain.Metadata, error) {
	args := m.Called(ctx, caller, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Booking), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockBookingService) Get(ctx context.Context, caller domain.Caller, id int) (*domain.BookingDetail, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDetail), args.Error(1)
}

func (m *MockBookingService) Confirm(ctx context.Context, caller domain.Caller, id int) (*domain.BookingDetail, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDetail), args.Error(1)
}

func (m *MockBookingService) Cancel(ctx context.Context, caller domain.Caller, id int) (*domain.BookingDetail, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDetail), args.Error(1)
}

func (m *MockBookingService) Delete(ctx context.Context, caller domain.Caller, id int) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

func (m *MockBookingService) BookedSeats(ctx context.Context, showtimeID int) ([]domain.Ticket, error) {
	args := m.Called(ctx, showtimeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *MockBookingService) TicketsByBooking(ctx context.Context, caller domain.Caller, bookingID int) ([]domain.Ticket, error) {
	args := m.Called(ctx, caller, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ticket), args.Error(1)
}
