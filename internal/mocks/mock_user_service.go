package mocks

import (
	"context"

	"github.com/metinatakli/cinema-booking-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

var _ domain.UserService = (*MockUserService)(nil)

func (m *MockUserService) Register(ctx context.Context, user *domain.User, plaintextPassword string) error {
	args := m.Called(ctx, user, plaintextPassword)
	return args.Error(0)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, plaintextPassword string) (*domain.User, error) {
	args := m.Called(ctx, email, plaintextPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetById(ctx context.Context, id int) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
