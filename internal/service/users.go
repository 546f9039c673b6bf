package service

import (
	"context"
	"errors"

	"github.com/metinatakli/cinema-booking-system/internal/domain"
)

type UserService struct {
	store domain.Store
}

func NewUserService(store domain.Store) *UserService {
	return &UserService{
		store: store,
	}
}

var _ domain.UserService = (*UserService)(nil)

// Register stores a new active customer.
func (s *UserService) Register(ctx context.Context, user *domain.User, plaintextPassword string) error {
	err := user.Password.Set(plaintextPassword)
	if err != nil {
		return err
	}

	user.Role = domain.RoleCustomer
	user.Status = domain.UserActive

	return s.store.Users().Create(ctx, user)
}

func (s *UserService) Authenticate(ctx context.Context, email, plaintextPassword string) (*domain.User, error) {
	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}

		return nil, err
	}

	match, err := user.Password.Matches(plaintextPassword)
	if err != nil {
		return nil, err
	}

	if !match {
		return nil, domain.ErrInvalidCredentials
	}

	if user.Status == domain.UserLocked {
		return nil, domain.ErrForbidden
	}

	return user, nil
}

func (s *UserService) GetById(ctx context.Context, id int) (*domain.User, error) {
	user, err := s.store.Users().GetById(ctx, id)
	if err != nil {
		return nil, notFound(err, "user", id)
	}

	return user, nil
}
