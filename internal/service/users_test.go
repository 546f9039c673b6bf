package service

import (
	"context"
	"testing"

	"github.com/metinatakli/cinema-booking-system/internal/domain"
	"github.com/metinatakli/cinema-booking-system/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	store := memory.NewStore()
	svc := NewUserService(store)
	ctx := context.Background()

	user := &domain.User{Username: "jane", Email: "jane@example.com", FullName: "Jane Doe"}
	require.NoError(t, svc.Register(ctx, user, "Passw0rd!"))

	assert.NotZero(t, user.ID)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.Equal(t, domain.UserActive, user.Status)
	assert.NotEqual(t, "Passw0rd!", string(user.Password.Hash))

	duplicate := &domain.User{Username: "other", Email: "JANE@example.com"}
	require.ErrorIs(t, svc.Register(ctx, duplicate, "Passw0rd!"), domain.ErrUserAlreadyExists)

	got, err := svc.Authenticate(ctx, "jane@example.com", "Passw0rd!")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate(ctx, "jane@example.com", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "Passw0rd!")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.GetById(ctx, 999)
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestAuthenticateLockedUser(t *testing.T) {
	store := memory.NewStore()
	svc := NewUserService(store)
	ctx := context.Background()

	locked := &domain.User{Username: "mallory", Email: "mallory@example.com", Role: domain.RoleCustomer, Status: domain.UserLocked}
	require.NoError(t, locked.Password.Set("Passw0rd!"))
	require.NoError(t, store.Users().Create(ctx, locked))

	_, err := svc.Authenticate(ctx, "mallory@example.com", "Passw0rd!")
	require.ErrorIs(t, err, domain.ErrForbidden)

	// a wrong password on a locked account must not reveal the lock
	_, err = svc.Authenticate(ctx, "mallory@example.com", "nope")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
