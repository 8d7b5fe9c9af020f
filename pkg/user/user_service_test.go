package user

import (
	"context"
	"testing"
	"time"

	"Health-Kitchen-Backend/domain"
	"Health-Kitchen-Backend/internal/testutil"
	"Health-Kitchen-Backend/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (UserService, jwt.JWTService) {
	t.Helper()
	jwtService := jwt.NewJWTServiceWith("test-secret", time.Hour)
	svc := NewUserService(NewUserRepository(testutil.NewTestDB(t, false)), jwtService).(*userService)
	svc.cost = bcrypt.MinCost
	return svc, jwtService
}

func TestRegisterAndLogin(t *testing.T) {
	svc, jwtService := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, domain.RegisterRequest{Name: " Asha ", Email: "Asha@Example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "Asha", registered.Name)
	assert.Equal(t, "asha@example.com", registered.Email)
	assert.NotEmpty(t, registered.ID)

	login, err := svc.Login(ctx, domain.LoginRequest{Email: "asha@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, login.Role)

	id, role, err := jwtService.GetUserIDByToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, id)
	assert.Equal(t, domain.RoleUser, role)

	me, err := svc.Me(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, registered, me)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{Name: "A", Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, domain.RegisterRequest{Name: "B", Email: "A@example.com", Password: "password456"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyUsed)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{Name: "A", Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "a@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Me(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
