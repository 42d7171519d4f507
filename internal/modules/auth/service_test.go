package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"

	"notifyhub/internal/domain"
	jwtsvc "notifyhub/internal/pkg/jwt"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	return NewService(db, jwtsvc.New("test-secret", time.Hour))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, RegisterRequest{
		Name:     "justquick",
		Email:    "JustQuick@Example.com",
		Password: "demo123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "justquick@example.com", user.Email, "email should be normalized")

	loggedIn, token, err := svc.Login(ctx, LoginRequest{
		Email:    "justquick@example.com",
		Password: "demo123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterRequest{Name: "a", Email: "a@example.com", Password: "demo123"})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, RegisterRequest{Name: "b", Email: "a@example.com", Password: "demo123"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterRequest{Name: "a", Email: "a@example.com", Password: "demo123"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, LoginRequest{Email: "a@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, LoginRequest{Email: "missing@example.com", Password: "demo123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
