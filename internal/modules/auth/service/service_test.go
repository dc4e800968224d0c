package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"anoa.com/langanalytics/internal/modules/auth/dto"
	"anoa.com/langanalytics/internal/modules/auth/repository"
	"anoa.com/langanalytics/internal/modules/auth/service"
	"anoa.com/langanalytics/internal/testutil"
	"anoa.com/langanalytics/pkg/apperror"
	"anoa.com/langanalytics/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryThrottle struct {
	limit    int
	failures map[string]int
}

func newMemoryThrottle(limit int) *memoryThrottle {
	return &memoryThrottle{limit: limit, failures: map[string]int{}}
}

func (m *memoryThrottle) Allowed(_ context.Context, email string) (bool, error) {
	return m.failures[email] < m.limit, nil
}

func (m *memoryThrottle) RecordFailure(_ context.Context, email string) error {
	m.failures[email]++
	return nil
}

func (m *memoryThrottle) Reset(_ context.Context, email string) error {
	delete(m.failures, email)
	return nil
}

func newAuthService(t *testing.T, throttle service.LoginThrottle) (service.AuthService, *token.JWTService) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	testutil.CreateTestSuperAdmin(t, db, "root@x.com", "rootpass")

	tokens := token.NewJWTService("test-secret", time.Hour, "langanalytics")
	return service.NewAuthService(repository.NewSuperAdminRepository(db), tokens, throttle, zap.NewNop()), tokens
}

func TestLoginIssuesToken(t *testing.T) {
	svc, tokens := newAuthService(t, newMemoryThrottle(5))

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "ROOT@x.com ", Password: "rootpass"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := tokens.Validate(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "root@x.com", claims.Subject)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthService(t, newMemoryThrottle(5))
	ctx := context.Background()

	_, err := svc.Login(ctx, dto.LoginRequest{Email: "nouser@x.com", Password: "whatever"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
	assert.Equal(t, "Invalid credentials", err.Error())

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "root@x.com", Password: "wrong"})
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
}

func TestLoginThrottle(t *testing.T) {
	throttle := newMemoryThrottle(2)
	svc, _ := newAuthService(t, throttle)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Login(ctx, dto.LoginRequest{Email: "root@x.com", Password: "wrong"})
		require.True(t, errors.Is(err, apperror.ErrUnauthorized))
	}

	_, err := svc.Login(ctx, dto.LoginRequest{Email: "root@x.com", Password: "rootpass"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrRateLimitExceeded))
	assert.Equal(t, 429, apperror.MapErrorToStatus(err))

	require.NoError(t, throttle.Reset(ctx, "root@x.com"))
	_, err = svc.Login(ctx, dto.LoginRequest{Email: "root@x.com", Password: "wrong"})
	require.Error(t, err)
	_, err = svc.Login(ctx, dto.LoginRequest{Email: "root@x.com", Password: "rootpass"})
	require.NoError(t, err)
	assert.Zero(t, throttle.failures["root@x.com"])
}

func TestRedisThrottleDisabledWithoutClient(t *testing.T) {
	throttle := service.NewRedisThrottle(nil, 1, time.Minute)
	ctx := context.Background()

	require.NoError(t, throttle.RecordFailure(ctx, "a@x.com"))
	require.NoError(t, throttle.RecordFailure(ctx, "a@x.com"))

	allowed, err := throttle.Allowed(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.NoError(t, throttle.Reset(ctx, "a@x.com"))
}
