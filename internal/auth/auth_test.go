package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmforge/initiative-api/internal/errors"
	"github.com/dmforge/initiative-api/internal/pkg/clock"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(&Config{
		Secret:   "test-secret",
		TokenTTL: time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func TestNewService_Validation(t *testing.T) {
	_, err := NewService(nil)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = NewService(&Config{Secret: "", TokenTTL: time.Hour})
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = NewService(&Config{Secret: "s", TokenTTL: 0})
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestService_PasswordRoundTrip(t *testing.T) {
	svc := newTestService(t)

	hash, err := svc.HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.NoError(t, svc.CheckPassword(hash, "hunter2"))

	err = svc.CheckPassword(hash, "wrong")
	assert.True(t, errors.IsUnauthenticated(err))
}

func TestService_TokenRoundTrip(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.IssueToken("usr_123")
	require.NoError(t, err)

	userID, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "usr_123", userID)
}

func TestService_VerifyToken_Rejections(t *testing.T) {
	svc := newTestService(t)

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.VerifyToken("not-a-token")
		assert.True(t, errors.IsUnauthenticated(err))
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewService(&Config{Secret: "different", TokenTTL: time.Hour})
		require.NoError(t, err)

		token, err := other.IssueToken("usr_123")
		require.NoError(t, err)

		_, err = svc.VerifyToken(token)
		assert.True(t, errors.IsUnauthenticated(err))
	})

	t.Run("expired", func(t *testing.T) {
		past := clock.NewFixed(time.Now().Add(-2 * time.Hour))
		issuer, err := NewService(&Config{
			Secret:   "test-secret",
			TokenTTL: time.Hour,
			Clock:    past,
		})
		require.NoError(t, err)

		token, err := issuer.IssueToken("usr_123")
		require.NoError(t, err)

		_, err = svc.VerifyToken(token)
		assert.True(t, errors.IsUnauthenticated(err))
	})
}
