package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/database"
)

func TestTokenRoundTrip(t *testing.T) {
	user := &database.User{ID: 42, Username: "alice", Role: database.RoleStaff}

	token, err := GenerateToken("test-secret", user, time.Now())
	require.NoError(t, err)

	claims, err := VerifyToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, database.RoleStaff, claims.Role)
}

func TestTokenWrongSecret(t *testing.T) {
	user := &database.User{ID: 42, Username: "alice"}

	token, err := GenerateToken("test-secret", user, time.Now())
	require.NoError(t, err)

	_, err = VerifyToken("other-secret", token)
	assert.Error(t, err)
}

func TestTokenExpiry(t *testing.T) {
	user := &database.User{ID: 42, Username: "alice"}

	issued := time.Now().Add(-TokenLifetime - time.Minute)
	token, err := GenerateToken("test-secret", user, issued)
	require.NoError(t, err)

	_, err = VerifyToken("test-secret", token)
	assert.Error(t, err, "token older than the absolute lifetime must not verify")
}
