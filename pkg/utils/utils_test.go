package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute, time.Hour)
	id := uuid.New()

	token, err := m.GenerateAccessToken(id, "Pat Server", []string{"server"}, 3)
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.EmployeeID)
	assert.Equal(t, "Pat Server", claims.Name)
	assert.Equal(t, 3, claims.DrawerNo)
	assert.True(t, claims.HasRole("server"))
	assert.False(t, claims.HasRole("manager"))
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	issuer := NewJWTManager("one", time.Minute, time.Hour)
	other := NewJWTManager("two", time.Minute, time.Hour)

	token, err := issuer.GenerateAccessToken(uuid.New(), "x", nil, 0)
	require.NoError(t, err)
	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute, time.Hour)
	id := uuid.New()
	token, err := m.GenerateRefreshToken(id)
	require.NoError(t, err)

	got, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestGenerateCheckNo(t *testing.T) {
	no := GenerateCheckNo(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
	assert.True(t, strings.HasPrefix(no, "260314-"))
	assert.Len(t, no, 13)
}

func TestPINHash(t *testing.T) {
	hash, err := HashPIN("4321")
	require.NoError(t, err)
	assert.NotEqual(t, "4321", hash)
	assert.True(t, CheckPINHash("4321", hash))
	assert.False(t, CheckPINHash("1234", hash))
}
