package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManagerRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", 3*time.Hour, time.Hour)

	token, exp, err := m.Generate("acc-1", "Organizer", m.RegisterTTL)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(3*time.Hour), exp, time.Minute)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.AccountID)
	assert.Equal(t, "Organizer", claims.Role)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestTokenManagerRejectsTampering(t *testing.T) {
	m := NewTokenManager("secret", 3*time.Hour, time.Hour)
	token, _, err := m.Generate("acc-1", "Attendee", m.LoginTTL)
	require.NoError(t, err)

	_, err = m.Parse(token + "x")
	assert.Error(t, err)

	other := NewTokenManager("rotated-secret", 3*time.Hour, time.Hour)
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestTokenManagerRejectsExpired(t *testing.T) {
	m := NewTokenManager("secret", 3*time.Hour, time.Hour)
	token, _, err := m.Generate("acc-1", "Attendee", -time.Minute)
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}
