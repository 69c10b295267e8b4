package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	a, err := GenerateID()
	require.NoError(t, err)
	b, err := GenerateID()
	require.NoError(t, err)

	assert.Len(t, a, 32, "128 bits hex encoded")
	assert.NotEqual(t, a, b)
}

func TestLoginSessionSingleUse(t *testing.T) {
	m := NewManager(NewMemoryStore(), 0)

	s, err := m.NewLoginSession("response_type=code&client_id=flecs")
	require.NoError(t, err)

	got, ok := m.TakeLoginSession(s.Sid)
	require.True(t, ok)
	assert.Equal(t, s.Sid, got.Sid)
	assert.Equal(t, "response_type=code&client_id=flecs", got.Query)

	_, ok = m.TakeLoginSession(s.Sid)
	assert.False(t, ok, "a login session is redeemable exactly once")
}

func TestLoginSessionUnknownSid(t *testing.T) {
	m := NewManager(NewMemoryStore(), 0)

	_, ok := m.TakeLoginSession("no-such-session")
	assert.False(t, ok)
}

func TestLoginSessionExpiry(t *testing.T) {
	m := NewManager(NewMemoryStore(), 0)
	m.loginTTL = time.Millisecond

	s, err := m.NewLoginSession("q")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, ok := m.TakeLoginSession(s.Sid)
	assert.False(t, ok, "an expired login session must be treated as absent")
}

func TestPurgeExpired(t *testing.T) {
	m := NewManager(NewMemoryStore(), 0)
	m.loginTTL = time.Millisecond

	for i := 0; i < 3; i++ {
		_, err := m.NewLoginSession("q")
		require.NoError(t, err)
	}
	time.Sleep(5 * time.Millisecond)

	fresh, err := m.NewLoginSession("q")
	require.NoError(t, err)

	assert.Equal(t, 3, m.PurgeExpired())

	_, ok := m.TakeLoginSession(fresh.Sid)
	assert.True(t, ok, "purge must not evict live sessions")
}

func TestUserSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), 0)

	s, err := m.NewUserSession(ctx, 7)
	require.NoError(t, err)
	require.NotEmpty(t, s.Sid)

	got, err := m.GetUserSession(ctx, s.Sid)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.EqualValues(t, 7, got.Uid)

	require.NoError(t, m.DeleteUserSession(ctx, s.Sid))

	got, err = m.GetUserSession(ctx, s.Sid)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserSessionExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), time.Millisecond)

	s, err := m.NewUserSession(ctx, 7)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	got, err := m.GetUserSession(ctx, s.Sid)
	require.NoError(t, err)
	assert.Nil(t, got, "an expired user session must be treated as absent")
}

func TestGetUserSessionEmptySid(t *testing.T) {
	m := NewManager(NewMemoryStore(), 0)

	got, err := m.GetUserSession(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, got)
}
