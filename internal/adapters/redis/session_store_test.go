package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/forkful/menuboard/internal/domain/auth"
	"github.com/forkful/menuboard/internal/testutil"
)

func authedSession(id string, identityID int64, ttl time.Duration) domainauth.Session {
	return domainauth.Session{
		ID:          id,
		Stage:       domainauth.StageAuthenticated,
		Provider:    domainauth.ProviderGoogle,
		IdentityID:  &identityID,
		DisplayName: "Test User",
		Email:       "user@example.com",
		ExpiresAt:   time.Now().Add(ttl),
	}
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := authedSession("test-session-1", 42, 30*time.Minute)
	require.NoError(t, store.Save(ctx, session))

	retrieved, err := store.Get(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, retrieved.ID)
	assert.Equal(t, session.Stage, retrieved.Stage)
	assert.Equal(t, session.Provider, retrieved.Provider)
	require.NotNil(t, retrieved.IdentityID)
	assert.Equal(t, int64(42), *retrieved.IdentityID)
	assert.Equal(t, session.Email, retrieved.Email)
	assert.WithinDuration(t, session.ExpiresAt, retrieved.ExpiresAt, time.Second)
}

func TestSessionStore_RoundTripsStateToken(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := domainauth.Session{
		ID:         "pending-session",
		Stage:      domainauth.StagePendingAuth,
		StateToken: "ABCDEFGHIJKLMNOPQRSTUVWXYZ012345",
		ExpiresAt:  time.Now().Add(30 * time.Minute),
	}
	require.NoError(t, store.Save(ctx, session))

	retrieved, err := store.Get(ctx, "pending-session")
	require.NoError(t, err)
	assert.Equal(t, session.StateToken, retrieved.StateToken)
	assert.Equal(t, domainauth.StagePendingAuth, retrieved.Stage)
	assert.Nil(t, retrieved.IdentityID)
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	_, err := store.Get(context.Background(), "non-existent")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_Delete(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := authedSession("test-session-delete", 1, 30*time.Minute)
	require.NoError(t, store.Save(ctx, session))

	_, err := store.Get(ctx, "test-session-delete")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "test-session-delete"))

	_, err = store.Get(ctx, "test-session-delete")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_TTLExpiration(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := authedSession("test-session-ttl", 1, 100*time.Millisecond)
	require.NoError(t, store.Save(ctx, session))

	time.Sleep(200 * time.Millisecond)

	_, err := store.Get(ctx, "test-session-ttl")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_CustomPrefix(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewSessionStoreWithPrefix(client, "test-prefix:")
	ctx := context.Background()

	session := authedSession("prefix-test", 1, 30*time.Minute)
	require.NoError(t, store.Save(ctx, session))

	exists := client.Exists(ctx, "test-prefix:prefix-test").Val()
	assert.Equal(t, int64(1), exists)

	retrieved, err := store.Get(ctx, "prefix-test")
	require.NoError(t, err)
	assert.Equal(t, session.ID, retrieved.ID)
}

func TestSessionStore_SaveEmptyID(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	err := store.Save(context.Background(), authedSession("", 1, 30*time.Minute))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session ID cannot be empty")
}

func TestSessionStore_SaveExpiredSession(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	err := store.Save(context.Background(), authedSession("expired-session", 1, -time.Hour))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session is expired")
}

func TestSessionStore_GetEmptyID(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	_, err := store.Get(context.Background(), "")
	assert.Equal(t, ErrNotFound, err)
}
