package service

import (
	"context"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/forkful/menuboard/internal/domain/auth"
	apperrors "github.com/forkful/menuboard/internal/errors"
	mocks "github.com/forkful/menuboard/internal/mocks/auth"
)

func googleProfile(email string) domainauth.ProfileData {
	return domainauth.ProfileData{
		SubjectID:  "g-123",
		Name:       "Ada Lovelace",
		Email:      email,
		PictureURL: "https://example.com/ada.png",
	}
}

func TestResolve_CreatesIdentityOnFirstLogin(t *testing.T) {
	store := mocks.NewMemoryIdentityStore()
	r := NewIdentityResolver(store)

	id, err := r.Resolve(context.Background(), googleProfile("a@x.com"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, 1, store.CreateCalls)
}

func TestResolve_IdempotentByEmail(t *testing.T) {
	store := mocks.NewMemoryIdentityStore()
	r := NewIdentityResolver(store)
	ctx := context.Background()

	first, err := r.Resolve(ctx, googleProfile("a@x.com"))
	require.NoError(t, err)

	// Second login, different provider and drifted name/picture.
	second, err := r.Resolve(ctx, domainauth.ProfileData{
		SubjectID:  "fb-999",
		Name:       "Ada L.",
		Email:      "a@x.com",
		PictureURL: "https://example.com/other.png",
	})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.CreateCalls, "no duplicate identity may be created")
}

func TestResolve_ExistingIdentityNotUpdated(t *testing.T) {
	store := mocks.NewMemoryIdentityStore()
	store.Seed(7, "a@x.com")
	r := NewIdentityResolver(store)

	id, err := r.Resolve(context.Background(), googleProfile("a@x.com"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Zero(t, store.CreateCalls)
}

func TestResolve_MissingEmail(t *testing.T) {
	r := NewIdentityResolver(mocks.NewMemoryIdentityStore())
	_, err := r.Resolve(context.Background(), domainauth.ProfileData{Name: "No Mail"})
	require.Error(t, err)
	assert.True(t, apperrors.IsProfile(err))
}

// lookupMissOnce reports a miss on the first lookup, then delegates. It
// simulates losing the create race against a concurrent first login.
type lookupMissOnce struct {
	*mocks.MemoryIdentityStore
	missed bool
}

func (l *lookupMissOnce) LookupByEmail(ctx context.Context, email string) (int64, bool, error) {
	if !l.missed {
		l.missed = true
		return 0, false, nil
	}
	return l.MemoryIdentityStore.LookupByEmail(ctx, email)
}

func TestResolve_CreateRaceFallsBackToLookup(t *testing.T) {
	store := mocks.NewMemoryIdentityStore()
	store.CreateErr = &pgconn.PgError{
		Code:   pgerrcode.UniqueViolation,
		Detail: "Key (email)=(a@x.com) already exists.",
	}
	// The winner of the race is already in the store.
	store.Seed(3, "a@x.com")

	r := NewIdentityResolver(&lookupMissOnce{MemoryIdentityStore: store})
	id, err := r.Resolve(context.Background(), googleProfile("a@x.com"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
}
