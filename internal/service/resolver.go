package service

import (
	"context"
	"fmt"

	domainauth "github.com/forkful/menuboard/internal/domain/auth"
	apperrors "github.com/forkful/menuboard/internal/errors"
	"github.com/forkful/menuboard/internal/ports"
)

// IdentityResolver maps provider profile data to a local identity, creating
// one on first login. Email is the sole natural key: the same email from a
// different provider resolves to the same identity, and existing identities
// are never updated from a new profile (name/picture drift across logins is
// not reconciled).
type IdentityResolver struct {
	store ports.IdentityStore
}

// NewIdentityResolver constructs an IdentityResolver.
func NewIdentityResolver(store ports.IdentityStore) *IdentityResolver {
	return &IdentityResolver{store: store}
}

// Resolve returns the identity id for the profile's email, creating the
// identity if absent. Uniqueness under concurrent first-time logins is the
// store's responsibility (unique constraint on email); a lost race surfaces
// here as a conflict, which is settled with a second lookup.
func (r *IdentityResolver) Resolve(ctx context.Context, profile domainauth.ProfileData) (int64, error) {
	if profile.Email == "" {
		return 0, apperrors.Profile("profile has no email address", nil)
	}

	id, found, err := r.store.LookupByEmail(ctx, profile.Email)
	if err != nil {
		return 0, fmt.Errorf("lookup identity by email: %w", err)
	}
	if found {
		return id, nil
	}

	id, err = r.store.Create(ctx, profile.Name, profile.Email, profile.PictureURL)
	if err == nil {
		return id, nil
	}
	if !apperrors.IsUniqueViolation(err) {
		return 0, fmt.Errorf("create identity: %w", err)
	}

	// Lost the race against a concurrent first login with the same email.
	id, found, err = r.store.LookupByEmail(ctx, profile.Email)
	if err != nil {
		return 0, fmt.Errorf("lookup identity after create conflict: %w", err)
	}
	if !found {
		return 0, apperrors.Internalf("identity for %s vanished after create conflict", profile.Email)
	}
	return id, nil
}
