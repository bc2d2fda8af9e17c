package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/forkful/menuboard/internal/domain/auth"
)

// ProviderClient is the capability set a third-party identity provider must
// implement. One implementation exists per provider variant; dispatch is by
// the session's typed Provider value, never by string comparison at call
// sites.
type ProviderClient interface {
	// Name returns the provider this client speaks for.
	Name() domainauth.Provider

	// Exchange converts the authorization artifact posted by the browser
	// (an authorization code for Google, a short-lived access token for
	// Facebook) into provider credentials. Any non-success upstream
	// response or malformed payload surfaces as an exchange_failed error.
	Exchange(ctx context.Context, code string) (domainauth.Credentials, error)

	// FetchProfile returns the provider profile for the exchanged
	// credentials. A missing email is a fatal profile_failed error since
	// identity resolution requires it.
	FetchProfile(ctx context.Context, creds domainauth.Credentials) (domainauth.ProfileData, error)

	// Revoke invalidates the credentials upstream. Best effort: callers
	// must treat a returned error as advisory, never fatal.
	Revoke(ctx context.Context, creds domainauth.Credentials) error
}

// SessionStore persists and retrieves browser sessions by opaque id.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// IdentityStore is the narrow contract identity resolution needs from the
// durable user store. Email is the sole natural key; the store enforces its
// uniqueness (concurrent first-time logins race on it).
type IdentityStore interface {
	// LookupByEmail returns the identity id for email, or found=false.
	LookupByEmail(ctx context.Context, email string) (id int64, found bool, err error)

	// Create inserts a new identity and returns its id.
	Create(ctx context.Context, name, email, pictureURL string) (int64, error)
}
