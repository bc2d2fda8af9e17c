package devauth

// Package devauth provides a config-driven provider client for local
// development. It accepts any authorization artifact and returns a canned
// profile, so the full login flow can be exercised without real OAuth
// credentials.

import (
	"context"
	"errors"
	"time"

	domainauth "github.com/forkful/menuboard/internal/domain/auth"
	apperrors "github.com/forkful/menuboard/internal/errors"
	"github.com/forkful/menuboard/internal/ports"
)

// Config controls the dev provider identity. Name and Email are required;
// Picture may be empty.
type Config struct {
	Name    string
	Email   string
	Picture string

	// TokenLifetime defaults to 8h when zero.
	TokenLifetime time.Duration
}

// Provider implements ports.ProviderClient with a fixed identity. It
// masquerades as a named real provider so dispatch by the session's typed
// Provider value works unchanged.
type Provider struct {
	name          domainauth.Provider
	profile       domainauth.ProfileData
	tokenLifetime time.Duration
}

// NewProvider constructs a dev provider standing in for the given provider
// name.
func NewProvider(name domainauth.Provider, cfg Config) (*Provider, error) {
	if name == domainauth.ProviderNone {
		return nil, errors.New("dev auth: provider name is required")
	}
	if cfg.Name == "" {
		return nil, errors.New("dev auth: Name is required")
	}
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	lifetime := cfg.TokenLifetime
	if lifetime == 0 {
		lifetime = 8 * time.Hour
	}
	return &Provider{
		name: name,
		profile: domainauth.ProfileData{
			SubjectID:  "dev:" + cfg.Email,
			Name:       cfg.Name,
			Email:      cfg.Email,
			PictureURL: cfg.Picture,
		},
		tokenLifetime: lifetime,
	}, nil
}

// Name returns the provider this client stands in for.
func (p *Provider) Name() domainauth.Provider {
	return p.name
}

// Exchange accepts any non-empty artifact and returns canned credentials.
func (p *Provider) Exchange(_ context.Context, code string) (domainauth.Credentials, error) {
	if code == "" {
		return domainauth.Credentials{}, apperrors.Exchange("authorization code is required", nil)
	}
	return domainauth.Credentials{
		AccessToken: "dev-token",
		Subject:     p.profile.SubjectID,
		Expiry:      time.Now().Add(p.tokenLifetime),
	}, nil
}

// FetchProfile returns the configured identity.
func (p *Provider) FetchProfile(_ context.Context, _ domainauth.Credentials) (domainauth.ProfileData, error) {
	return p.profile, nil
}

// Revoke is a no-op; there is nothing upstream to invalidate.
func (p *Provider) Revoke(_ context.Context, _ domainauth.Credentials) error {
	return nil
}

var _ ports.ProviderClient = (*Provider)(nil)
