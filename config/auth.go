package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOAuth uses the real Google/Facebook OAuth providers.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// GoogleConfig contains Google OAuth client configuration.
// Secrets are loaded here at process start and shared read-only for the
// process lifetime.
type GoogleConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`

	// Issuer is the OIDC issuer used for endpoint discovery.
	// Override only in tests.
	Issuer string `env:"ISSUER" envDefault:"https://accounts.google.com"`
}

// FacebookConfig contains Facebook Graph API client configuration.
type FacebookConfig struct {
	AppID     string `env:"APP_ID"`
	AppSecret string `env:"APP_SECRET"`

	// GraphURL is the Facebook Graph API base URL. Override only in tests.
	GraphURL string `env:"GRAPH_URL" envDefault:"https://graph.facebook.com"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	Name    string `env:"NAME"    envDefault:"Dev User"`
	Email   string `env:"EMAIL"   envDefault:"dev@example.com"`
	Picture string `env:"PICTURE" envDefault:""`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which provider set to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// Google OAuth configuration (used when Mode=oauth).
	Google GoogleConfig `envPrefix:"GOOGLE_"`

	// Facebook OAuth configuration (used when Mode=oauth).
	Facebook FacebookConfig `envPrefix:"FACEBOOK_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// SessionTTL is how long a server-side session lives without re-login.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// ProviderTimeout bounds every outbound call to a provider
	// (exchange, profile fetch, revoke).
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = 24 * time.Hour
	}
	if a.ProviderTimeout <= 0 {
		a.ProviderTimeout = 10 * time.Second
	}
}
