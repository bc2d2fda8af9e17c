package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkful/menuboard/config"
	authmocks "github.com/forkful/menuboard/internal/mocks/auth"
)

func testAuthDeps() AuthDeps {
	return AuthDeps{
		RedisClient: redis.NewClient(&redis.Options{Addr: "localhost:6379"}),
		Identities:  authmocks.NewMemoryIdentityStore(),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestBuildAuthServiceMockMode(t *testing.T) {
	deps := testAuthDeps()
	deps.Auth = config.AuthConfig{
		Mode: config.AuthModeMock,
		DevAuth: config.DevAuthConfig{
			Name:  "Dev User",
			Email: "dev@example.com",
		},
		SessionTTL: time.Hour,
	}

	svc, err := BuildAuthService(context.Background(), deps)

	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestBuildAuthServiceMockModeRequiresEmail(t *testing.T) {
	deps := testAuthDeps()
	deps.Auth = config.AuthConfig{
		Mode:    config.AuthModeMock,
		DevAuth: config.DevAuthConfig{Name: "Dev User"},
	}

	_, err := BuildAuthService(context.Background(), deps)

	assert.ErrorContains(t, err, "Email is required")
}

func TestBuildAuthServiceRequiresRedis(t *testing.T) {
	deps := testAuthDeps()
	deps.RedisClient = nil
	deps.Auth = config.AuthConfig{Mode: config.AuthModeMock}

	_, err := BuildAuthService(context.Background(), deps)

	assert.ErrorContains(t, err, "redis")
}

func TestBuildAuthServiceRequiresIdentityStore(t *testing.T) {
	deps := testAuthDeps()
	deps.Identities = nil
	deps.Auth = config.AuthConfig{Mode: config.AuthModeMock}

	_, err := BuildAuthService(context.Background(), deps)

	assert.ErrorContains(t, err, "identity")
}

func TestBuildAuthServiceUnknownMode(t *testing.T) {
	deps := testAuthDeps()
	deps.Auth = config.AuthConfig{Mode: config.AuthMode("saml")}

	_, err := BuildAuthService(context.Background(), deps)

	assert.ErrorContains(t, err, "unsupported auth mode")
}

func TestBuildAuthServiceOAuthNeedsAProvider(t *testing.T) {
	deps := testAuthDeps()
	deps.Auth = config.AuthConfig{Mode: config.AuthModeOAuth}

	_, err := BuildAuthService(context.Background(), deps)

	assert.ErrorContains(t, err, "at least one configured provider")
}

func TestBuildAuthServiceOAuthFacebookOnly(t *testing.T) {
	deps := testAuthDeps()
	deps.Auth = config.AuthConfig{
		Mode: config.AuthModeOAuth,
		Facebook: config.FacebookConfig{
			AppID:     "app-1",
			AppSecret: "secret-1",
		},
		SessionTTL: time.Hour,
	}

	svc, err := BuildAuthService(context.Background(), deps)

	require.NoError(t, err)
	assert.NotNil(t, svc)
}
