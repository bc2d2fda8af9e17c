package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/forkful/menuboard/config"
	"github.com/forkful/menuboard/internal/adapters/devauth"
	"github.com/forkful/menuboard/internal/adapters/facebook"
	"github.com/forkful/menuboard/internal/adapters/google"
	redisadapter "github.com/forkful/menuboard/internal/adapters/redis"
	domainauth "github.com/forkful/menuboard/internal/domain/auth"
	"github.com/forkful/menuboard/internal/ports"
	"github.com/forkful/menuboard/internal/service"
)

// AuthDeps contains the dependencies for building the auth service.
type AuthDeps struct {
	Auth        config.AuthConfig
	RedisClient redis.UniversalClient
	Identities  ports.IdentityStore
	Logger      *slog.Logger
}

// BuildAuthService assembles the auth service for the configured auth mode.
// In oauth mode an unconfigured provider is skipped with a warning so a
// deployment can run with a single provider, but at least one must be usable.
func BuildAuthService(ctx context.Context, deps AuthDeps) (*service.AuthService, error) {
	if deps.RedisClient == nil {
		return nil, errors.New("auth service requires a redis client")
	}
	if deps.Identities == nil {
		return nil, errors.New("auth service requires an identity store")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		providers []ports.ProviderClient
		err       error
	)
	switch deps.Auth.Mode {
	case config.AuthModeMock:
		providers, err = buildDevProviders(deps.Auth.DevAuth)
	case config.AuthModeOAuth:
		providers, err = buildOAuthProviders(ctx, deps.Auth, logger)
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", deps.Auth.Mode)
	}
	if err != nil {
		return nil, err
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Providers:       providers,
		Sessions:        redisadapter.NewSessionStore(deps.RedisClient),
		Identities:      deps.Identities,
		SessionTTL:      deps.Auth.SessionTTL,
		ProviderTimeout: deps.Auth.ProviderTimeout,
		Logger:          logger,
	}), nil
}

// buildDevProviders masquerades one canned identity as both real providers,
// so the login page works unchanged against a dev deployment.
func buildDevProviders(cfg config.DevAuthConfig) ([]ports.ProviderClient, error) {
	devCfg := devauth.Config{
		Name:    cfg.Name,
		Email:   cfg.Email,
		Picture: cfg.Picture,
	}

	names := []domainauth.Provider{domainauth.ProviderGoogle, domainauth.ProviderFacebook}
	providers := make([]ports.ProviderClient, 0, len(names))
	for _, name := range names {
		p, err := devauth.NewProvider(name, devCfg)
		if err != nil {
			return nil, fmt.Errorf("build dev %s provider: %w", name, err)
		}
		providers = append(providers, p)
	}
	return providers, nil
}

func buildOAuthProviders(
	ctx context.Context,
	cfg config.AuthConfig,
	logger *slog.Logger,
) ([]ports.ProviderClient, error) {
	var providers []ports.ProviderClient

	if cfg.Google.ClientID != "" {
		p, err := google.NewProvider(ctx, google.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			Issuer:       cfg.Google.Issuer,
			Timeout:      cfg.ProviderTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("build google provider: %w", err)
		}
		providers = append(providers, p)
	} else {
		logger.Warn("google login disabled: no client ID configured")
	}

	if cfg.Facebook.AppID != "" {
		p, err := facebook.NewProvider(facebook.Config{
			AppID:     cfg.Facebook.AppID,
			AppSecret: cfg.Facebook.AppSecret,
			GraphURL:  cfg.Facebook.GraphURL,
			Timeout:   cfg.ProviderTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("build facebook provider: %w", err)
		}
		providers = append(providers, p)
	} else {
		logger.Warn("facebook login disabled: no app ID configured")
	}

	if len(providers) == 0 {
		return nil, errors.New("oauth mode requires at least one configured provider")
	}
	return providers, nil
}
