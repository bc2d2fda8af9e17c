package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/forkful/menuboard/config"
	"github.com/forkful/menuboard/internal/data"
	"github.com/forkful/menuboard/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth        *service.AuthService
	Restaurants *service.RestaurantService
	MenuItems   *service.MenuItemService
	Exports     *service.ExportService
}

// ServiceDeps contains the shared infrastructure the services build on.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices constructs the full service container.
func NewServices(ctx context.Context, deps *ServiceDeps) (ServiceContainer, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	restaurantRepo := data.NewRestaurantRepo(deps.DB)
	itemRepo := data.NewMenuItemRepo(deps.DB)
	identityStore := data.NewIdentityStore(data.NewIdentityRepo(deps.DB))

	auth, err := BuildAuthService(ctx, AuthDeps{
		Auth:        deps.Config.Auth,
		RedisClient: deps.RedisClient,
		Identities:  identityStore,
		Logger:      logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build auth service: %w", err)
	}

	return ServiceContainer{
		Auth: auth,
		Restaurants: service.NewRestaurantService(service.RestaurantServiceOptions{
			Restaurants: restaurantRepo,
		}),
		MenuItems: service.NewMenuItemService(service.MenuItemServiceOptions{
			Items:       itemRepo,
			Restaurants: restaurantRepo,
		}),
		Exports: service.NewExportService(service.ExportServiceOptions{
			Restaurants: restaurantRepo,
			Items:       itemRepo,
		}),
	}, nil
}
