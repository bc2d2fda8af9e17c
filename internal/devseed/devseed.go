// Package devseed populates a development database with a known owner,
// a couple of restaurants, and their menus.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/forkful/menuboard/internal/data"
	domainauth "github.com/forkful/menuboard/internal/domain/auth"
	"github.com/forkful/menuboard/internal/domain/model"
	apperrors "github.com/forkful/menuboard/internal/errors"
	"github.com/forkful/menuboard/internal/service"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	identities  *data.IdentityRepo
	restaurants *service.RestaurantService
	items       *service.MenuItemService
}

// NewServices constructs the services used for seeding against the given DB.
func NewServices(db *sql.DB) Services {
	restaurantRepo := data.NewRestaurantRepo(db)
	return Services{
		identities: data.NewIdentityRepo(db),
		restaurants: service.NewRestaurantService(service.RestaurantServiceOptions{
			Restaurants: restaurantRepo,
		}),
		items: service.NewMenuItemService(service.MenuItemServiceOptions{
			Items:       data.NewMenuItemRepo(db),
			Restaurants: restaurantRepo,
		}),
	}
}

const seedOwnerEmail = "dev@example.com"

type menuItemSeed struct {
	Name        string
	Course      string
	Description string
	Price       string
}

type restaurantSeed struct {
	Name  string
	Items []menuItemSeed
}

func defaultSeeds() []restaurantSeed {
	return []restaurantSeed{
		{
			Name: "Chez Gopher",
			Items: []menuItemSeed{
				{Name: "French Onion Soup", Course: "starter", Description: "With gruyere crouton", Price: "6.50"},
				{Name: "Beef Bourguignon", Course: "main", Description: "Slow braised, red wine", Price: "18.00"},
				{Name: "Creme Brulee", Course: "dessert", Price: "7.00"},
			},
		},
		{
			Name: "Noodle Bar",
			Items: []menuItemSeed{
				{Name: "Shoyu Ramen", Course: "main", Description: "Pork belly, soft egg", Price: "14.00"},
				{Name: "Gyoza", Course: "starter", Price: "6.00"},
			},
		},
	}
}

// Run seeds the dev owner and default restaurants. Already-seeded records
// are left in place, so running it repeatedly is safe.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	owner, err := ensureOwner(ctx, svcs.identities)
	if err != nil {
		return fmt.Errorf("seed owner: %w", err)
	}

	// Mutations below go through the services, so the seeds exercise the
	// same ownership checks real requests do.
	sess := domainauth.Session{
		Stage:      domainauth.StageAuthenticated,
		IdentityID: &owner.ID,
	}

	created := 0
	for _, seed := range defaultSeeds() {
		n, seedErr := seedRestaurant(ctx, svcs, sess, seed)
		if seedErr != nil {
			return seedErr
		}
		created += n
	}

	logger.InfoContext(ctx, "dev seed complete",
		"owner", owner.Email,
		"created", created,
	)
	return nil
}

func ensureOwner(ctx context.Context, identities *data.IdentityRepo) (*model.Identity, error) {
	owner, err := identities.GetByEmail(ctx, seedOwnerEmail)
	if err == nil {
		return owner, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}
	return identities.Create(ctx, model.CreateIdentityRequest{
		Name:  "Dev User",
		Email: seedOwnerEmail,
	})
}

func seedRestaurant(
	ctx context.Context,
	svcs Services,
	sess domainauth.Session,
	seed restaurantSeed,
) (int, error) {
	if exists, err := restaurantExists(ctx, svcs.restaurants, seed.Name); err != nil {
		return 0, err
	} else if exists {
		return 0, nil
	}

	restaurant, err := svcs.restaurants.Create(ctx, sess, &model.CreateRestaurantRequest{Name: seed.Name})
	if err != nil {
		return 0, fmt.Errorf("seed restaurant %q: %w", seed.Name, err)
	}

	created := 1
	for _, item := range seed.Items {
		if _, err := svcs.items.Create(ctx, sess, restaurant.ID, &model.CreateMenuItemRequest{
			Name:        item.Name,
			Course:      item.Course,
			Description: item.Description,
			Price:       item.Price,
		}); err != nil {
			return created, fmt.Errorf("seed menu item %q: %w", item.Name, err)
		}
		created++
	}
	return created, nil
}

func restaurantExists(ctx context.Context, svc *service.RestaurantService, name string) (bool, error) {
	// The seed set is tiny, so a single page is enough to check.
	existing, err := svc.List(ctx, 100, 0)
	if err != nil {
		return false, fmt.Errorf("list restaurants: %w", err)
	}
	for _, r := range existing {
		if r.Name == name {
			return true, nil
		}
	}
	return false, nil
}
