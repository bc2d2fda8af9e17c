// Package core defines the contracts between the service layer and the data
// layer. Service implementations depend on these interfaces, not on concrete
// repositories.
package core

import (
	"context"

	"github.com/forkful/menuboard/internal/domain/model"
)

// IdentityRepository defines the interface for local identity records.
// Identities are created on first login and looked up by their unique email.
type IdentityRepository interface {
	Create(ctx context.Context, req model.CreateIdentityRequest) (*model.Identity, error)
	GetByID(ctx context.Context, id int64) (*model.Identity, error)
	GetByEmail(ctx context.Context, email string) (*model.Identity, error)
}

// RestaurantRepository defines the interface for restaurant data operations.
type RestaurantRepository interface {
	Create(ctx context.Context, req *model.CreateRestaurantRequest) (*model.Restaurant, error)
	GetByID(ctx context.Context, id int64) (*model.Restaurant, error)
	List(ctx context.Context, limit, offset int) ([]*model.Restaurant, error)
	Update(ctx context.Context, id int64, req model.UpdateRestaurantRequest) (*model.Restaurant, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// RestaurantRepositoryListWithOptions is an optional extension for
// repositories that support filtered listing.
type RestaurantRepositoryListWithOptions interface {
	ListWithOptions(ctx context.Context, opts model.RestaurantsListOptions) ([]*model.Restaurant, error)
}

// MenuItemRepository defines the interface for menu item data operations.
type MenuItemRepository interface {
	Create(ctx context.Context, req *model.CreateMenuItemRequest) (*model.MenuItem, error)
	GetByID(ctx context.Context, id int64) (*model.MenuItem, error)
	ListByRestaurant(ctx context.Context, restaurantID int64) ([]*model.MenuItem, error)
	Update(ctx context.Context, id int64, req model.UpdateMenuItemRequest) (*model.MenuItem, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
