package service

import (
	"context"

	"github.com/forkful/menuboard/internal/core"
	domainauth "github.com/forkful/menuboard/internal/domain/auth"
	"github.com/forkful/menuboard/internal/domain/model"
	apperrors "github.com/forkful/menuboard/internal/errors"
)

// MenuItemServiceOptions groups dependencies for MenuItemService.
type MenuItemServiceOptions struct {
	Items       core.MenuItemRepository
	Restaurants core.RestaurantRepository
}

// MenuItemService orchestrates menu item CRUD. Items inherit their owner from
// the restaurant they belong to, and every mutation is gated on that owner.
type MenuItemService struct {
	items       core.MenuItemRepository
	restaurants core.RestaurantRepository
}

// NewMenuItemService constructs a new MenuItemService.
func NewMenuItemService(opts MenuItemServiceOptions) *MenuItemService {
	return &MenuItemService{items: opts.Items, restaurants: opts.Restaurants}
}

// Create adds a menu item to a restaurant. Only the restaurant owner may add.
func (s *MenuItemService) Create(
	ctx context.Context,
	sess domainauth.Session,
	restaurantID int64,
	req *model.CreateMenuItemRequest,
) (*model.MenuItem, error) {
	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !RequireOwner(sess, restaurant.OwnerID) {
		return nil, apperrors.Forbidden()
	}
	req.RestaurantID = restaurant.ID
	req.OwnerID = restaurant.OwnerID
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.items.Create(ctx, req)
}

// Update edits the provided fields of a menu item. Only the owner may edit.
func (s *MenuItemService) Update(
	ctx context.Context,
	sess domainauth.Session,
	ref model.MenuItemRef,
	req model.UpdateMenuItemRequest,
) (*model.MenuItem, error) {
	item, err := s.getInRestaurant(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !RequireOwner(sess, item.OwnerID) {
		return nil, apperrors.Forbidden()
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.items.Update(ctx, item.ID, req)
}

// Delete removes a menu item. Only the owner may delete.
func (s *MenuItemService) Delete(ctx context.Context, sess domainauth.Session, ref model.MenuItemRef) error {
	item, err := s.getInRestaurant(ctx, ref)
	if err != nil {
		return err
	}
	if !RequireOwner(sess, item.OwnerID) {
		return apperrors.Forbidden()
	}
	ok, err := s.items.Delete(ctx, item.ID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("menu item not found")
	}
	return nil
}

// GetByRef retrieves a menu item, checking it belongs to the given restaurant.
func (s *MenuItemService) GetByRef(ctx context.Context, ref model.MenuItemRef) (*model.MenuItem, error) {
	return s.getInRestaurant(ctx, ref)
}

// ListByRestaurant returns all items on a restaurant's menu.
func (s *MenuItemService) ListByRestaurant(ctx context.Context, restaurantID int64) ([]*model.MenuItem, error) {
	if _, err := s.restaurants.GetByID(ctx, restaurantID); err != nil {
		return nil, err
	}
	return s.items.ListByRestaurant(ctx, restaurantID)
}

// getInRestaurant loads an item and rejects ids that belong to a different
// restaurant, so URL-crafted cross-restaurant references read as missing.
func (s *MenuItemService) getInRestaurant(ctx context.Context, ref model.MenuItemRef) (*model.MenuItem, error) {
	item, err := s.items.GetByID(ctx, ref.ItemID)
	if err != nil {
		return nil, err
	}
	if item.RestaurantID != ref.RestaurantID {
		return nil, apperrors.NotFound("menu item not found")
	}
	return item, nil
}
