package service

import (
	"context"

	"github.com/forkful/menuboard/internal/core"
	domainauth "github.com/forkful/menuboard/internal/domain/auth"
	"github.com/forkful/menuboard/internal/domain/model"
	apperrors "github.com/forkful/menuboard/internal/errors"
)

// RestaurantServiceOptions groups dependencies for RestaurantService.
type RestaurantServiceOptions struct {
	Restaurants core.RestaurantRepository
}

// RestaurantService orchestrates restaurant CRUD. Reads are public; every
// mutation is gated on the caller's session owning the restaurant.
type RestaurantService struct {
	restaurants core.RestaurantRepository
}

// NewRestaurantService constructs a new RestaurantService.
func NewRestaurantService(opts RestaurantServiceOptions) *RestaurantService {
	return &RestaurantService{restaurants: opts.Restaurants}
}

// Create creates a restaurant owned by the session's identity.
func (s *RestaurantService) Create(
	ctx context.Context,
	sess domainauth.Session,
	req *model.CreateRestaurantRequest,
) (*model.Restaurant, error) {
	if !sess.IsAuthenticated() {
		return nil, apperrors.Forbidden()
	}
	req.OwnerID = *sess.IdentityID
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.restaurants.Create(ctx, req)
}

// Rename renames a restaurant. Only the owner may rename.
func (s *RestaurantService) Rename(
	ctx context.Context,
	sess domainauth.Session,
	id int64,
	req model.UpdateRestaurantRequest,
) (*model.Restaurant, error) {
	restaurant, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !RequireOwner(sess, restaurant.OwnerID) {
		return nil, apperrors.Forbidden()
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.restaurants.Update(ctx, id, req)
}

// Delete deletes a restaurant and, via the schema cascade, its menu items.
// Only the owner may delete.
func (s *RestaurantService) Delete(ctx context.Context, sess domainauth.Session, id int64) error {
	restaurant, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !RequireOwner(sess, restaurant.OwnerID) {
		return apperrors.Forbidden()
	}
	ok, err := s.restaurants.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("restaurant not found")
	}
	return nil
}

// GetByID retrieves a restaurant by id.
func (s *RestaurantService) GetByID(ctx context.Context, id int64) (*model.Restaurant, error) {
	return s.restaurants.GetByID(ctx, id)
}

// List returns a page of restaurants, newest first.
func (s *RestaurantService) List(ctx context.Context, limit, offset int) ([]*model.Restaurant, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.restaurants.List(ctx, limit, offset)
}

// Search returns restaurants matching the optional name and owner filters.
// A repository without filtered listing serves the plain newest-first page.
func (s *RestaurantService) Search(ctx context.Context, opts model.RestaurantsListOptions) ([]*model.Restaurant, error) {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	if searcher, ok := s.restaurants.(core.RestaurantRepositoryListWithOptions); ok {
		return searcher.ListWithOptions(ctx, opts)
	}
	return s.restaurants.List(ctx, opts.Limit, opts.Offset)
}
