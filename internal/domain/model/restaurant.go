package model

import (
	"strings"
	"time"

	apperrors "github.com/forkful/menuboard/internal/errors"
)

const maxRestaurantNameLen = 250

// Restaurant is owned by one identity and contains an arbitrary number of
// menu items. Deleting a restaurant cascades to its items.
type Restaurant struct {
	ID        int64     `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	OwnerID   int64     `json:"owner_id"   db:"owner_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateRestaurantRequest carries input for creating a restaurant.
type CreateRestaurantRequest struct {
	Name    string `json:"name"`
	OwnerID int64  `json:"-"`
}

// Validate checks the request fields.
func (r *CreateRestaurantRequest) Validate() error {
	return validateRestaurantName(r.Name)
}

// UpdateRestaurantRequest carries input for renaming a restaurant.
type UpdateRestaurantRequest struct {
	Name string `json:"name"`
}

// Validate checks the request fields.
func (r *UpdateRestaurantRequest) Validate() error {
	return validateRestaurantName(r.Name)
}

// RestaurantsListOptions carries optional filters for restaurant listings.
type RestaurantsListOptions struct {
	Q       *string
	OwnerID *int64
	Limit   int
	Offset  int
	Sort    string
	Dir     string
}

func validateRestaurantName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.ValidationField("name", "restaurant name is required")
	}
	if len(name) > maxRestaurantNameLen {
		return apperrors.ValidationField("name", "restaurant name is too long")
	}
	return nil
}
