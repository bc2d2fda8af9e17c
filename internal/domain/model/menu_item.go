package model

import (
	"strings"
	"time"

	apperrors "github.com/forkful/menuboard/internal/errors"
)

const (
	maxItemNameLen        = 80
	maxItemCourseLen      = 250
	maxItemDescriptionLen = 250
	maxItemPriceLen       = 8
	maxItemImageLen       = 80
)

// MenuItem belongs to the restaurant that serves it and is owned by the
// same identity that owns the restaurant. Price is kept as a short display
// string ("$7.50"); no arithmetic is performed on it.
type MenuItem struct {
	ID           int64     `json:"id"            db:"id"`
	RestaurantID int64     `json:"restaurant_id" db:"restaurant_id"`
	OwnerID      int64     `json:"owner_id"      db:"owner_id"`
	Name         string    `json:"name"          db:"name"`
	Course       string    `json:"course"        db:"course"`
	Description  string    `json:"description"   db:"description"`
	Price        string    `json:"price"         db:"price"`
	Image        string    `json:"image"         db:"image"`
	CreatedAt    time.Time `json:"created_at"    db:"created_at"`
}

// MenuItemRef addresses an item within a specific restaurant, as the URL
// space does.
type MenuItemRef struct {
	RestaurantID int64
	ItemID       int64
}

// CreateMenuItemRequest carries input for creating a menu item.
type CreateMenuItemRequest struct {
	RestaurantID int64  `json:"-"`
	OwnerID      int64  `json:"-"`
	Name         string `json:"name"`
	Course       string `json:"course"`
	Description  string `json:"description"`
	Price        string `json:"price"`
	Image        string `json:"image"`
}

// Validate checks the request fields.
func (r *CreateMenuItemRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return apperrors.ValidationField("name", "menu item name is required")
	}
	return validateItemFieldLengths(r.Name, r.Course, r.Description, r.Price, r.Image)
}

// UpdateMenuItemRequest carries partial updates for a menu item.
// Nil fields are left unchanged.
type UpdateMenuItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Course      *string `json:"course,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *string `json:"price,omitempty"`
	Image       *string `json:"image,omitempty"`
}

// Validate checks the request fields that are present.
func (r *UpdateMenuItemRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return apperrors.ValidationField("name", "menu item name cannot be empty")
	}
	return validateItemFieldLengths(
		strOrEmpty(r.Name),
		strOrEmpty(r.Course),
		strOrEmpty(r.Description),
		strOrEmpty(r.Price),
		strOrEmpty(r.Image),
	)
}

func validateItemFieldLengths(name, course, description, price, image string) error {
	switch {
	case len(name) > maxItemNameLen:
		return apperrors.ValidationField("name", "menu item name is too long")
	case len(course) > maxItemCourseLen:
		return apperrors.ValidationField("course", "course is too long")
	case len(description) > maxItemDescriptionLen:
		return apperrors.ValidationField("description", "description is too long")
	case len(price) > maxItemPriceLen:
		return apperrors.ValidationField("price", "price is too long")
	case len(image) > maxItemImageLen:
		return apperrors.ValidationField("image", "image filename is too long")
	}
	return nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
