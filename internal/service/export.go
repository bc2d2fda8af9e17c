package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/forkful/menuboard/internal/core"
	"github.com/forkful/menuboard/internal/domain/model"
	apperrors "github.com/forkful/menuboard/internal/errors"
)

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// RestaurantsExport is the payload of the all-restaurants export.
type RestaurantsExport struct {
	Restaurants []*model.Restaurant `json:"restaurants"`
}

// MenuExport is the payload of a single restaurant's menu export.
type MenuExport struct {
	Restaurant *model.Restaurant `json:"restaurant"`
	MenuItems  []*model.MenuItem `json:"menu_items"`
}

// ItemExport is the payload of a single menu item export.
type ItemExport struct {
	MenuItem *model.MenuItem `json:"menu_item"`
}

// ExportServiceOptions groups dependencies for ExportService.
type ExportServiceOptions struct {
	Restaurants core.RestaurantRepository
	Items       core.MenuItemRepository
	Evaluator   JMESPathEvaluator
}

// ExportService assembles machine-readable views of the public catalog.
// Payloads can optionally be narrowed with a JMESPath expression.
type ExportService struct {
	restaurants core.RestaurantRepository
	items       core.MenuItemRepository
	jems        JMESPathEvaluator
}

// NewExportService constructs a new ExportService.
func NewExportService(opts ExportServiceOptions) *ExportService {
	jems := opts.Evaluator
	if jems == nil {
		jems = jmespathLibEvaluator{}
	}
	return &ExportService{restaurants: opts.Restaurants, items: opts.Items, jems: jems}
}

// exportPageSize bounds the all-restaurants export.
const exportPageSize = 1000

// Restaurants returns the full restaurant catalog.
func (s *ExportService) Restaurants(ctx context.Context) (*RestaurantsExport, error) {
	restaurants, err := s.restaurants.List(ctx, exportPageSize, 0)
	if err != nil {
		return nil, err
	}
	return &RestaurantsExport{Restaurants: restaurants}, nil
}

// Menu returns one restaurant with all of its menu items.
func (s *ExportService) Menu(ctx context.Context, restaurantID int64) (*MenuExport, error) {
	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return &MenuExport{Restaurant: restaurant, MenuItems: items}, nil
}

// Item returns a single menu item, verifying restaurant membership.
func (s *ExportService) Item(ctx context.Context, ref model.MenuItemRef) (*ItemExport, error) {
	item, err := s.items.GetByID(ctx, ref.ItemID)
	if err != nil {
		return nil, err
	}
	if item.RestaurantID != ref.RestaurantID {
		return nil, apperrors.NotFound("menu item not found")
	}
	return &ItemExport{MenuItem: item}, nil
}

// ApplyFilter evaluates a JMESPath expression against an export payload and
// returns the narrowed result. An empty expression returns the payload as-is.
// Evaluation happens over the payload's JSON form so expressions address the
// same field names clients see on the wire.
func (s *ExportService) ApplyFilter(payload any, expr string) (any, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return payload, nil
	}
	if err := s.jems.Validate(expr); err != nil {
		return nil, apperrors.ValidationField("filter", "invalid filter expression")
	}
	data, err := toJSONValue(payload)
	if err != nil {
		return nil, fmt.Errorf("encode export payload: %w", err)
	}
	result, err := s.jems.Evaluate(expr, data)
	if err != nil {
		return nil, apperrors.ValidationField("filter", "filter evaluation failed")
	}
	return result, nil
}

func toJSONValue(payload any) (any, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}
