package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/forkful/menuboard/internal/domain/model"
	apperrors "github.com/forkful/menuboard/internal/errors"
	"github.com/forkful/menuboard/internal/mocks"
)

func newExportService(t *testing.T) (*mocks.MockRestaurantRepository, *mocks.MockMenuItemRepository, *ExportService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	restaurants := mocks.NewMockRestaurantRepository(ctrl)
	items := mocks.NewMockMenuItemRepository(ctrl)
	svc := NewExportService(ExportServiceOptions{Restaurants: restaurants, Items: items})
	return restaurants, items, svc
}

func TestExportService_Restaurants(t *testing.T) {
	t.Parallel()
	restaurants, _, svc := newExportService(t)
	ctx := context.Background()

	restaurants.EXPECT().List(ctx, exportPageSize, 0).Return([]*model.Restaurant{
		{ID: 1, Name: "Urban Burger", OwnerID: 7},
	}, nil)

	got, err := svc.Restaurants(ctx)
	require.NoError(t, err)
	require.Len(t, got.Restaurants, 1)
	assert.Equal(t, "Urban Burger", got.Restaurants[0].Name)
}

func TestExportService_Menu(t *testing.T) {
	t.Parallel()
	restaurants, items, svc := newExportService(t)
	ctx := context.Background()

	restaurants.EXPECT().GetByID(ctx, int64(1)).Return(&model.Restaurant{ID: 1, Name: "Urban Burger"}, nil)
	items.EXPECT().ListByRestaurant(ctx, int64(1)).Return([]*model.MenuItem{
		{ID: 10, RestaurantID: 1, Name: "Veggie Burger", Price: "$7.50"},
	}, nil)

	got, err := svc.Menu(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Urban Burger", got.Restaurant.Name)
	require.Len(t, got.MenuItems, 1)
	assert.Equal(t, "Veggie Burger", got.MenuItems[0].Name)
}

func TestExportService_Item_WrongRestaurant(t *testing.T) {
	t.Parallel()
	_, items, svc := newExportService(t)
	ctx := context.Background()

	items.EXPECT().GetByID(ctx, int64(10)).Return(&model.MenuItem{ID: 10, RestaurantID: 2}, nil)

	_, err := svc.Item(ctx, model.MenuItemRef{RestaurantID: 1, ItemID: 10})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestExportService_ApplyFilter(t *testing.T) {
	t.Parallel()
	_, _, svc := newExportService(t)

	payload := &RestaurantsExport{Restaurants: []*model.Restaurant{
		{ID: 1, Name: "Urban Burger", OwnerID: 7},
		{ID: 2, Name: "Panda Garden", OwnerID: 8},
	}}

	got, err := svc.ApplyFilter(payload, "restaurants[?owner_id==`7`].name")
	require.NoError(t, err)
	assert.Equal(t, []any{"Urban Burger"}, got)
}

func TestExportService_ApplyFilter_EmptyExprPassesThrough(t *testing.T) {
	t.Parallel()
	_, _, svc := newExportService(t)

	payload := &ItemExport{MenuItem: &model.MenuItem{ID: 10}}
	got, err := svc.ApplyFilter(payload, "   ")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestExportService_ApplyFilter_InvalidExpr(t *testing.T) {
	t.Parallel()
	_, _, svc := newExportService(t)

	_, err := svc.ApplyFilter(&RestaurantsExport{}, "restaurants[?")
	require.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "filter", apperrors.GetField(err))
}
