// Package mocks provides generated mock implementations for testing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the repository interfaces in internal/core. To regenerate after interface
// changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	t.Cleanup(ctrl.Finish)
//	repo := mocks.NewMockRestaurantRepository(ctrl)
//	repo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(restaurant, nil)
package mocks

// Generate mock for RestaurantRepository interface from internal/core:
// Create, GetByID, List, Update, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=restaurant_repository_mock.go github.com/forkful/menuboard/internal/core RestaurantRepository

// Generate mock for MenuItemRepository interface from internal/core:
// Create, GetByID, ListByRestaurant, Update, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=menu_item_repository_mock.go github.com/forkful/menuboard/internal/core MenuItemRepository

// Generate mock for IdentityRepository interface from internal/core:
// Create, GetByID, GetByEmail
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=identity_repository_mock.go github.com/forkful/menuboard/internal/core IdentityRepository
