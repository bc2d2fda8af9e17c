package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkful/menuboard/internal/domain/model"
	apperrors "github.com/forkful/menuboard/internal/errors"
	"github.com/forkful/menuboard/internal/testutil"
)

func createTestRestaurant(t *testing.T, db *sql.DB, name string, ownerID int64) *model.Restaurant {
	t.Helper()
	repo := NewRestaurantRepo(db)
	restaurant, err := repo.Create(context.Background(), &model.CreateRestaurantRequest{
		Name:    name,
		OwnerID: ownerID,
	})
	require.NoError(t, err)
	return restaurant
}

func TestRestaurantRepo_Create_Get_List_Update_Delete(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewRestaurantRepo(db)
		owner := createTestIdentity(t, db, uniqueEmail("owner"))

		// create
		restaurant := createTestRestaurant(t, db, "Urban Burger", owner.ID)
		require.NotZero(t, restaurant.ID)
		assert.Equal(t, owner.ID, restaurant.OwnerID)
		assert.NotZero(t, restaurant.CreatedAt)

		// get
		got, err := repo.GetByID(ctx, restaurant.ID)
		require.NoError(t, err)
		assert.Equal(t, "Urban Burger", got.Name)

		// list
		lst, err := repo.List(ctx, 10, 0)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(lst), 1)

		// update
		updated, err := repo.Update(ctx, restaurant.ID, model.UpdateRestaurantRequest{Name: "Super Burger"})
		require.NoError(t, err)
		assert.Equal(t, "Super Burger", updated.Name)

		// delete
		ok, err := repo.Delete(ctx, restaurant.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = repo.GetByID(ctx, restaurant.ID)
		assert.True(t, apperrors.IsNotFound(err))

		// delete again reports nothing removed
		ok, err = repo.Delete(ctx, restaurant.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRestaurantRepo_Create_UnknownOwner(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewRestaurantRepo(db)
		_, err := repo.Create(context.Background(), &model.CreateRestaurantRequest{
			Name:    "Orphan",
			OwnerID: 9999999,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err), "foreign key violations map to validation errors")
	})
}

func TestRestaurantRepo_ListWithOptions(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewRestaurantRepo(db)
		alice := createTestIdentity(t, db, uniqueEmail("alice"))
		bob := createTestIdentity(t, db, uniqueEmail("bob"))

		createTestRestaurant(t, db, "Urban Burger", alice.ID)
		createTestRestaurant(t, db, "Panda Garden", alice.ID)
		createTestRestaurant(t, db, "Burger Barn", bob.ID)

		// name search
		byName, err := repo.ListWithOptions(ctx, model.RestaurantsListOptions{Q: testutil.StringPtr("burger")})
		require.NoError(t, err)
		require.Len(t, byName, 2)

		// owner filter
		byOwner, err := repo.ListWithOptions(ctx, model.RestaurantsListOptions{OwnerID: &alice.ID})
		require.NoError(t, err)
		require.Len(t, byOwner, 2)
		for _, restaurant := range byOwner {
			assert.Equal(t, alice.ID, restaurant.OwnerID)
		}

		// combined
		both, err := repo.ListWithOptions(ctx, model.RestaurantsListOptions{
			Q:       testutil.StringPtr("burger"),
			OwnerID: &bob.ID,
		})
		require.NoError(t, err)
		require.Len(t, both, 1)
		assert.Equal(t, "Burger Barn", both[0].Name)

		// sort by name ascending
		sorted, err := repo.ListWithOptions(ctx, model.RestaurantsListOptions{Sort: "name", Dir: "asc"})
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(sorted), 3)
		assert.Equal(t, "Burger Barn", sorted[0].Name)
	})
}

func TestRestaurantRepo_CascadeDeletesMenuItems(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		restaurants := NewRestaurantRepo(db)
		items := NewMenuItemRepo(db)

		owner := createTestIdentity(t, db, uniqueEmail("cascade"))
		restaurant := createTestRestaurant(t, db, "Doomed Diner", owner.ID)
		item, err := items.Create(ctx, &model.CreateMenuItemRequest{
			RestaurantID: restaurant.ID,
			OwnerID:      owner.ID,
			Name:         "Last Supper",
			Price:        "$9.99",
		})
		require.NoError(t, err)

		ok, err := restaurants.Delete(ctx, restaurant.ID)
		require.NoError(t, err)
		require.True(t, ok)

		_, err = items.GetByID(ctx, item.ID)
		assert.True(t, apperrors.IsNotFound(err))
	})
}
