package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/forkful/menuboard/internal/domain/auth"
	"github.com/forkful/menuboard/internal/domain/model"
	apperrors "github.com/forkful/menuboard/internal/errors"
	"github.com/forkful/menuboard/internal/mocks"
)

func newRestaurantService(t *testing.T) (*mocks.MockRestaurantRepository, *RestaurantService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockRestaurantRepository(ctrl)
	svc := NewRestaurantService(RestaurantServiceOptions{Restaurants: repo})
	return repo, svc
}

func TestRestaurantService_Create_Success(t *testing.T) {
	t.Parallel()
	repo, svc := newRestaurantService(t)
	ctx := context.Background()

	req := &model.CreateRestaurantRequest{Name: "Urban Burger"}
	created := &model.Restaurant{ID: 1, Name: "Urban Burger", OwnerID: 7, CreatedAt: time.Now()}
	repo.EXPECT().Create(ctx, req).Return(created, nil)

	got, err := svc.Create(ctx, authedSession(7), req)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, int64(7), req.OwnerID, "owner comes from the session")
}

func TestRestaurantService_Create_RequiresLogin(t *testing.T) {
	t.Parallel()
	_, svc := newRestaurantService(t)

	_, err := svc.Create(context.Background(), domainauth.Session{Stage: domainauth.StageAnonymous}, &model.CreateRestaurantRequest{Name: "Urban Burger"})
	assert.True(t, apperrors.IsForbidden(err))
}

func TestRestaurantService_Create_ValidatesName(t *testing.T) {
	t.Parallel()
	_, svc := newRestaurantService(t)

	_, err := svc.Create(context.Background(), authedSession(7), &model.CreateRestaurantRequest{Name: "   "})
	require.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "name", apperrors.GetField(err))
}

func TestRestaurantService_Rename_Success(t *testing.T) {
	t.Parallel()
	repo, svc := newRestaurantService(t)
	ctx := context.Background()

	repo.EXPECT().GetByID(ctx, int64(1)).Return(&model.Restaurant{ID: 1, Name: "Urban Burger", OwnerID: 7}, nil)
	req := model.UpdateRestaurantRequest{Name: "Super Burger"}
	repo.EXPECT().Update(ctx, int64(1), req).Return(&model.Restaurant{ID: 1, Name: "Super Burger", OwnerID: 7}, nil)

	got, err := svc.Rename(ctx, authedSession(7), 1, req)
	require.NoError(t, err)
	assert.Equal(t, "Super Burger", got.Name)
}

func TestRestaurantService_Rename_NotOwner(t *testing.T) {
	t.Parallel()
	repo, svc := newRestaurantService(t)
	ctx := context.Background()

	repo.EXPECT().GetByID(ctx, int64(1)).Return(&model.Restaurant{ID: 1, OwnerID: 7}, nil)

	_, err := svc.Rename(ctx, authedSession(8), 1, model.UpdateRestaurantRequest{Name: "Stolen Burger"})
	assert.True(t, apperrors.IsForbidden(err))
}

func TestRestaurantService_Rename_NotFound(t *testing.T) {
	t.Parallel()
	repo, svc := newRestaurantService(t)
	ctx := context.Background()

	repo.EXPECT().GetByID(ctx, int64(99)).Return(nil, apperrors.NotFound("restaurant not found"))

	_, err := svc.Rename(ctx, authedSession(7), 99, model.UpdateRestaurantRequest{Name: "Ghost"})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestRestaurantService_Delete_Success(t *testing.T) {
	t.Parallel()
	repo, svc := newRestaurantService(t)
	ctx := context.Background()

	repo.EXPECT().GetByID(ctx, int64(1)).Return(&model.Restaurant{ID: 1, OwnerID: 7}, nil)
	repo.EXPECT().Delete(ctx, int64(1)).Return(true, nil)

	require.NoError(t, svc.Delete(ctx, authedSession(7), 1))
}

func TestRestaurantService_Delete_NotOwner(t *testing.T) {
	t.Parallel()
	repo, svc := newRestaurantService(t)
	ctx := context.Background()

	repo.EXPECT().GetByID(ctx, int64(1)).Return(&model.Restaurant{ID: 1, OwnerID: 7}, nil)

	err := svc.Delete(ctx, authedSession(8), 1)
	assert.True(t, apperrors.IsForbidden(err))
}

func TestRestaurantService_Delete_AnonymousSession(t *testing.T) {
	t.Parallel()
	repo, svc := newRestaurantService(t)
	ctx := context.Background()

	repo.EXPECT().GetByID(ctx, int64(1)).Return(&model.Restaurant{ID: 1, OwnerID: 7}, nil)

	err := svc.Delete(ctx, domainauth.Session{Stage: domainauth.StageAnonymous}, 1)
	assert.True(t, apperrors.IsForbidden(err))
}

func TestRestaurantService_List_NormalizesPaging(t *testing.T) {
	t.Parallel()
	repo, svc := newRestaurantService(t)
	ctx := context.Background()

	repo.EXPECT().List(ctx, 50, 0).Return([]*model.Restaurant{}, nil)

	_, err := svc.List(ctx, 0, -3)
	require.NoError(t, err)
}

// searchableRestaurantRepo augments the generated mock with filtered listing.
type searchableRestaurantRepo struct {
	*mocks.MockRestaurantRepository
	gotOpts model.RestaurantsListOptions
	out     []*model.Restaurant
}

func (s *searchableRestaurantRepo) ListWithOptions(_ context.Context, opts model.RestaurantsListOptions) ([]*model.Restaurant, error) {
	s.gotOpts = opts
	return s.out, nil
}

func TestRestaurantService_Search_UsesFilteredListing(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := &searchableRestaurantRepo{
		MockRestaurantRepository: mocks.NewMockRestaurantRepository(ctrl),
		out:                      []*model.Restaurant{{ID: 1, Name: "Urban Burger", OwnerID: 7}},
	}
	svc := NewRestaurantService(RestaurantServiceOptions{Restaurants: repo})

	q := "burger"
	got, err := svc.Search(context.Background(), model.RestaurantsListOptions{Q: &q, Offset: -1})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	require.NotNil(t, repo.gotOpts.Q)
	assert.Equal(t, "burger", *repo.gotOpts.Q)
	assert.Equal(t, 50, repo.gotOpts.Limit, "zero limit gets the default page size")
	assert.Equal(t, 0, repo.gotOpts.Offset)
}

func TestRestaurantService_Search_FallsBackToPlainList(t *testing.T) {
	t.Parallel()
	repo, svc := newRestaurantService(t)
	ctx := context.Background()

	repo.EXPECT().List(ctx, 50, 0).Return([]*model.Restaurant{}, nil)

	_, err := svc.Search(ctx, model.RestaurantsListOptions{})
	require.NoError(t, err)
}
