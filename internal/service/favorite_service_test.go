package service

import (
	"context"
	"testing"
	"time"

	"github.com/iamsashka/Kursach/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFavoriteFixture() (*FavoriteService, *mockStore) {
	store := newMockStore()
	return NewFavoriteService(store), store
}

func TestFavoriteAdd_Success(t *testing.T) {
	svc, store := newFavoriteFixture()

	store.products.On("FindByID", mock.Anything, uint(5)).
		Return(&model.Product{ID: 5, Name: "Wool Coat"}, nil).Once()
	store.favorites.On("Find", mock.Anything, uint(1), uint(5)).
		Return(nil, gorm.ErrRecordNotFound).Once()
	store.favorites.On("CountByUser", mock.Anything, uint(1)).Return(int64(3), nil).Once()
	store.favorites.On("Create", mock.Anything, mock.MatchedBy(func(f *model.Favorite) bool {
		return f.UserID == 1 && f.ProductID == 5
	})).Return(nil).Once()

	favorite, err := svc.Add(context.Background(), 1, 5)

	require.NoError(t, err)
	assert.Equal(t, uint(5), favorite.ProductID)
	store.favorites.AssertExpectations(t)
}

func TestFavoriteAdd_Duplicate(t *testing.T) {
	svc, store := newFavoriteFixture()

	store.products.On("FindByID", mock.Anything, uint(5)).
		Return(&model.Product{ID: 5}, nil).Once()
	store.favorites.On("Find", mock.Anything, uint(1), uint(5)).
		Return(&model.Favorite{ID: 7, UserID: 1, ProductID: 5}, nil).Once()

	_, err := svc.Add(context.Background(), 1, 5)

	assert.ErrorIs(t, err, ErrAlreadyInFavorites)
}

func TestFavoriteAdd_AtCapNamesOldest(t *testing.T) {
	svc, store := newFavoriteFixture()

	added := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	oldest := &model.Favorite{
		ID: 42, UserID: 1, ProductID: 9,
		Product:   model.Product{ID: 9, Name: "Denim Jacket"},
		CreatedAt: added,
	}
	store.products.On("FindByID", mock.Anything, uint(5)).
		Return(&model.Product{ID: 5}, nil).Once()
	store.favorites.On("Find", mock.Anything, uint(1), uint(5)).
		Return(nil, gorm.ErrRecordNotFound).Once()
	store.favorites.On("CountByUser", mock.Anything, uint(1)).
		Return(int64(DefaultFavoritesLimit), nil).Once()
	store.favorites.On("OldestByUser", mock.Anything, uint(1)).Return(oldest, nil).Once()

	_, err := svc.Add(context.Background(), 1, 5)

	var limitErr *FavoritesLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, DefaultFavoritesLimit, limitErr.Limit)
	assert.Equal(t, uint(42), limitErr.OldestFavoriteID)
	assert.Equal(t, uint(9), limitErr.OldestProductID)
	assert.Equal(t, "Denim Jacket", limitErr.OldestProductName)
	assert.Equal(t, added, limitErr.OldestAddedAt)
	store.favorites.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	store.favorites.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestFavoriteAdd_UnknownProduct(t *testing.T) {
	svc, store := newFavoriteFixture()
	store.products.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound).Once()

	_, err := svc.Add(context.Background(), 1, 99)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFavoriteReplaceOldest(t *testing.T) {
	svc, store := newFavoriteFixture()

	oldest := &model.Favorite{ID: 42, UserID: 1, ProductID: 9}
	store.favorites.On("Find", mock.Anything, uint(1), uint(5)).
		Return(nil, gorm.ErrRecordNotFound).Once()
	store.favorites.On("OldestByUser", mock.Anything, uint(1)).Return(oldest, nil).Once()
	store.favorites.On("Delete", mock.Anything, uint(42)).Return(nil).Once()
	store.favorites.On("Create", mock.Anything, mock.MatchedBy(func(f *model.Favorite) bool {
		return f.UserID == 1 && f.ProductID == 5
	})).Return(nil).Once()

	favorite, err := svc.ReplaceOldest(context.Background(), 1, 5)

	require.NoError(t, err)
	assert.Equal(t, uint(5), favorite.ProductID)
	store.favorites.AssertExpectations(t)
}

func TestFavoriteReplaceOldest_DuplicateTarget(t *testing.T) {
	svc, store := newFavoriteFixture()

	store.favorites.On("Find", mock.Anything, uint(1), uint(5)).
		Return(&model.Favorite{ID: 7, UserID: 1, ProductID: 5}, nil).Once()

	_, err := svc.ReplaceOldest(context.Background(), 1, 5)

	assert.ErrorIs(t, err, ErrAlreadyInFavorites)
	store.favorites.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestFavoriteReplaceOldest_EmptyList(t *testing.T) {
	svc, store := newFavoriteFixture()

	store.favorites.On("Find", mock.Anything, uint(1), uint(5)).
		Return(nil, gorm.ErrRecordNotFound).Once()
	store.favorites.On("OldestByUser", mock.Anything, uint(1)).
		Return(nil, gorm.ErrRecordNotFound).Once()

	_, err := svc.ReplaceOldest(context.Background(), 1, 5)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFavoriteRemove_MissingIsNotFound(t *testing.T) {
	svc, store := newFavoriteFixture()
	store.favorites.On("DeleteByUserProduct", mock.Anything, uint(1), uint(5)).
		Return(gorm.ErrRecordNotFound).Once()

	err := svc.Remove(context.Background(), 1, 5)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFavoriteStatusForProducts(t *testing.T) {
	svc, store := newFavoriteFixture()

	store.favorites.On("ProductIDsForUser", mock.Anything, uint(1), []uint{5, 6, 7}).
		Return([]uint{6}, nil).Once()

	status, err := svc.StatusForProducts(context.Background(), 1, []uint{5, 6, 7})

	require.NoError(t, err)
	assert.Equal(t, map[uint]bool{5: false, 6: true, 7: false}, status)
}

func TestFavoriteStatusForProducts_EmptyInput(t *testing.T) {
	svc, store := newFavoriteFixture()

	status, err := svc.StatusForProducts(context.Background(), 1, nil)

	require.NoError(t, err)
	assert.Empty(t, status)
	store.favorites.AssertNotCalled(t, "ProductIDsForUser", mock.Anything, mock.Anything, mock.Anything)
}
