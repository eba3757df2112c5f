package service

import (
	"context"
	"errors"

	"github.com/iamsashka/Kursach/internal/model"
	"github.com/iamsashka/Kursach/internal/repository"
	"github.com/iamsashka/Kursach/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultFavoritesLimit caps favorites per user
const DefaultFavoritesLimit = 100

// FavoriteService manages the per-user favorites list with its capacity cap
type FavoriteService struct {
	store repository.Store
	limit int
}

// NewFavoriteService creates a favorite service with the default cap
func NewFavoriteService(store repository.Store) *FavoriteService {
	return &FavoriteService{store: store, limit: DefaultFavoritesLimit}
}

// List returns the user's favorites, newest first
func (s *FavoriteService) List(ctx context.Context, userID uint) ([]model.Favorite, error) {
	return s.store.Favorites().ListByUser(ctx, userID)
}

// Add bookmarks a product. When the user already holds the cap, it fails with
// a FavoritesLimitError naming the oldest favorite so the caller can confirm a
// replacement — there is no silent eviction.
func (s *FavoriteService) Add(ctx context.Context, userID, productID uint) (*model.Favorite, error) {
	if _, err := s.store.Products().FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if _, err := s.store.Favorites().Find(ctx, userID, productID); err == nil {
		return nil, ErrAlreadyInFavorites
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	count, err := s.store.Favorites().CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.limit) {
		oldest, err := s.store.Favorites().OldestByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		return nil, &FavoritesLimitError{
			Limit:             s.limit,
			OldestFavoriteID:  oldest.ID,
			OldestProductID:   oldest.ProductID,
			OldestProductName: oldest.Product.Name,
			OldestAddedAt:     oldest.CreatedAt,
		}
	}

	favorite := &model.Favorite{UserID: userID, ProductID: productID}
	if err := s.store.Favorites().Create(ctx, favorite); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Product favorited",
		zap.Uint("user_id", userID),
		zap.Uint("product_id", productID))
	return favorite, nil
}

// ReplaceOldest removes the user's oldest favorite and adds the new product,
// both inside one transaction. This is the explicit confirmation path for a
// full list.
func (s *FavoriteService) ReplaceOldest(ctx context.Context, userID, productID uint) (*model.Favorite, error) {
	var favorite *model.Favorite
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Favorites().Find(ctx, userID, productID); err == nil {
			return ErrAlreadyInFavorites
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		oldest, err := tx.Favorites().OldestByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Favorites().Delete(ctx, oldest.ID); err != nil {
			return err
		}

		favorite = &model.Favorite{UserID: userID, ProductID: productID}
		return tx.Favorites().Create(ctx, favorite)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Oldest favorite replaced",
		zap.Uint("user_id", userID),
		zap.Uint("product_id", productID))
	return favorite, nil
}

// Remove deletes a bookmark
func (s *FavoriteService) Remove(ctx context.Context, userID, productID uint) error {
	err := s.store.Favorites().DeleteByUserProduct(ctx, userID, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Clear drops all of the user's favorites
func (s *FavoriteService) Clear(ctx context.Context, userID uint) error {
	return s.store.Favorites().ClearUser(ctx, userID)
}

// Count returns how many favorites the user holds
func (s *FavoriteService) Count(ctx context.Context, userID uint) (int64, error) {
	return s.store.Favorites().CountByUser(ctx, userID)
}

// StatusForProducts maps each product id to whether the user favorited it
func (s *FavoriteService) StatusForProducts(ctx context.Context, userID uint, productIDs []uint) (map[uint]bool, error) {
	status := make(map[uint]bool, len(productIDs))
	for _, id := range productIDs {
		status[id] = false
	}
	if len(productIDs) == 0 {
		return status, nil
	}

	favorited, err := s.store.Favorites().ProductIDsForUser(ctx, userID, productIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range favorited {
		status[id] = true
	}
	return status, nil
}
