package repository

import (
	"context"

	"github.com/iamsashka/Kursach/internal/model"
	"gorm.io/gorm"
)

// FavoriteRepository provides query methods over favorites
type FavoriteRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]model.Favorite, error)
	Find(ctx context.Context, userID, productID uint) (*model.Favorite, error)
	Create(ctx context.Context, favorite *model.Favorite) error
	Delete(ctx context.Context, id uint) error
	DeleteByUserProduct(ctx context.Context, userID, productID uint) error
	ClearUser(ctx context.Context, userID uint) error
	CountByUser(ctx context.Context, userID uint) (int64, error)
	// OldestByUser returns the replacement candidate when the cap is reached
	OldestByUser(ctx context.Context, userID uint) (*model.Favorite, error)
	ProductIDsForUser(ctx context.Context, userID uint, productIDs []uint) ([]uint, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint) ([]model.Favorite, error) {
	var favorites []model.Favorite
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("Product.Category").Preload("Product.Brand").
		Preload("Product.Images").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	return favorites, err
}

func (r *favoriteRepository) Find(ctx context.Context, userID, productID uint) (*model.Favorite, error) {
	var favorite model.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&favorite).Error
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepository) Create(ctx context.Context, favorite *model.Favorite) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *favoriteRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Favorite{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *favoriteRepository) DeleteByUserProduct(ctx context.Context, userID, productID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *favoriteRepository) ClearUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Favorite{}).Error
}

func (r *favoriteRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *favoriteRepository) OldestByUser(ctx context.Context, userID uint) (*model.Favorite, error) {
	var favorite model.Favorite
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		First(&favorite).Error
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepository) ProductIDsForUser(ctx context.Context, userID uint, productIDs []uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ? AND product_id IN ?", userID, productIDs).
		Pluck("product_id", &ids).Error
	return ids, err
}
