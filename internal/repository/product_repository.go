package repository

import (
	"context"
	"errors"

	"github.com/iamsashka/Kursach/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Catalog sort fields accepted from callers; anything else falls back to the default.
var catalogSortFields = map[string]string{
	"name":       "name",
	"price":      "price",
	"created_at": "created_at",
	"views":      "views",
	"rating":     "rating",
}

// CatalogFilter is an open-ended combination of optional product filters.
// Absent fields are no-ops; present fields combine with AND.
type CatalogFilter struct {
	CategoryID      *uint
	BrandID         *uint
	PriceMin        *decimal.Decimal
	PriceMax        *decimal.Decimal
	Color           string
	Size            string
	CountryOfOrigin string
	TargetAudience  string
	Tag             string
	Query           string
	OnSale          bool

	Page     int
	PageSize int
	SortBy   string
	SortDir  string
}

// ProductRepository provides query methods over catalog products
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	FindByName(ctx context.Context, name string) (*model.Product, error)
	List(ctx context.Context, filter CatalogFilter) ([]model.Product, int64, error)
	ListArchived(ctx context.Context, page, pageSize int) ([]model.Product, int64, error)
	SoftDelete(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) error
	// DecrementStock subtracts quantity from stock in one conditional update.
	// Returns ErrInsufficientStock when the row has fewer units than requested.
	DecrementStock(ctx context.Context, id uint, quantity int) error
	IncrementViews(ctx context.Context, id uint) error
	CountActive(ctx context.Context) (int64, error)
}

// ErrInsufficientStock is reported by DecrementStock when the conditional
// update matches no row, leaving the stock unchanged.
var ErrInsufficientStock = errors.New("insufficient stock")

type productRepository struct {
	db *gorm.DB
}

func (r *productRepository) preload(db *gorm.DB) *gorm.DB {
	return db.Preload("Category").Preload("Brand").
		Preload("Images").Preload("Colors").Preload("Tags")
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Images", "Colors", "Tags", "Category", "Brand").Save(product).Error; err != nil {
			return err
		}
		// Child rows are replaced wholesale so removed images/colors/tags disappear
		if err := tx.Model(product).Association("Images").Unscoped().Replace(product.Images); err != nil {
			return err
		}
		if err := tx.Model(product).Association("Colors").Unscoped().Replace(product.Colors); err != nil {
			return err
		}
		return tx.Model(product).Association("Tags").Unscoped().Replace(product.Tags)
	})
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := r.preload(r.db.WithContext(ctx)).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByName(ctx context.Context, name string) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, filter CatalogFilter) ([]model.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.BrandID != nil {
		query = query.Where("brand_id = ?", *filter.BrandID)
	}
	if filter.PriceMin != nil {
		query = query.Where("price >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		query = query.Where("price <= ?", *filter.PriceMax)
	}
	if filter.Color != "" {
		query = query.Where("EXISTS (SELECT 1 FROM product_colors pc WHERE pc.product_id = products.id AND pc.name = ?)",
			filter.Color)
	}
	if filter.Size != "" {
		query = query.Where("sizes ILIKE ?", "%"+filter.Size+"%")
	}
	if filter.CountryOfOrigin != "" {
		query = query.Where("country_of_origin = ?", filter.CountryOfOrigin)
	}
	if filter.TargetAudience != "" {
		query = query.Where("target_audience = ?", filter.TargetAudience)
	}
	if filter.Tag != "" {
		query = query.Where("EXISTS (SELECT 1 FROM product_tags pt WHERE pt.product_id = products.id AND pt.tag = ?)",
			filter.Tag)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}
	if filter.OnSale {
		query = query.Where("original_price > price AND original_price > 0")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField, ok := catalogSortFields[filter.SortBy]
	if !ok {
		sortField = "created_at"
	}
	direction := "DESC"
	if filter.SortDir == "asc" {
		direction = "ASC"
	}

	var products []model.Product
	err := r.preload(query).
		Order(sortField + " " + direction).
		Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize).
		Find(&products).Error
	return products, total, err
}

func (r *productRepository) ListArchived(ctx context.Context, page, pageSize int) ([]model.Product, int64, error) {
	query := r.db.WithContext(ctx).Unscoped().Model(&model.Product{}).Where("products.deleted_at IS NOT NULL")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []model.Product
	err := query.Preload("Category").Preload("Brand").
		Order("deleted_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&products).Error
	return products, total, err
}

func (r *productRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepository) Restore(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Unscoped().Model(&model.Product{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepository) DecrementStock(ctx context.Context, id uint, quantity int) error {
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND stock_quantity >= ?", id, quantity).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (r *productRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

func (r *productRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&count).Error
	return count, err
}
