package service

import (
	"context"
	"errors"

	"github.com/iamsashka/Kursach/internal/model"
	"github.com/iamsashka/Kursach/internal/repository"
	"github.com/iamsashka/Kursach/pkg/logger"
	"github.com/iamsashka/Kursach/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Catalog pagination defaults applied when the caller sends nothing usable
const (
	DefaultPage     = 1
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// ProductService covers catalog browsing and back-office product management
type ProductService struct {
	store repository.Store
	audit *AuditService
}

// NewProductService creates a product service
func NewProductService(store repository.Store, audit *AuditService) *ProductService {
	return &ProductService{store: store, audit: audit}
}

// List returns a filtered, paginated, sorted slice of active products
func (s *ProductService) List(ctx context.Context, filter repository.CatalogFilter) ([]model.Product, int64, error) {
	if filter.Page < 1 {
		filter.Page = DefaultPage
	}
	if filter.PageSize < 1 || filter.PageSize > MaxPageSize {
		filter.PageSize = DefaultPageSize
	}
	return s.store.Products().List(ctx, filter)
}

// Get loads one product and counts the view
func (s *ProductService) Get(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// View counting is advisory: a failed bump never fails the read
	if err := s.store.Products().IncrementViews(ctx, id); err != nil {
		logger.FromContext(ctx).Warn("Failed to bump product views",
			zap.Uint("product_id", id), zap.Error(err))
	} else {
		product.Views++
	}
	prometheus.RecordProductView(product.ID, product.Category.Name)

	return product, nil
}

// Create adds a catalog item with its images, colors and tags
func (s *ProductService) Create(ctx context.Context, actor string, product *model.Product) error {
	if err := s.store.Products().Create(ctx, product); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, model.AuditActionCreate, "product", product.ID, nil, product)
	logger.FromContext(ctx).Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name))
	return nil
}

// Update rewrites a catalog item, replacing its child collections
func (s *ProductService) Update(ctx context.Context, actor string, product *model.Product) error {
	old, err := s.store.Products().FindByID(ctx, product.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.store.Products().Update(ctx, product); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, model.AuditActionUpdate, "product", product.ID, old, product)
	return nil
}

// SoftDelete archives a product; it disappears from active listings
func (s *ProductService) SoftDelete(ctx context.Context, actor string, id uint) error {
	old, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.store.Products().SoftDelete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, model.AuditActionDelete, "product", id, old, nil)
	return nil
}

// Restore brings an archived product back
func (s *ProductService) Restore(ctx context.Context, actor string, id uint) error {
	if err := s.store.Products().Restore(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.audit.Record(ctx, actor, model.AuditActionRestore, "product", id, nil, nil)
	return nil
}

// ListArchived returns soft-deleted products for the back office
func (s *ProductService) ListArchived(ctx context.Context, page, pageSize int) ([]model.Product, int64, error) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	return s.store.Products().ListArchived(ctx, page, pageSize)
}
