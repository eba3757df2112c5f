package service

import (
	"context"
	"errors"

	"github.com/iamsashka/Kursach/internal/model"
	"github.com/iamsashka/Kursach/internal/repository"
	"gorm.io/gorm"
)

// BrandService manages brands
type BrandService struct {
	store repository.Store
	audit *AuditService
}

// NewBrandService creates a brand service
func NewBrandService(store repository.Store, audit *AuditService) *BrandService {
	return &BrandService{store: store, audit: audit}
}

// List returns active brands ordered by name
func (s *BrandService) List(ctx context.Context) ([]model.Brand, error) {
	return s.store.Brands().List(ctx)
}

// ListArchived returns soft-deleted brands
func (s *BrandService) ListArchived(ctx context.Context) ([]model.Brand, error) {
	return s.store.Brands().ListArchived(ctx)
}

// Get loads one brand
func (s *BrandService) Get(ctx context.Context, id uint) (*model.Brand, error) {
	brand, err := s.store.Brands().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return brand, nil
}

// Create adds a brand; names are unique among active rows
func (s *BrandService) Create(ctx context.Context, actor string, brand *model.Brand) error {
	if _, err := s.store.Brands().FindByName(ctx, brand.Name); err == nil {
		return ErrDuplicateName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := s.store.Brands().Create(ctx, brand); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, model.AuditActionCreate, "brand", brand.ID, nil, brand)
	return nil
}

// Update rewrites a brand
func (s *BrandService) Update(ctx context.Context, actor string, brand *model.Brand) error {
	old, err := s.Get(ctx, brand.ID)
	if err != nil {
		return err
	}

	if brand.Name != old.Name {
		if _, err := s.store.Brands().FindByName(ctx, brand.Name); err == nil {
			return ErrDuplicateName
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	if err := s.store.Brands().Update(ctx, brand); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, model.AuditActionUpdate, "brand", brand.ID, old, brand)
	return nil
}

// SoftDelete archives a brand
func (s *BrandService) SoftDelete(ctx context.Context, actor string, id uint) error {
	old, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Brands().SoftDelete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, model.AuditActionDelete, "brand", id, old, nil)
	return nil
}

// Restore brings an archived brand back
func (s *BrandService) Restore(ctx context.Context, actor string, id uint) error {
	if err := s.store.Brands().Restore(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.audit.Record(ctx, actor, model.AuditActionRestore, "brand", id, nil, nil)
	return nil
}
