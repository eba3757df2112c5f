package service

import (
	"context"
	"errors"

	"github.com/iamsashka/Kursach/internal/model"
	"github.com/iamsashka/Kursach/internal/repository"
	"gorm.io/gorm"
)

// CategoryService manages the category tree
type CategoryService struct {
	store repository.Store
	audit *AuditService
}

// NewCategoryService creates a category service
func NewCategoryService(store repository.Store, audit *AuditService) *CategoryService {
	return &CategoryService{store: store, audit: audit}
}

// List returns active categories ordered by name
func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.store.Categories().List(ctx)
}

// ListArchived returns soft-deleted categories
func (s *CategoryService) ListArchived(ctx context.Context) ([]model.Category, error) {
	return s.store.Categories().ListArchived(ctx)
}

// Get loads one category
func (s *CategoryService) Get(ctx context.Context, id uint) (*model.Category, error) {
	category, err := s.store.Categories().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

// Create adds a category; names are unique among active rows
func (s *CategoryService) Create(ctx context.Context, actor string, category *model.Category) error {
	if _, err := s.store.Categories().FindByName(ctx, category.Name); err == nil {
		return ErrDuplicateName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := s.store.Categories().Create(ctx, category); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, model.AuditActionCreate, "category", category.ID, nil, category)
	return nil
}

// Update renames or re-describes a category
func (s *CategoryService) Update(ctx context.Context, actor string, category *model.Category) error {
	old, err := s.Get(ctx, category.ID)
	if err != nil {
		return err
	}

	if category.Name != old.Name {
		if _, err := s.store.Categories().FindByName(ctx, category.Name); err == nil {
			return ErrDuplicateName
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	if err := s.store.Categories().Update(ctx, category); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, model.AuditActionUpdate, "category", category.ID, old, category)
	return nil
}

// SoftDelete archives a category
func (s *CategoryService) SoftDelete(ctx context.Context, actor string, id uint) error {
	old, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Categories().SoftDelete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, model.AuditActionDelete, "category", id, old, nil)
	return nil
}

// Restore brings an archived category back
func (s *CategoryService) Restore(ctx context.Context, actor string, id uint) error {
	if err := s.store.Categories().Restore(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.audit.Record(ctx, actor, model.AuditActionRestore, "category", id, nil, nil)
	return nil
}
