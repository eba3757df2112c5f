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

// ProfileInput carries the editable profile fields
type ProfileInput struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// SettingsInput carries the per-account display preferences
type SettingsInput struct {
	Theme        string `json:"theme"`
	DateFormat   string `json:"date_format"`
	NumberFormat string `json:"number_format"`
	PageSize     int    `json:"page_size"`
}

// UserService covers profile/settings updates and admin user management
type UserService struct {
	store repository.Store
	audit *AuditService
}

// NewUserService creates a user service
func NewUserService(store repository.Store, audit *AuditService) *UserService {
	return &UserService{store: store, audit: audit}
}

// Get loads one active user
func (s *UserService) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.store.Users().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile rewrites the user's profile fields
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input ProfileInput) (*model.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	old := *user
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Phone = input.Phone
	user.Address = input.Address
	user.City = input.City
	user.PostalCode = input.PostalCode

	if err := s.store.Users().Update(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, user.Email, model.AuditActionUpdate, "user", user.ID,
		ProfileInput{FirstName: old.FirstName, LastName: old.LastName, Phone: old.Phone,
			Address: old.Address, City: old.City, PostalCode: old.PostalCode},
		input)
	return user, nil
}

// UpdateSettings rewrites the user's display preferences
func (s *UserService) UpdateSettings(ctx context.Context, userID uint, input SettingsInput) (*model.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Theme = input.Theme
	user.DateFormat = input.DateFormat
	user.NumberFormat = input.NumberFormat
	if input.PageSize > 0 {
		user.PageSize = input.PageSize
	}

	if err := s.store.Users().Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SaveFilters stores the user's saved catalog filters as an opaque blob
func (s *UserService) SaveFilters(ctx context.Context, userID uint, filters string) error {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	user.SavedFilters = filters
	return s.store.Users().Update(ctx, user)
}

// List returns active users for the back office
func (s *UserService) List(ctx context.Context, search string, page, pageSize int) ([]model.User, int64, error) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	return s.store.Users().List(ctx, search, page, pageSize)
}

// ListArchived returns soft-deleted users
func (s *UserService) ListArchived(ctx context.Context, page, pageSize int) ([]model.User, int64, error) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	return s.store.Users().ListArchived(ctx, page, pageSize)
}

// ChangeRole assigns a new role to the account
func (s *UserService) ChangeRole(ctx context.Context, actor string, userID uint, role string) (*model.User, error) {
	if role != model.RoleCustomer && role != model.RoleManager && role != model.RoleAdmin {
		return nil, ErrInvalidRole
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	oldRole := user.Role
	user.Role = role
	if err := s.store.Users().Update(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, model.AuditActionUpdate, "user", userID,
		map[string]string{"role": oldRole},
		map[string]string{"role": role})
	logger.FromContext(ctx).Info("User role changed",
		zap.Uint("user_id", userID),
		zap.String("old_role", oldRole),
		zap.String("new_role", role))
	return user, nil
}

// SetEnabled toggles whether the account may log in
func (s *UserService) SetEnabled(ctx context.Context, actor string, userID uint, enabled bool) (*model.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	old := user.Enabled
	user.Enabled = enabled
	if err := s.store.Users().Update(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, model.AuditActionUpdate, "user", userID,
		map[string]bool{"enabled": old},
		map[string]bool{"enabled": enabled})
	return user, nil
}

// SoftDelete archives a user account
func (s *UserService) SoftDelete(ctx context.Context, actor string, userID uint) error {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.store.Users().SoftDelete(ctx, userID); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, model.AuditActionDelete, "user", userID,
		map[string]string{"email": user.Email}, nil)
	return nil
}

// Restore brings an archived account back
func (s *UserService) Restore(ctx context.Context, actor string, userID uint) error {
	if err := s.store.Users().Restore(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.audit.Record(ctx, actor, model.AuditActionRestore, "user", userID, nil, nil)
	return nil
}

// HardDelete removes the row permanently. Admin-only, used for cleanup of
// archived accounts.
func (s *UserService) HardDelete(ctx context.Context, actor string, userID uint) error {
	if err := s.store.Users().HardDelete(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.audit.Record(ctx, actor, model.AuditActionDelete, "user", userID,
		map[string]string{"hard_delete": "true"}, nil)
	return nil
}
