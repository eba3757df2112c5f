package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iamsashka/Kursach/internal/model"
	"github.com/iamsashka/Kursach/internal/repository"
	"github.com/iamsashka/Kursach/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderService covers order history and back-office order management
type OrderService struct {
	store repository.Store
	audit *AuditService
}

// NewOrderService creates an order service
func NewOrderService(store repository.Store, audit *AuditService) *OrderService {
	return &OrderService{store: store, audit: audit}
}

// Get loads one order with its user and items
func (s *OrderService) Get(ctx context.Context, id uint) (*model.Order, error) {
	order, err := s.store.Orders().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// GetForUser loads one order and verifies it belongs to the user
func (s *OrderService) GetForUser(ctx context.Context, id, userID uint) (*model.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrNotFound
	}
	return order, nil
}

// HistoryForUser returns the user's active orders, newest first
func (s *OrderService) HistoryForUser(ctx context.Context, userID uint, page, pageSize int) ([]model.Order, int64, error) {
	return s.store.Orders().ListByUser(ctx, userID, page, pageSize)
}

// List returns back-office order listings with optional status/search filters
func (s *OrderService) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, int64, error) {
	return s.store.Orders().List(ctx, filter)
}

// ListArchived returns soft-deleted orders
func (s *OrderService) ListArchived(ctx context.Context, page, pageSize int) ([]model.Order, int64, error) {
	return s.store.Orders().ListArchived(ctx, page, pageSize)
}

// UpdateStatus moves an order along the status lifecycle. Transitions outside
// pending → processing → shipped → delivered (or → cancelled from any
// non-terminal state) are rejected.
func (s *OrderService) UpdateStatus(ctx context.Context, actor string, id uint, status model.OrderStatus) (*model.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s → %s", ErrInvalidStatusTransition, order.Status, status)
	}

	oldStatus := order.Status
	if err := s.store.Orders().UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	order.Status = status

	s.audit.Record(ctx, actor, model.AuditActionStatusChange, "order", id,
		map[string]string{"status": string(oldStatus)},
		map[string]string{"status": string(status)})

	logger.FromContext(ctx).Info("Order status updated",
		zap.Uint("order_id", id),
		zap.String("old_status", string(oldStatus)),
		zap.String("new_status", string(status)))
	return order, nil
}

// SoftDelete archives an order
func (s *OrderService) SoftDelete(ctx context.Context, actor string, id uint) error {
	order, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Orders().SoftDelete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, model.AuditActionDelete, "order", id, order, nil)
	return nil
}

// Restore brings an archived order back without data loss
func (s *OrderService) Restore(ctx context.Context, actor string, id uint) error {
	if err := s.store.Orders().Restore(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.audit.Record(ctx, actor, model.AuditActionRestore, "order", id, nil, nil)
	return nil
}
