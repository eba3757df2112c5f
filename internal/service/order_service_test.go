package service

import (
	"context"
	"testing"

	"github.com/iamsashka/Kursach/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderFixture() (*OrderService, *mockStore) {
	store := newMockStore()
	store.allowAuditWrites()
	return NewOrderService(store, NewAuditService(store)), store
}

func TestOrderGetForUser_ForeignOrderIsNotFound(t *testing.T) {
	svc, store := newOrderFixture()

	store.orders.On("FindByID", mock.Anything, uint(3)).
		Return(&model.Order{ID: 3, UserID: 1}, nil).Twice()

	order, err := svc.GetForUser(context.Background(), 3, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(3), order.ID)

	_, err = svc.GetForUser(context.Background(), 3, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderUpdateStatus_ValidTransition(t *testing.T) {
	svc, store := newOrderFixture()

	store.orders.On("FindByID", mock.Anything, uint(3)).
		Return(&model.Order{ID: 3, Status: model.OrderStatusPending}, nil).Once()
	store.orders.On("UpdateStatus", mock.Anything, uint(3), model.OrderStatusProcessing).
		Return(nil).Once()

	order, err := svc.UpdateStatus(context.Background(), "manager@example.com", 3, model.OrderStatusProcessing)

	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusProcessing, order.Status)
	store.orders.AssertExpectations(t)
}

func TestOrderUpdateStatus_InvalidTransitionRejected(t *testing.T) {
	svc, store := newOrderFixture()

	store.orders.On("FindByID", mock.Anything, uint(3)).
		Return(&model.Order{ID: 3, Status: model.OrderStatusDelivered}, nil).Once()

	_, err := svc.UpdateStatus(context.Background(), "manager@example.com", 3, model.OrderStatusCancelled)

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	store.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUpdateStatus_SkippingStatesRejected(t *testing.T) {
	svc, store := newOrderFixture()

	store.orders.On("FindByID", mock.Anything, uint(3)).
		Return(&model.Order{ID: 3, Status: model.OrderStatusPending}, nil).Once()

	_, err := svc.UpdateStatus(context.Background(), "manager@example.com", 3, model.OrderStatusDelivered)

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestOrderSoftDeleteAndRestore(t *testing.T) {
	svc, store := newOrderFixture()

	store.orders.On("FindByID", mock.Anything, uint(3)).
		Return(&model.Order{ID: 3, Status: model.OrderStatusCancelled}, nil).Once()
	store.orders.On("SoftDelete", mock.Anything, uint(3)).Return(nil).Once()
	store.orders.On("Restore", mock.Anything, uint(3)).Return(nil).Once()

	require.NoError(t, svc.SoftDelete(context.Background(), "admin@example.com", 3))
	require.NoError(t, svc.Restore(context.Background(), "admin@example.com", 3))
	store.orders.AssertExpectations(t)
}

func TestOrderRestore_MissingIsNotFound(t *testing.T) {
	svc, store := newOrderFixture()

	store.orders.On("Restore", mock.Anything, uint(9)).Return(gorm.ErrRecordNotFound).Once()

	err := svc.Restore(context.Background(), "admin@example.com", 9)

	assert.ErrorIs(t, err, ErrNotFound)
}
