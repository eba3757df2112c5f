package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iamsashka/Kursach/internal/model"
	"github.com/iamsashka/Kursach/internal/repository"
	"github.com/iamsashka/Kursach/pkg/config"
	"github.com/iamsashka/Kursach/pkg/logger"
	"github.com/iamsashka/Kursach/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const orderNumberAttempts = 5

// CheckoutService converts a cart into an order. The whole sequence — order
// row, order items, stock decrements, cart cleanup — runs in one transaction;
// any failure rolls everything back.
type CheckoutService struct {
	store    repository.Store
	checkout config.CheckoutConfig
	audit    *AuditService
}

// NewCheckoutService creates a checkout service
func NewCheckoutService(store repository.Store, checkout config.CheckoutConfig, audit *AuditService) *CheckoutService {
	return &CheckoutService{store: store, checkout: checkout, audit: audit}
}

// PlaceOrder checks out the user's cart to the given shipping address.
// The receipt email falls back to the profile email when blank.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID uint, shippingAddress, receiptEmail string) (*model.Order, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(shippingAddress) == "" {
		return nil, ErrShippingAddressRequired
	}

	var order *model.Order
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		user, err := tx.Users().FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		items, err := tx.Cart().ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		quote := QuoteCart(items, s.checkout)

		number, err := s.generateOrderNumber(ctx, tx)
		if err != nil {
			return err
		}

		email := receiptEmail
		if strings.TrimSpace(email) == "" {
			email = user.Email
		}

		order = &model.Order{
			OrderNumber:     number,
			UserID:          userID,
			Status:          model.OrderStatusPending,
			TotalAmount:     quote.Total,
			ShippingAddress: strings.TrimSpace(shippingAddress),
			ReceiptEmail:    email,
			OrderDate:       time.Now(),
		}

		for i := range items {
			item := &items[i]
			// Conditional update: fails without mutating the row when the
			// product has fewer units than the cart line asks for.
			if err := tx.Products().DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					return fmt.Errorf("%w: %q", ErrInsufficientStock, item.Product.Name)
				}
				return err
			}
			order.Items = append(order.Items, model.OrderItem{
				ProductID:   item.ProductID,
				ProductName: item.Product.Name,
				UnitPrice:   item.Product.Price,
				Quantity:    item.Quantity,
				Size:        item.Size,
				Color:       item.Color,
			})
		}

		if err := tx.Orders().Create(ctx, order); err != nil {
			return err
		}

		if err := tx.Cart().ClearUser(ctx, userID); err != nil {
			return err
		}

		s.audit.RecordTx(ctx, tx, user.Email, model.AuditActionCreate, "order", order.ID, nil, order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	prometheus.RecordOrderPlaced(order.TotalAmount.InexactFloat64())
	log.Info("Order placed",
		zap.Uint("user_id", userID),
		zap.String("order_number", order.OrderNumber),
		zap.String("total", order.TotalAmount.String()),
		zap.Int("lines", len(order.Items)))
	return order, nil
}

// generateOrderNumber builds an ORD-<unix ms> number and probes for
// collisions, retrying with a bumped timestamp a bounded number of times.
func (s *CheckoutService) generateOrderNumber(ctx context.Context, tx repository.Store) (string, error) {
	base := time.Now().UnixMilli()
	for attempt := int64(0); attempt < orderNumberAttempts; attempt++ {
		number := fmt.Sprintf("ORD-%d", base+attempt)
		exists, err := tx.Orders().ExistsNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", fmt.Errorf("could not allocate a unique order number after %d attempts", orderNumberAttempts)
}
