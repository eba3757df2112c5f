package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iamsashka/Kursach/internal/model"
	"github.com/iamsashka/Kursach/internal/repository"
	"github.com/iamsashka/Kursach/pkg/config"
	"github.com/iamsashka/Kursach/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CartService assembles and mutates user carts
type CartService struct {
	store    repository.Store
	checkout config.CheckoutConfig
}

// NewCartService creates a cart service
func NewCartService(store repository.Store, checkout config.CheckoutConfig) *CartService {
	return &CartService{store: store, checkout: checkout}
}

// Items returns the user's cart lines with products preloaded
func (s *CartService) Items(ctx context.Context, userID uint) ([]model.CartItem, error) {
	return s.store.Cart().ListByUser(ctx, userID)
}

// Count returns the number of cart lines for the badge
func (s *CartService) Count(ctx context.Context, userID uint) (int64, error) {
	return s.store.Cart().CountByUser(ctx, userID)
}

// Quote prices the user's current cart
func (s *CartService) Quote(ctx context.Context, userID uint) (Quote, error) {
	items, err := s.store.Cart().ListByUser(ctx, userID)
	if err != nil {
		return Quote{}, err
	}
	return QuoteCart(items, s.checkout), nil
}

// Add puts quantity units of a (product, size, color) variant into the cart.
// Re-adding an existing variant increments its row; the stock check always
// runs against the resulting total quantity.
func (s *CartService) Add(ctx context.Context, userID, productID uint, size, color string, quantity int) (*model.CartItem, error) {
	log := logger.FromContext(ctx)

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.store.Products().FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	existing, err := s.store.Cart().FindVariant(ctx, userID, productID, size, color)
	switch {
	case err == nil:
		newQuantity := existing.Quantity + quantity
		if product.StockQuantity < newQuantity {
			return nil, fmt.Errorf("%w: %q has %d units left", ErrInsufficientStock, product.Name, product.StockQuantity)
		}
		if err := s.store.Cart().UpdateQuantity(ctx, existing.ID, newQuantity); err != nil {
			return nil, err
		}
		existing.Quantity = newQuantity
		existing.Product = *product
		log.Info("Cart line incremented",
			zap.Uint("user_id", userID),
			zap.Uint("product_id", productID),
			zap.Int("quantity", newQuantity))
		return existing, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		if product.StockQuantity < quantity {
			return nil, fmt.Errorf("%w: %q has %d units left", ErrInsufficientStock, product.Name, product.StockQuantity)
		}
		item := &model.CartItem{
			UserID:    userID,
			ProductID: productID,
			Size:      size,
			Color:     color,
			Quantity:  quantity,
		}
		if err := s.store.Cart().Create(ctx, item); err != nil {
			return nil, err
		}
		item.Product = *product
		log.Info("Cart line added",
			zap.Uint("user_id", userID),
			zap.Uint("product_id", productID),
			zap.Int("quantity", quantity))
		return item, nil

	default:
		return nil, err
	}
}

// UpdateQuantity sets the quantity of one of the user's cart lines
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	item, err := s.store.Cart().FindByIDForUser(ctx, itemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if item.Product.StockQuantity < quantity {
		return fmt.Errorf("%w: %q has %d units left", ErrInsufficientStock, item.Product.Name, item.Product.StockQuantity)
	}

	return s.store.Cart().UpdateQuantity(ctx, itemID, quantity)
}

// Remove deletes one of the user's cart lines
func (s *CartService) Remove(ctx context.Context, userID, itemID uint) error {
	if _, err := s.store.Cart().FindByIDForUser(ctx, itemID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.store.Cart().Delete(ctx, itemID)
}

// Clear empties the user's cart
func (s *CartService) Clear(ctx context.Context, userID uint) error {
	return s.store.Cart().ClearUser(ctx, userID)
}
