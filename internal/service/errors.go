package service

import (
	"errors"
	"fmt"
	"time"
)

// Business-rule errors surfaced to the presentation layer. Handlers map these
// to HTTP statuses; anything not in this family is treated as a system error.
var (
	ErrNotFound                = errors.New("not found")
	ErrEmptyCart               = errors.New("cart is empty")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrShippingAddressRequired = errors.New("shipping address is required")
	ErrInvalidQuantity         = errors.New("quantity must be at least 1")
	ErrEmailTaken              = errors.New("email already registered")
	ErrUsernameTaken           = errors.New("username already taken")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrAccountDisabled         = errors.New("account is disabled")
	ErrAlreadyInFavorites      = errors.New("product already in favorites")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrDuplicateName           = errors.New("name already exists")
	ErrInvalidRole             = errors.New("unknown role")
)

// FavoritesLimitError reports that the favorites cap was hit. It carries the
// oldest favorite so the caller can offer an explicit replace action instead
// of silently evicting.
type FavoritesLimitError struct {
	Limit             int       `json:"limit"`
	OldestFavoriteID  uint      `json:"oldest_favorite_id"`
	OldestProductID   uint      `json:"oldest_product_id"`
	OldestProductName string    `json:"oldest_product_name"`
	OldestAddedAt     time.Time `json:"oldest_added_at"`
}

func (e *FavoritesLimitError) Error() string {
	return fmt.Sprintf("favorites limit of %d reached, oldest is %q", e.Limit, e.OldestProductName)
}

// IsBusinessError reports whether err belongs to the business-rule taxonomy,
// as opposed to an unexpected system failure.
func IsBusinessError(err error) bool {
	var limitErr *FavoritesLimitError
	if errors.As(err, &limitErr) {
		return true
	}
	for _, known := range []error{
		ErrEmptyCart, ErrInsufficientStock, ErrShippingAddressRequired,
		ErrInvalidQuantity, ErrEmailTaken, ErrUsernameTaken,
		ErrInvalidCredentials, ErrAccountDisabled, ErrAlreadyInFavorites,
		ErrInvalidStatusTransition, ErrDuplicateName, ErrInvalidRole,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
