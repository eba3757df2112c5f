package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one (product, size, color) selection with a quantity, scoped to a user.
// Re-adding the same variant increments Quantity instead of inserting a second row.
type CartItem struct {
	ID        uint    `json:"id" gorm:"primarykey"`
	UserID    uint    `json:"user_id" gorm:"uniqueIndex:idx_cart_variant;not null"`
	ProductID uint    `json:"product_id" gorm:"uniqueIndex:idx_cart_variant;not null"`
	Product   Product `json:"product" gorm:"foreignKey:ProductID"`
	Size      string  `json:"size" gorm:"type:varchar(20);uniqueIndex:idx_cart_variant"`
	Color     string  `json:"color" gorm:"type:varchar(50);uniqueIndex:idx_cart_variant"`
	Quantity  int     `json:"quantity" gorm:"not null;default:1;check:quantity > 0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LineTotal returns price × quantity for this cart line
func (ci *CartItem) LineTotal() decimal.Decimal {
	return ci.Product.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}
