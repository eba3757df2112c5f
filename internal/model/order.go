package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ParseOrderStatus validates a status string from a request
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// CanTransitionTo reports whether the status may move to next.
// Orders advance pending → processing → shipped → delivered; any
// non-terminal status may be cancelled.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return false
	}
	switch s {
	case OrderStatusPending:
		return next == OrderStatusProcessing || next == OrderStatusCancelled
	case OrderStatusProcessing:
		return next == OrderStatusShipped || next == OrderStatusCancelled
	case OrderStatusShipped:
		return next == OrderStatusDelivered || next == OrderStatusCancelled
	default:
		// delivered and cancelled are terminal
		return false
	}
}

// IsTerminal reports whether no further transitions are allowed
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Order is the snapshot of a purchase created at checkout
type Order struct {
	ID          uint        `json:"id" gorm:"primarykey"`
	OrderNumber string      `json:"order_number" gorm:"type:varchar(30);uniqueIndex;not null"`
	UserID      uint        `json:"user_id" gorm:"index;not null"`
	User        User        `json:"user" gorm:"foreignKey:UserID"`
	Status      OrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`

	TotalAmount     decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2);not null"`
	ShippingAddress string          `json:"shipping_address" gorm:"type:varchar(255);not null"`
	ReceiptEmail    string          `json:"receipt_email" gorm:"type:varchar(255)"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID"`

	OrderDate time.Time      `json:"order_date" gorm:"index;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// OrderItem is one order line with the price captured at purchase time,
// independent of later product mutation.
type OrderItem struct {
	ID        uint `json:"id" gorm:"primarykey"`
	OrderID   uint `json:"order_id" gorm:"index;not null"`
	ProductID uint `json:"product_id" gorm:"index;not null"`

	ProductName string          `json:"product_name" gorm:"type:varchar(200);not null"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,2);not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	Size        string          `json:"size" gorm:"type:varchar(20)"`
	Color       string          `json:"color" gorm:"type:varchar(50)"`

	CreatedAt time.Time `json:"created_at"`
}

// LineTotal returns the captured unit price × quantity
func (oi *OrderItem) LineTotal() decimal.Decimal {
	return oi.UnitPrice.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}
