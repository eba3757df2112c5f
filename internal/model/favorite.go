package model

import "time"

// Favorite is a (user, product) bookmark. Capacity is capped per user at the
// service boundary; the oldest row (by CreatedAt) is the replacement candidate.
type Favorite struct {
	ID        uint    `json:"id" gorm:"primarykey"`
	UserID    uint    `json:"user_id" gorm:"uniqueIndex:idx_user_product;not null"`
	ProductID uint    `json:"product_id" gorm:"uniqueIndex:idx_user_product;not null"`
	Product   Product `json:"product" gorm:"foreignKey:ProductID"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
