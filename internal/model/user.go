package model

import (
	"time"

	"gorm.io/gorm"
)

// Role values gate route groups through the capability policy.
const (
	RoleCustomer = "customer"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

// User represents a storefront account (customer or back-office staff)
type User struct {
	ID       uint   `json:"id" gorm:"primarykey"`
	Email    string `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Username string `json:"username" gorm:"type:varchar(50);uniqueIndex;not null"`
	Password string `json:"-" gorm:"type:varchar(255);not null"`
	Role     string `json:"role" gorm:"type:varchar(20);not null;default:'customer'"`
	Enabled  bool   `json:"enabled" gorm:"default:true"`

	FirstName  string `json:"first_name" gorm:"type:varchar(50)"`
	LastName   string `json:"last_name" gorm:"type:varchar(50)"`
	Phone      string `json:"phone" gorm:"type:varchar(20)"`
	Address    string `json:"address" gorm:"type:varchar(255)"`
	City       string `json:"city" gorm:"type:varchar(100)"`
	PostalCode string `json:"postal_code" gorm:"type:varchar(20)"`

	// Display preferences carried per account
	Theme        string `json:"theme" gorm:"type:varchar(20);default:'light'"`
	DateFormat   string `json:"date_format" gorm:"type:varchar(20);default:'dd.MM.yyyy'"`
	NumberFormat string `json:"number_format" gorm:"type:varchar(20);default:'COMMA'"`
	PageSize     int    `json:"page_size" gorm:"default:10"`
	SavedFilters string `json:"saved_filters,omitempty" gorm:"type:text"`

	LastActivity *time.Time     `json:"last_activity,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// FullName joins the profile name fields for display and exports
func (u *User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Username
	case u.LastName == "":
		return u.FirstName
	case u.FirstName == "":
		return u.LastName
	default:
		return u.FirstName + " " + u.LastName
	}
}
