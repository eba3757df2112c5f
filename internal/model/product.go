package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product tags drive the storefront shelves (new arrivals, sale, bestsellers).
const (
	TagNew        = "new"
	TagSale       = "sale"
	TagBestseller = "bestseller"
)

// Target audiences for catalog filtering
const (
	AudienceMen      = "men"
	AudienceWomen    = "women"
	AudienceKids     = "kids"
	AudienceUnisex   = "unisex"
)

// Product represents a catalog item
type Product struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	Name        string          `json:"name" gorm:"type:varchar(200);not null"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	// OriginalPrice above Price marks the product as discounted
	OriginalPrice decimal.Decimal `json:"original_price" gorm:"type:decimal(12,2)"`
	StockQuantity int             `json:"stock_quantity" gorm:"not null;default:0;check:stock_quantity >= 0"`
	Sizes         string          `json:"sizes" gorm:"type:varchar(100)"`

	CategoryID uint     `json:"category_id" gorm:"index;not null"`
	Category   Category `json:"category" gorm:"foreignKey:CategoryID"`
	BrandID    uint     `json:"brand_id" gorm:"index;not null"`
	Brand      Brand    `json:"brand" gorm:"foreignKey:BrandID"`

	Images []ProductImage `json:"images" gorm:"foreignKey:ProductID"`
	Colors []ProductColor `json:"colors" gorm:"foreignKey:ProductID"`
	Tags   []ProductTag   `json:"tags" gorm:"foreignKey:ProductID"`

	TargetAudience  string `json:"target_audience" gorm:"type:varchar(20);index"`
	CountryOfOrigin string `json:"country_of_origin" gorm:"type:varchar(100)"`

	Views       int     `json:"views" gorm:"default:0"`
	Rating      float64 `json:"rating" gorm:"default:0"`
	ReviewCount int     `json:"review_count" gorm:"default:0"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// IsOnSale reports whether the discount badge should be shown
func (p *Product) IsOnSale() bool {
	return p.OriginalPrice.IsPositive() && p.OriginalPrice.GreaterThan(p.Price)
}

// DiscountPercent returns the rounded discount percentage, zero when not on sale
func (p *Product) DiscountPercent() decimal.Decimal {
	if !p.IsOnSale() {
		return decimal.Zero
	}
	diff := p.OriginalPrice.Sub(p.Price)
	return diff.Div(p.OriginalPrice).Mul(decimal.NewFromInt(100)).Round(2)
}

// HasTag reports whether the product carries the given shelf tag
func (p *Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t.Tag == tag {
			return true
		}
	}
	return false
}

// ProductImage stores one image URL for a product
type ProductImage struct {
	ID        uint   `json:"id" gorm:"primarykey"`
	ProductID uint   `json:"product_id" gorm:"index;not null"`
	URL       string `json:"url" gorm:"type:varchar(500);not null"`
	Position  int    `json:"position" gorm:"default:0"`
}

// ProductColor stores one color option for a product
type ProductColor struct {
	ID        uint   `json:"id" gorm:"primarykey"`
	ProductID uint   `json:"product_id" gorm:"index;not null"`
	Name      string `json:"name" gorm:"type:varchar(50);not null"`
	HexCode   string `json:"hex_code" gorm:"type:varchar(7)"`
}

// ProductTag attaches a shelf tag to a product
type ProductTag struct {
	ID        uint   `json:"id" gorm:"primarykey"`
	ProductID uint   `json:"product_id" gorm:"index;not null"`
	Tag       string `json:"tag" gorm:"type:varchar(20);not null"`
}

// Category groups products in the catalog tree
type Category struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	Name        string         `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string         `json:"description" gorm:"type:text"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Brand identifies a product manufacturer
type Brand struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	Name        string         `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Country     string         `json:"country" gorm:"type:varchar(100)"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
