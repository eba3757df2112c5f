package repository

import (
	"context"
	"time"

	"github.com/iamsashka/Kursach/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryRevenue is one row of the revenue-by-category breakdown
type CategoryRevenue struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// DailyOrderCount is one row of the orders-per-day breakdown
type DailyOrderCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// ProductSales is one row of the top-selling-products breakdown
type ProductSales struct {
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
}

// AnalyticsRepository runs the dashboard aggregation queries. All methods are
// read-only; missing aggregates come back as zero, never null.
type AnalyticsRepository interface {
	CountUsersRegisteredBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountOrdersBetween(ctx context.Context, from, to time.Time) (int64, error)
	SumRevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	RevenueByCategory(ctx context.Context, from, to time.Time) ([]CategoryRevenue, error)
	OrdersByDay(ctx context.Context, from, to time.Time) ([]DailyOrderCount, error)
	TopSellingProducts(ctx context.Context, from, to time.Time, limit int) ([]ProductSales, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

func (r *analyticsRepository) CountUsersRegisteredBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("created_at BETWEEN ? AND ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountOrdersBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_date BETWEEN ? AND ? AND status <> ?", from, to, model.OrderStatusCancelled).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) SumRevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var revenue decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_date BETWEEN ? AND ? AND status <> ?", from, to, model.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !revenue.Valid {
		return decimal.Zero, nil
	}
	return revenue.Decimal, nil
}

func (r *analyticsRepository) RevenueByCategory(ctx context.Context, from, to time.Time) ([]CategoryRevenue, error) {
	var rows []CategoryRevenue
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select("categories.name AS category, COALESCE(SUM(order_items.unit_price * order_items.quantity), 0) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("orders.order_date BETWEEN ? AND ? AND orders.status <> ? AND orders.deleted_at IS NULL",
			from, to, model.OrderStatusCancelled).
		Group("categories.name").
		Order("revenue DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *analyticsRepository) OrdersByDay(ctx context.Context, from, to time.Time) ([]DailyOrderCount, error) {
	var rows []DailyOrderCount
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("TO_CHAR(order_date, 'YYYY-MM-DD') AS day, COUNT(*) AS count").
		Where("order_date BETWEEN ? AND ? AND status <> ? AND deleted_at IS NULL",
			from, to, model.OrderStatusCancelled).
		Group("day").
		Order("day ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *analyticsRepository) TopSellingProducts(ctx context.Context, from, to time.Time, limit int) ([]ProductSales, error) {
	var rows []ProductSales
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.product_name AS product_name, COALESCE(SUM(order_items.quantity), 0) AS quantity").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.order_date BETWEEN ? AND ? AND orders.status <> ? AND orders.deleted_at IS NULL",
			from, to, model.OrderStatusCancelled).
		Group("order_items.product_name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
