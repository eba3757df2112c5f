package service

import (
	"context"
	"time"

	"github.com/iamsashka/Kursach/internal/repository"
	"github.com/iamsashka/Kursach/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const topProductsLimit = 10

// Dashboard is the aggregate view for a date range. Every field is
// zero-valued when the range is empty — aggregates never come back null.
type Dashboard struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	TotalUsers        int64           `json:"total_users"`
	TotalOrders       int64           `json:"total_orders"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	// ConversionRate divides orders by users registered in the range
	// (legacy definition preserved verbatim), capped at 100.
	ConversionRate float64 `json:"conversion_rate"`

	UserGrowthRate    float64 `json:"user_growth_rate"`
	OrderGrowthRate   float64 `json:"order_growth_rate"`
	RevenueGrowthRate float64 `json:"revenue_growth_rate"`

	RevenueByCategory []repository.CategoryRevenue `json:"revenue_by_category"`
	DailyOrders       []repository.DailyOrderCount `json:"daily_orders"`
	TopProducts       []repository.ProductSales    `json:"top_products"`
}

// AnalyticsService computes the back-office dashboard from read-committed
// snapshots of the store. Reporting only — no consistency guarantee beyond
// what one query sees.
type AnalyticsService struct {
	store repository.Store
}

// NewAnalyticsService creates an analytics service
func NewAnalyticsService(store repository.Store) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// Dashboard aggregates the range [from, to], comparing growth against the
// same range shifted back one month.
func (s *AnalyticsService) Dashboard(ctx context.Context, from, to time.Time) (*Dashboard, error) {
	analytics := s.store.Analytics()
	dashboard := &Dashboard{
		From:              from,
		To:                to,
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
		RevenueByCategory: []repository.CategoryRevenue{},
		DailyOrders:       []repository.DailyOrderCount{},
		TopProducts:       []repository.ProductSales{},
	}

	prevFrom := from.AddDate(0, -1, 0)
	prevTo := to.AddDate(0, -1, 0)

	users, err := analytics.CountUsersRegisteredBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	prevUsers, err := analytics.CountUsersRegisteredBetween(ctx, prevFrom, prevTo)
	if err != nil {
		return nil, err
	}
	dashboard.TotalUsers = users
	dashboard.UserGrowthRate = growthRate(float64(users), float64(prevUsers))

	orders, err := analytics.CountOrdersBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	prevOrders, err := analytics.CountOrdersBetween(ctx, prevFrom, prevTo)
	if err != nil {
		return nil, err
	}
	dashboard.TotalOrders = orders
	dashboard.OrderGrowthRate = growthRate(float64(orders), float64(prevOrders))

	revenue, err := analytics.SumRevenueBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	prevRevenue, err := analytics.SumRevenueBetween(ctx, prevFrom, prevTo)
	if err != nil {
		return nil, err
	}
	dashboard.TotalRevenue = revenue
	dashboard.RevenueGrowthRate = growthRate(revenue.InexactFloat64(), prevRevenue.InexactFloat64())

	if orders > 0 {
		dashboard.AverageOrderValue = revenue.Div(decimal.NewFromInt(orders)).Round(2)
	}

	if users > 0 {
		conversion := float64(orders) / float64(users) * 100
		if conversion > 100 {
			conversion = 100
		}
		dashboard.ConversionRate = conversion
	}

	if dashboard.RevenueByCategory, err = analytics.RevenueByCategory(ctx, from, to); err != nil {
		return nil, err
	}
	if dashboard.DailyOrders, err = analytics.OrdersByDay(ctx, from, to); err != nil {
		return nil, err
	}
	if dashboard.TopProducts, err = analytics.TopSellingProducts(ctx, from, to, topProductsLimit); err != nil {
		return nil, err
	}
	if dashboard.RevenueByCategory == nil {
		dashboard.RevenueByCategory = []repository.CategoryRevenue{}
	}
	if dashboard.DailyOrders == nil {
		dashboard.DailyOrders = []repository.DailyOrderCount{}
	}
	if dashboard.TopProducts == nil {
		dashboard.TopProducts = []repository.ProductSales{}
	}

	logger.FromContext(ctx).Info("Analytics calculated",
		zap.Int64("users", dashboard.TotalUsers),
		zap.Int64("orders", dashboard.TotalOrders),
		zap.String("revenue", dashboard.TotalRevenue.String()))
	return dashboard, nil
}

// growthRate compares the current value to the previous period; a growth from
// zero counts as 100%.
func growthRate(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}
