package service

import (
	"context"
	"testing"
	"time"

	"github.com/iamsashka/Kursach/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func stubAnalyticsRange(a *mockAnalyticsRepo, from, to time.Time, users, orders int64, revenue decimal.Decimal) {
	a.On("CountUsersRegisteredBetween", mock.Anything, from, to).Return(users, nil).Once()
	a.On("CountOrdersBetween", mock.Anything, from, to).Return(orders, nil).Once()
	a.On("SumRevenueBetween", mock.Anything, from, to).Return(revenue, nil).Once()
}

func stubAnalyticsBreakdowns(a *mockAnalyticsRepo, from, to time.Time) {
	a.On("RevenueByCategory", mock.Anything, from, to).Return([]repository.CategoryRevenue(nil), nil).Once()
	a.On("OrdersByDay", mock.Anything, from, to).Return([]repository.DailyOrderCount(nil), nil).Once()
	a.On("TopSellingProducts", mock.Anything, from, to, topProductsLimit).Return([]repository.ProductSales(nil), nil).Once()
}

func TestDashboard_ComputesRatesAndAverages(t *testing.T) {
	store := newMockStore()
	svc := NewAnalyticsService(store)

	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)
	prevFrom := from.AddDate(0, -1, 0)
	prevTo := to.AddDate(0, -1, 0)

	stubAnalyticsRange(store.analytics, from, to, 200, 50, decimal.NewFromInt(125000))
	stubAnalyticsRange(store.analytics, prevFrom, prevTo, 100, 40, decimal.NewFromInt(100000))
	stubAnalyticsBreakdowns(store.analytics, from, to)

	dashboard, err := svc.Dashboard(context.Background(), from, to)

	require.NoError(t, err)
	assert.Equal(t, int64(200), dashboard.TotalUsers)
	assert.Equal(t, int64(50), dashboard.TotalOrders)
	assert.True(t, dashboard.TotalRevenue.Equal(decimal.NewFromInt(125000)))
	assert.True(t, dashboard.AverageOrderValue.Equal(decimal.NewFromInt(2500)), "aov = %s", dashboard.AverageOrderValue)
	assert.InDelta(t, 25.0, dashboard.ConversionRate, 0.001)
	assert.InDelta(t, 100.0, dashboard.UserGrowthRate, 0.001)
	assert.InDelta(t, 25.0, dashboard.OrderGrowthRate, 0.001)
	assert.InDelta(t, 25.0, dashboard.RevenueGrowthRate, 0.001)
}

func TestDashboard_EmptyRangeIsAllZeroes(t *testing.T) {
	store := newMockStore()
	svc := NewAnalyticsService(store)

	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)

	stubAnalyticsRange(store.analytics, from, to, 0, 0, decimal.Zero)
	stubAnalyticsRange(store.analytics, from.AddDate(0, -1, 0), to.AddDate(0, -1, 0), 0, 0, decimal.Zero)
	stubAnalyticsBreakdowns(store.analytics, from, to)

	dashboard, err := svc.Dashboard(context.Background(), from, to)

	require.NoError(t, err)
	assert.Zero(t, dashboard.TotalUsers)
	assert.True(t, dashboard.TotalRevenue.IsZero())
	assert.True(t, dashboard.AverageOrderValue.IsZero())
	assert.Zero(t, dashboard.ConversionRate)
	assert.Zero(t, dashboard.UserGrowthRate)
	assert.NotNil(t, dashboard.RevenueByCategory)
	assert.NotNil(t, dashboard.DailyOrders)
	assert.NotNil(t, dashboard.TopProducts)
	assert.Empty(t, dashboard.RevenueByCategory)
}

func TestDashboard_ConversionRateCappedAt100(t *testing.T) {
	store := newMockStore()
	svc := NewAnalyticsService(store)

	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)

	// More orders than newly registered users in the range
	stubAnalyticsRange(store.analytics, from, to, 10, 30, decimal.NewFromInt(9000))
	stubAnalyticsRange(store.analytics, from.AddDate(0, -1, 0), to.AddDate(0, -1, 0), 0, 0, decimal.Zero)
	stubAnalyticsBreakdowns(store.analytics, from, to)

	dashboard, err := svc.Dashboard(context.Background(), from, to)

	require.NoError(t, err)
	assert.InDelta(t, 100.0, dashboard.ConversionRate, 0.001)
}

func TestGrowthRate(t *testing.T) {
	assert.InDelta(t, 0.0, growthRate(0, 0), 0.001)
	assert.InDelta(t, 100.0, growthRate(5, 0), 0.001)
	assert.InDelta(t, 50.0, growthRate(150, 100), 0.001)
	assert.InDelta(t, -25.0, growthRate(75, 100), 0.001)
}
