package service

import (
	"context"
	"strings"
	"testing"

	"github.com/iamsashka/Kursach/internal/model"
	"github.com/iamsashka/Kursach/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsCSV(t *testing.T) {
	svc := NewExportService(newMockStore())

	csv := svc.AnalyticsCSV(&Dashboard{
		TotalUsers:        200,
		TotalOrders:       50,
		TotalRevenue:      decimal.NewFromInt(125000),
		AverageOrderValue: decimal.NewFromInt(2500),
		ConversionRate:    25,
		UserGrowthRate:    100,
		OrderGrowthRate:   25,
		RevenueGrowthRate: 25,
		RevenueByCategory: []repository.CategoryRevenue{
			{Category: "Outerwear", Revenue: decimal.NewFromInt(80000)},
			{Category: "Hats, scarves", Revenue: decimal.NewFromInt(45000)},
		},
	})

	lines := strings.Split(strings.TrimSpace(csv), "\n")
	assert.Equal(t, "Metric,Value,Growth(%)", lines[0])
	assert.Contains(t, csv, "Users,200,100.0")
	assert.Contains(t, csv, "Orders,50,25.0")
	assert.Contains(t, csv, "Revenue,125000.00,25.0")
	assert.Contains(t, csv, "Average Order Value,2500.00,-")
	assert.Contains(t, csv, "Conversion,25.0%,-")
	assert.Contains(t, csv, "Outerwear,80000.00")
	// Commas in category names are quoted
	assert.Contains(t, csv, `"Hats, scarves",45000.00`)
}

func TestCSVEscape(t *testing.T) {
	assert.Equal(t, "plain", csvEscape("plain"))
	assert.Equal(t, `"a,b"`, csvEscape("a,b"))
	assert.Equal(t, `"say ""hi"""`, csvEscape(`say "hi"`))
}

func TestProductsWorkbook(t *testing.T) {
	store := newMockStore()
	svc := NewExportService(store)

	products := []model.Product{
		{
			ID: 1, Name: "Wool Coat",
			Price:         decimal.NewFromInt(14999),
			StockQuantity: 12,
			Category:      model.Category{Name: "Outerwear"},
			Brand:         model.Brand{Name: "Northline"},
		},
	}
	store.products.On("List", mock.Anything, mock.AnythingOfType("repository.CatalogFilter")).
		Return(products, int64(1), nil).Once()

	f, err := svc.ProductsWorkbook(context.Background())
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Products", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Name", header)

	name, err := f.GetCellValue("Products", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Wool Coat", name)
}

func TestOrdersPDF_ProducesDocument(t *testing.T) {
	store := newMockStore()
	svc := NewExportService(store)

	orders := []model.Order{
		{
			ID: 1, OrderNumber: "ORD-1700000000000",
			User:        model.User{Email: "shopper@example.com"},
			Status:      model.OrderStatusDelivered,
			TotalAmount: decimal.NewFromInt(2800),
		},
	}
	store.orders.On("List", mock.Anything, mock.AnythingOfType("repository.OrderFilter")).
		Return(orders, int64(1), nil).Once()

	data, err := svc.OrdersPDF(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"), "output is not a PDF document")
}
