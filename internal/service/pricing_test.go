package service

import (
	"testing"

	"github.com/iamsashka/Kursach/internal/model"
	"github.com/iamsashka/Kursach/pkg/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testCheckoutConfig() config.CheckoutConfig {
	return config.CheckoutConfig{
		DeliveryFee:           decimal.NewFromInt(300),
		FreeShippingThreshold: decimal.NewFromInt(200000),
		DiscountThreshold:     decimal.NewFromInt(200000),
		DiscountAmount:        decimal.NewFromInt(500),
	}
}

func cartLine(price int64, quantity int) model.CartItem {
	return model.CartItem{
		Product:  model.Product{Price: decimal.NewFromInt(price)},
		Quantity: quantity,
	}
}

func TestQuoteCart_SmallCartPaysDelivery(t *testing.T) {
	quote := QuoteCart([]model.CartItem{cartLine(1000, 2), cartLine(500, 1)}, testCheckoutConfig())

	assert.True(t, quote.Subtotal.Equal(decimal.NewFromInt(2500)), "subtotal = %s", quote.Subtotal)
	assert.True(t, quote.Discount.IsZero())
	assert.True(t, quote.DeliveryFee.Equal(decimal.NewFromInt(300)))
	assert.True(t, quote.Total.Equal(decimal.NewFromInt(2800)), "total = %s", quote.Total)
	assert.False(t, quote.FreeShipping)
}

func TestQuoteCart_EmptyCartIsZero(t *testing.T) {
	quote := QuoteCart(nil, testCheckoutConfig())

	assert.True(t, quote.Subtotal.IsZero())
	assert.True(t, quote.Discount.IsZero())
	assert.True(t, quote.DeliveryFee.IsZero())
	assert.True(t, quote.Total.IsZero())
	assert.False(t, quote.FreeShipping)
}

func TestQuoteCart_DiscountAndFreeShippingAtThreshold(t *testing.T) {
	// Exactly on both thresholds: discount applies and shipping stays free
	// because the thresholds are inclusive and the post-discount amount is
	// re-checked against free shipping.
	quote := QuoteCart([]model.CartItem{cartLine(200000, 1)}, testCheckoutConfig())

	assert.True(t, quote.Subtotal.Equal(decimal.NewFromInt(200000)))
	assert.True(t, quote.Discount.Equal(decimal.NewFromInt(500)))
	assert.True(t, quote.DeliveryFee.Equal(decimal.NewFromInt(300)), "199500 after discount is below the free-shipping bar")
	assert.False(t, quote.FreeShipping)
	assert.True(t, quote.Total.Equal(decimal.NewFromInt(199800)), "total = %s", quote.Total)
}

func TestQuoteCart_FreeShippingAfterDiscount(t *testing.T) {
	quote := QuoteCart([]model.CartItem{cartLine(200500, 1)}, testCheckoutConfig())

	assert.True(t, quote.Discount.Equal(decimal.NewFromInt(500)))
	assert.True(t, quote.FreeShipping)
	assert.True(t, quote.DeliveryFee.IsZero())
	assert.True(t, quote.Total.Equal(decimal.NewFromInt(200000)), "total = %s", quote.Total)
}

func TestQuoteCart_JustBelowDiscountThreshold(t *testing.T) {
	quote := QuoteCart([]model.CartItem{cartLine(199999, 1)}, testCheckoutConfig())

	assert.True(t, quote.Discount.IsZero())
	assert.True(t, quote.DeliveryFee.Equal(decimal.NewFromInt(300)))
	assert.True(t, quote.Total.Equal(decimal.NewFromInt(200299)))
}

func TestQuoteCart_SubtotalIndependentOfLineOrder(t *testing.T) {
	cfg := testCheckoutConfig()
	forward := QuoteCart([]model.CartItem{cartLine(100, 3), cartLine(250, 2), cartLine(999, 1)}, cfg)
	reversed := QuoteCart([]model.CartItem{cartLine(999, 1), cartLine(250, 2), cartLine(100, 3)}, cfg)

	assert.True(t, forward.Subtotal.Equal(reversed.Subtotal))
	assert.True(t, forward.Total.Equal(reversed.Total))
}

func TestQuoteCart_DecimalPrices(t *testing.T) {
	price := decimal.RequireFromString("1499.99")
	items := []model.CartItem{{Product: model.Product{Price: price}, Quantity: 3}}

	quote := QuoteCart(items, testCheckoutConfig())

	assert.True(t, quote.Subtotal.Equal(decimal.RequireFromString("4499.97")), "subtotal = %s", quote.Subtotal)
	assert.True(t, quote.Total.Equal(decimal.RequireFromString("4799.97")))
}
