package service

import (
	"github.com/iamsashka/Kursach/internal/model"
	"github.com/iamsashka/Kursach/pkg/config"
	"github.com/shopspring/decimal"
)

// Quote is the priced view of a cart: subtotal over all lines, the flat bulk
// discount, the delivery fee and the resulting total.
type Quote struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	DeliveryFee  decimal.Decimal `json:"delivery_fee"`
	Total        decimal.Decimal `json:"total"`
	FreeShipping bool            `json:"free_shipping"`
}

// QuoteCart prices a set of cart lines. The subtotal is the sum of
// unit price × quantity over all lines and does not depend on line order.
// A flat discount applies once the subtotal clears the discount threshold;
// delivery is free above the free-shipping threshold (after discount) and for
// empty carts.
func QuoteCart(items []model.CartItem, cfg config.CheckoutConfig) Quote {
	quote := Quote{
		Subtotal:    decimal.Zero,
		Discount:    decimal.Zero,
		DeliveryFee: decimal.Zero,
		Total:       decimal.Zero,
	}

	for i := range items {
		quote.Subtotal = quote.Subtotal.Add(items[i].LineTotal())
	}

	running := quote.Subtotal
	if running.GreaterThanOrEqual(cfg.DiscountThreshold) {
		quote.Discount = cfg.DiscountAmount
		running = running.Sub(quote.Discount)
	}

	if len(items) > 0 {
		if running.GreaterThanOrEqual(cfg.FreeShippingThreshold) {
			quote.FreeShipping = true
		} else {
			quote.DeliveryFee = cfg.DeliveryFee
		}
	}

	quote.Total = running.Add(quote.DeliveryFee)
	return quote
}
