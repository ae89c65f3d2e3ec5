// Package pricing computes order totals for cash-on-delivery checkout.
//
// Amounts are whole currency units. Size and color price modifiers are part of
// the catalog but are not applied here: the line total is base price times
// quantity.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// homeDeliveryFactor is the surcharge applied to a region's base shipping price
// when the parcel is delivered to the customer's door.
var homeDeliveryFactor = decimal.RequireFromString("1.3")

// ErrInvalidQuantity is returned for quantities below one.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Quote is the priced breakdown of a single-product order.
type Quote struct {
	UnitPrice    int64 `json:"unit_price"`
	Quantity     int   `json:"quantity"`
	LineTotal    int64 `json:"line_total"`
	ShippingCost int64 `json:"shipping_cost"`
	HomeDelivery bool  `json:"home_delivery"`
	Total        int64 `json:"total"`
}

// ShippingCost returns the region base price, or round(base * 1.3) for home delivery.
func ShippingCost(base int64, homeDelivery bool) int64 {
	if !homeDelivery {
		return base
	}
	return HomePrice(base)
}

// HomePrice is the home-delivery price for a region base price, rounded half
// away from zero to a whole unit.
func HomePrice(base int64) int64 {
	return decimal.NewFromInt(base).Mul(homeDeliveryFactor).Round(0).IntPart()
}

// Compute prices quantity units at unitPrice shipped at the given region base price.
func Compute(unitPrice int64, quantity int, shippingBase int64, homeDelivery bool) (Quote, error) {
	if quantity < 1 {
		return Quote{}, ErrInvalidQuantity
	}
	line := decimal.NewFromInt(unitPrice).Mul(decimal.NewFromInt(int64(quantity))).IntPart()
	shipping := ShippingCost(shippingBase, homeDelivery)
	return Quote{
		UnitPrice:    unitPrice,
		Quantity:     quantity,
		LineTotal:    line,
		ShippingCost: shipping,
		HomeDelivery: homeDelivery,
		Total:        line + shipping,
	}, nil
}
