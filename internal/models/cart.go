package models

import "github.com/shopspring/decimal"

// CartLine is one product snapshot plus a quantity. The cart holds at
// most one line per product id.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Savings is the discount amount this line contributes, based on the
// product's pre-discount price.
func (l CartLine) Savings() decimal.Decimal {
	qty := decimal.NewFromInt(int64(l.Quantity))
	return l.Product.OriginalPrice().Sub(l.Product.Price).Mul(qty)
}

// CartSummary holds the totals derived from the current cart lines.
// Discount is informational only: per-line prices are already
// discounted, so it is not subtracted from the total again.
type CartSummary struct {
	ItemCount   int             `json:"item_count"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	Total       decimal.Decimal `json:"total"`
}
