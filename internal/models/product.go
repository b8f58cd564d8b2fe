package models

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Product is the read-only record served by the external catalog.
// Shape is validated once at the catalog boundary instead of being
// trusted at every use site.
type Product struct {
	ID                 int64           `json:"id" validate:"required,gt=0"`
	Title              string          `json:"title" validate:"required"`
	Description        string          `json:"description"`
	Category           string          `json:"category"`
	Price              decimal.Decimal `json:"price" validate:"gte=0"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage" validate:"gte=0,lte=100"`
	Rating             float64         `json:"rating" validate:"gte=0,lte=5"`
	Stock              int             `json:"stock" validate:"gte=0"`
	Thumbnail          string          `json:"thumbnail"`
	Images             []string        `json:"images"`
}

var productValidator = newProductValidator()

func newProductValidator() *validator.Validate {
	v := validator.New()
	// decimal fields are validated through their float value
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

func (p Product) Validate() error {
	if err := productValidator.Struct(p); err != nil {
		return fmt.Errorf("invalid product %d: %w", p.ID, err)
	}
	return nil
}

var oneHundred = decimal.NewFromInt(100)

// OriginalPrice is the pre-discount price derived from the discounted
// price and the discount percentage. Equal to Price when no discount
// applies.
func (p Product) OriginalPrice() decimal.Decimal {
	if p.DiscountPercentage.IsZero() {
		return p.Price
	}
	factor := decimal.NewFromInt(1).Sub(p.DiscountPercentage.Div(oneHundred))
	if factor.IsZero() {
		return p.Price
	}
	return p.Price.Div(factor).Round(2)
}
