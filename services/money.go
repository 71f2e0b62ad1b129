// services/money.go
package services

import (
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"
)

var (
	minUnitPrice = decimal.NewFromInt(10)
	maxUnitPrice = decimal.NewFromInt(1000)
)

// LinePrice holds the derived amounts of one order line.
type LinePrice struct {
	MaxDiscount decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
}

// PriceLine derives discount and total of an order line. u is a uniform
// sample in [0,1) that picks the discount inside its ceiling. Every amount is
// rounded half away from zero to cents, in this order: ceiling, discount,
// total.
func PriceLine(qty int, unitPrice, maxFraction decimal.Decimal, u float64) (LinePrice, error) {
	switch {
	case qty < 1:
		return LinePrice{}, fmt.Errorf("%w: quantity %d", ErrInvalidLine, qty)
	case unitPrice.IsNegative():
		return LinePrice{}, fmt.Errorf("%w: unit price %s", ErrInvalidLine, unitPrice)
	case maxFraction.IsNegative() || maxFraction.GreaterThan(decimal.NewFromInt(1)):
		return LinePrice{}, fmt.Errorf("%w: discount fraction %s", ErrInvalidLine, maxFraction)
	case u < 0 || u >= 1:
		return LinePrice{}, fmt.Errorf("%w: sample %v outside [0,1)", ErrInvalidLine, u)
	}

	gross := unitPrice.Mul(decimal.NewFromInt(int64(qty)))
	maxDiscount := gross.Mul(maxFraction).Round(2)
	discount := decimal.NewFromFloat(u).Mul(maxDiscount).Round(2)
	return LinePrice{
		MaxDiscount: maxDiscount,
		Discount:    discount,
		Total:       gross.Sub(discount).Round(2),
	}, nil
}

// RandomUnitPrice is uniform in [10.00, 1000.00], rounded to cents.
func RandomUnitPrice(rng *rand.Rand) decimal.Decimal {
	span := maxUnitPrice.Sub(minUnitPrice)
	return minUnitPrice.Add(span.Mul(decimal.NewFromFloat(rng.Float64()))).Round(2)
}
