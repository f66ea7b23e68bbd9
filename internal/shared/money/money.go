// Package money normalises monetary amounts to the numeric(12,2) columns they
// are stored in.
package money

import (
	"net/http"

	"go-hrdash/internal/shared/apperror"

	"github.com/shopspring/decimal"
)

const Scale = 2

// Max is the first value that no longer fits numeric(12,2).
var Max = decimal.New(1, 10)

// Normalize rounds amount to cents and rejects negative or oversized values.
func Normalize(field string, amount decimal.Decimal) (decimal.Decimal, error) {
	amount = amount.Round(Scale)
	if amount.IsNegative() {
		return decimal.Zero, apperror.New(
			apperror.CodeInvalidInput,
			field+" must not be negative",
			http.StatusBadRequest,
		).WithDetails(map[string]string{"field": field})
	}
	if amount.GreaterThanOrEqual(Max) {
		return decimal.Zero, apperror.New(
			apperror.CodeInvalidInput,
			field+" exceeds the maximum amount of 9999999999.99",
			http.StatusBadRequest,
		).WithDetails(map[string]string{"field": field})
	}
	return amount, nil
}

// NormalizePtr is Normalize for optional amounts; nil stays nil.
func NormalizePtr(field string, amount *decimal.Decimal) (*decimal.Decimal, error) {
	if amount == nil {
		return nil, nil
	}
	v, err := Normalize(field, *amount)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Float renders an amount for JSON responses.
func Float(amount decimal.Decimal) float64 {
	return amount.InexactFloat64()
}

func FloatPtr(amount *decimal.Decimal) *float64 {
	if amount == nil {
		return nil
	}
	v := amount.InexactFloat64()
	return &v
}
