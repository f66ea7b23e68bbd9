package salaryadjustment

import (
	salaryadjustmenterrors "go-hrdash/internal/salaryadjustment/errors"

	"github.com/shopspring/decimal"
)

const percentageScale = 2

var (
	hundred = decimal.NewFromInt(100)
	// maxPercentage is the first magnitude that no longer fits numeric(5,2).
	maxPercentage = decimal.NewFromInt(1000)
)

// DerivePercentage returns the relative change from previous to next in
// percent, rounded half away from zero to two places. It is nil when previous
// is not positive.
func DerivePercentage(previous, next decimal.Decimal) *decimal.Decimal {
	if !previous.IsPositive() {
		return nil
	}
	pct := next.Sub(previous).Mul(hundred).DivRound(previous, percentageScale)
	return &pct
}

// resolvePercentage keeps an explicit percentage and derives one otherwise.
func resolvePercentage(explicit *decimal.Decimal, previous, next decimal.Decimal) (*decimal.Decimal, error) {
	pct := DerivePercentage(previous, next)
	if explicit != nil {
		v := explicit.Round(percentageScale)
		pct = &v
	}
	if pct != nil && pct.Abs().GreaterThanOrEqual(maxPercentage) {
		return nil, salaryadjustmenterrors.ErrPercentageOutOfRange
	}
	return pct, nil
}
