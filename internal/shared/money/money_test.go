package money_test

import (
	"testing"

	"go-hrdash/internal/shared/apperror"
	"go-hrdash/internal/shared/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Run("rounds to cents", func(t *testing.T) {
		got, err := money.Normalize("new_salary", decimal.RequireFromString("1234.565"))

		assert.NoError(t, err)
		assert.Equal(t, "1234.57", got.StringFixed(2))
	})

	t.Run("zero is allowed", func(t *testing.T) {
		got, err := money.Normalize("previous_salary", decimal.Zero)

		assert.NoError(t, err)
		assert.True(t, got.IsZero())
	})

	t.Run("negative", func(t *testing.T) {
		_, err := money.Normalize("new_salary", decimal.NewFromInt(-1))

		assert.True(t, apperror.IsCode(err, apperror.CodeInvalidInput))
		assert.Contains(t, err.Error(), "new_salary must not be negative")
	})

	t.Run("too large for numeric(12,2)", func(t *testing.T) {
		_, err := money.Normalize("new_salary", decimal.RequireFromString("10000000000"))
		assert.Error(t, err)

		_, err = money.Normalize("new_salary", decimal.RequireFromString("9999999999.99"))
		assert.NoError(t, err)
	})
}

func TestNormalizePtr(t *testing.T) {
	got, err := money.NormalizePtr("previous_salary", nil)

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestFloat(t *testing.T) {
	assert.Equal(t, 110000.5, money.Float(decimal.RequireFromString("110000.50")))
	assert.Nil(t, money.FloatPtr(nil))
}
