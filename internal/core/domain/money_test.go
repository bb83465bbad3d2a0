package domain_test

import (
	"testing"

	"github.com/freshmart/backend/internal/core/domain"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
)

func mustMoney(t *testing.T, amount, currency string) domain.Money {
	t.Helper()
	m, err := domain.NewMoney(decimal.MustParse(amount), currency)
	assert.NoError(t, err)
	return m
}

func TestMoney_New(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		expError error
	}{
		{name: "Good", amount: "1.50", currency: "USD", expError: nil},
		{name: "Zero amount", amount: "0", currency: "USD", expError: nil},
		{name: "Negative amount", amount: "-1.50", currency: "USD", expError: domain.ErrValidation},
		{name: "Empty currency", amount: "1.50", currency: "", expError: domain.ErrValidation},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m, err := domain.NewMoney(decimal.MustParse(test.amount), test.currency)
			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.currency, m.Currency())
			assert.Equal(t, decimal.MustParse(test.amount), m.Amount())
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	three := mustMoney(t, "3.00", "USD")
	six := mustMoney(t, "6.00", "USD")

	sum, err := three.Add(six)
	assert.NoError(t, err)
	assert.Equal(t, "9.00 USD", sum.String())

	diff, err := six.Sub(three)
	assert.NoError(t, err)
	assert.Equal(t, "3.00 USD", diff.String())

	product, err := mustMoney(t, "1.50", "USD").MulInt(2)
	assert.NoError(t, err)
	assert.Equal(t, "3.00 USD", product.String())
}

func TestMoney_SubNegativeResult(t *testing.T) {
	small := mustMoney(t, "3.00", "USD")
	large := mustMoney(t, "6.00", "USD")

	_, err := small.Sub(large)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	usd := mustMoney(t, "1.00", "USD")
	eur := mustMoney(t, "1.00", "EUR")

	_, err := usd.Add(eur)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = usd.Sub(eur)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMoney_MulIntNegative(t *testing.T) {
	_, err := mustMoney(t, "1.00", "USD").MulInt(-1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestQuantity_New(t *testing.T) {
	tests := []struct {
		name     string
		value    int64
		unit     string
		expError error
	}{
		{name: "Good", value: 2, unit: "kg", expError: nil},
		{name: "Zero stock level", value: 0, unit: "pcs", expError: nil},
		{name: "Negative", value: -1, unit: "kg", expError: domain.ErrValidation},
		{name: "Empty unit", value: 1, unit: "", expError: domain.ErrValidation},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			q, err := domain.NewQuantity(test.value, test.unit)
			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.value, q.Value())
			assert.Equal(t, test.unit, q.Unit())
		})
	}
}
