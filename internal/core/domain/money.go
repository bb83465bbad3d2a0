package domain

import (
	"fmt"

	"github.com/govalues/decimal"
)

// Money is a non-negative amount in a single currency. The zero value is not
// valid, construct via NewMoney.
type Money struct {
	amount   decimal.Decimal
	currency string
}

func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if currency == "" {
		return Money{}, fmt.Errorf("%w: money currency is empty", ErrValidation)
	}
	if amount.IsNeg() {
		return Money{}, fmt.Errorf("%w: money amount is negative", ErrValidation)
	}
	return Money{amount: amount, currency: currency}, nil
}

func NewMoneyFromFloat64(amount float64, currency string) (Money, error) {
	d, err := decimal.NewFromFloat64(amount)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	return NewMoney(d, currency)
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) IsPositive() bool {
	return m.amount.IsPos()
}

func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	sum, err := m.amount.Add(other.amount)
	if err != nil {
		return Money{}, fmt.Errorf("money add: %w", err)
	}
	return Money{amount: sum, currency: m.currency}, nil
}

// Sub fails when the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	if m.amount.Cmp(other.amount) < 0 {
		return Money{}, fmt.Errorf("%w: money subtraction result is negative", ErrValidation)
	}
	diff, err := m.amount.Sub(other.amount)
	if err != nil {
		return Money{}, fmt.Errorf("money sub: %w", err)
	}
	return Money{amount: diff, currency: m.currency}, nil
}

func (m Money) MulInt(n int64) (Money, error) {
	if n < 0 {
		return Money{}, fmt.Errorf("%w: money multiplier is negative", ErrValidation)
	}
	factor, err := decimal.New(n, 0)
	if err != nil {
		return Money{}, fmt.Errorf("money mul: %w", err)
	}
	product, err := m.amount.Mul(factor)
	if err != nil {
		return Money{}, fmt.Errorf("money mul: %w", err)
	}
	return Money{amount: product, currency: m.currency}, nil
}

// String formats the amount with its currency, e.g. "9.00 USD".
func (m Money) String() string {
	return m.amount.String() + " " + m.currency
}

func (m Money) sameCurrency(other Money) error {
	if m.currency != other.currency {
		return fmt.Errorf("%w: currency mismatch %s/%s", ErrValidation, m.currency, other.currency)
	}
	return nil
}
