package valueobjects

import (
	"fmt"
	"strings"

	"github.com/GarageLog/garage-log-backend/errors"
	"github.com/shopspring/decimal"
)

// Money represents a non-negative monetary amount with cent precision. OCR
// output carries costs in inconsistent shapes ("$42.50", "42.5", 42.5); this
// value object is the one place they get normalized.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money instance with validation.
func NewMoney(amount decimal.Decimal) (*Money, error) {
	if amount.LessThan(decimal.Zero) {
		return nil, errors.ValidationFailed(
			"invalid amount",
			"amount cannot be negative",
		)
	}
	return &Money{amount: amount.Round(2)}, nil
}

// NewMoneyFromString parses a string amount, tolerating a leading currency
// symbol and thousands separators.
func NewMoneyFromString(amount string) (*Money, error) {
	cleaned := strings.TrimSpace(amount)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	decimalAmount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil, errors.ValidationFailed(
			"invalid amount format",
			err.Error(),
		)
	}
	return NewMoney(decimalAmount)
}

// NewMoneyFromFloat creates a Money instance from a float amount.
func NewMoneyFromFloat(amount float64) (*Money, error) {
	return NewMoney(decimal.NewFromFloat(amount))
}

// Float64 returns the amount as a float with cent precision.
func (m *Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String formats the amount as a plain decimal with two places.
func (m *Money) String() string {
	return m.amount.StringFixed(2)
}

// Display formats the amount with a dollar sign, e.g. "$42.50".
func (m *Money) Display() string {
	return fmt.Sprintf("$%s", m.amount.StringFixed(2))
}

// Add returns the sum of two amounts.
func (m *Money) Add(other *Money) *Money {
	return &Money{amount: m.amount.Add(other.amount)}
}
