// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
// All prices and totals are held to two decimal places at rest.
type Money = decimal.Decimal

// MoneyScale is the number of fractional digits kept for currency values.
const MoneyScale int32 = 2

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// RoundMoney normalizes a value to MoneyScale fractional digits.
func RoundMoney(m Money) Money {
	return m.Round(MoneyScale)
}

// LineSubtotal computes quantity * unitPrice at MoneyScale.
// Sale quantities are whole units, so the product is exact before rounding.
func LineSubtotal(quantity int64, unitPrice Money) Money {
	return RoundMoney(unitPrice.Mul(decimal.NewFromInt(quantity)))
}
