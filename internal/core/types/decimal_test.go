package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineSubtotal(t *testing.T) {
	tests := []struct {
		name     string
		quantity int64
		price    string
		want     string
	}{
		{"single unit", 1, "25.50", "25.50"},
		{"multiple units", 3, "25.50", "76.50"},
		{"fractional price", 7, "0.33", "2.31"},
		{"zero quantity", 0, "25.50", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineSubtotal(tt.quantity, MustMoney(tt.price))
			assert.True(t, got.Equal(MustMoney(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestRoundMoney(t *testing.T) {
	assert.True(t, RoundMoney(MustMoney("1.005")).Equal(MustMoney("1.01")))
	assert.True(t, RoundMoney(MustMoney("1.004")).Equal(MustMoney("1.00")))
	assert.True(t, RoundMoney(MustMoney("2")).Equal(MustMoney("2.00")))
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("19.99")
	require.NoError(t, err)
	assert.True(t, m.Equal(MustMoney("19.99")))

	_, err = NewMoneyFromString("not-a-number")
	assert.Error(t, err)
}

func TestMoneyAdditionIsExact(t *testing.T) {
	// 0.1 + 0.2 is exactly 0.3 with decimals, unlike floats.
	sum := MustMoney("0.1").Add(MustMoney("0.2"))
	assert.True(t, sum.Equal(MustMoney("0.3")))
}
