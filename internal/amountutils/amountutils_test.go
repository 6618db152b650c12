package amountutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardizeAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"brazilian with symbol", "R$ 1.234,56", "1234.56"},
		{"brazilian plain", "1.234,56", "1234.56"},
		{"comma decimals only", "1000,00", "1000.00"},
		{"dot decimals untouched", "1234.56", "1234.56"},
		{"anglo thousands", "1,234.56", "1234.56"},
		{"comma thousands no decimals", "1,234", "1234"},
		{"negative brazilian", "-150,00", "-150.00"},
		{"spaces stripped", " 850,00 ", "850.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StandardizeAmount(tt.input))
		})
	}
}

func TestParseAmount(t *testing.T) {
	amount, err := ParseAmount("R$ 1.234,56")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("1234.56")))

	amount, err = ParseAmount("")
	require.NoError(t, err)
	assert.True(t, amount.IsZero())

	_, err = ParseAmount("abc")
	assert.Error(t, err)
}

func TestFromCentavos(t *testing.T) {
	assert.Equal(t, "50.00", FromCentavos(5000).StringFixed(2))
	assert.Equal(t, "0.01", FromCentavos(1).StringFixed(2))
	assert.Equal(t, "0.00", FromCentavos(0).StringFixed(2))
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "1234,50", FormatBRL(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "0,00", FormatBRL(decimal.Zero))
}
