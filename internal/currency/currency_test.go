package currency_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ajwalsh/piggy/internal/currency"
)

func TestFormat(t *testing.T) {
	type testCase struct {
		name  string
		value decimal.Decimal
		want  string
	}

	tests := []testCase{
		{name: "Small", value: decimal.NewFromInt(500), want: "₹500.00"},
		{name: "Thousands", value: decimal.NewFromInt(45000), want: "₹45,000.00"},
		{name: "LakhGrouping", value: decimal.NewFromFloat(123456.7), want: "₹1,23,456.70"},
		{name: "Zero", value: decimal.Zero, want: "₹0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, currency.Format(tt.value))
		})
	}
}
