package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ajwalsh/piggy/internal/currency"
)

const dbTimeout = 5 * time.Second

// FormatAmount renders an amount as rupees with en-IN grouping.
func FormatAmount(d decimal.Decimal) string {
	return currency.Format(d)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseAmount parses user input into a positive decimal amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("not a number")
	}

	if !d.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("must be greater than zero")
	}

	return d, nil
}

// DbCtx returns a context with a standard timeout for remote store operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
