// Package currency renders amounts the way the dashboard displays them:
// Indian rupees with en-IN digit grouping.
package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("en-IN"))

// Format renders an amount as rupees, e.g. 123456.7 -> "₹1,23,456.70".
func Format(d decimal.Decimal) string {
	return printer.Sprintf("₹%v", number.Decimal(
		d.InexactFloat64(),
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
