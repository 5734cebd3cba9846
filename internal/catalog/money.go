package catalog

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency of every catalog price.
const Currency = money.INR

// FormatPrice renders a rupee amount for display, e.g. ₹2,567.35.
func FormatPrice(amount decimal.Decimal) string {
	cur := money.GetCurrency(Currency)
	factor := decimal.New(1, int32(cur.Fraction))
	return money.New(amount.Mul(factor).Round(0).IntPart(), Currency).Display()
}
