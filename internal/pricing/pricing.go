// Package pricing computes line subtotals and order totals with a fixed
// flat-rate tax.
//
// All three figures (line subtotal, tax, total) are rounded to two decimal
// places independently, half away from zero. Downstream consistency checks
// compare these stored figures against recomputed ones, so carrying exact
// fractions between steps would change observable totals. Do not "fix" this
// by rounding once at the end.
package pricing

import "github.com/shopspring/decimal"

type Engine struct {
	taxRate decimal.Decimal
}

func New(taxRate decimal.Decimal) Engine {
	return Engine{taxRate: taxRate}
}

func (e Engine) TaxRate() decimal.Decimal { return e.taxRate }

// LineSubtotal returns round2(price * qty).
func (e Engine) LineSubtotal(price decimal.Decimal, qty int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(qty))).Round(2)
}

// Totals sums already-rounded line subtotals, then derives tax and total,
// rounding at each step.
func (e Engine) Totals(lineSubtotals []decimal.Decimal) (subtotal, tax, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, s := range lineSubtotals {
		subtotal = subtotal.Add(s)
	}
	subtotal = subtotal.Round(2)
	tax = subtotal.Mul(e.taxRate).Round(2)
	total = subtotal.Add(tax).Round(2)
	return subtotal, tax, total
}
