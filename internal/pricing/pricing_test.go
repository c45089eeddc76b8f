package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestLineSubtotal(t *testing.T) {
	e := New(dec("0.09"))

	assert.True(t, e.LineSubtotal(dec("19.99"), 3).Equal(dec("59.97")))
	assert.True(t, e.LineSubtotal(dec("100"), 2).Equal(dec("200")))
	// half away from zero
	assert.True(t, e.LineSubtotal(dec("0.005"), 1).Equal(dec("0.01")))
	assert.True(t, e.LineSubtotal(dec("3.335"), 1).Equal(dec("3.34")))
}

func TestTotalsGSTExample(t *testing.T) {
	e := New(dec("0.09"))

	subtotal, tax, total := e.Totals([]decimal.Decimal{dec("200.00")})
	assert.True(t, subtotal.Equal(dec("200.00")), "subtotal=%s", subtotal)
	assert.True(t, tax.Equal(dec("18.00")), "tax=%s", tax)
	assert.True(t, total.Equal(dec("218.00")), "total=%s", total)
}

func TestTotalsStepwiseRounding(t *testing.T) {
	e := New(dec("0.09"))

	// 10.05 * 0.09 = 0.9045 -> tax rounds to 0.90, not carried exact.
	subtotal, tax, total := e.Totals([]decimal.Decimal{dec("10.05")})
	require.True(t, subtotal.Equal(dec("10.05")))
	assert.True(t, tax.Equal(dec("0.90")), "tax=%s", tax)
	assert.True(t, total.Equal(dec("10.95")), "total=%s", total)
}

func TestTotalsSumsRoundedLines(t *testing.T) {
	e := New(dec("0.09"))

	// Lines are rounded before summing: 3 * 33.333 -> 3 * 33.33 = 99.99.
	lines := []decimal.Decimal{
		e.LineSubtotal(dec("33.333"), 1),
		e.LineSubtotal(dec("33.333"), 1),
		e.LineSubtotal(dec("33.333"), 1),
	}
	subtotal, _, _ := e.Totals(lines)
	assert.True(t, subtotal.Equal(dec("99.99")), "subtotal=%s", subtotal)
}

func TestTotalEqualsRoundedSubtotalPlusTax(t *testing.T) {
	e := New(dec("0.09"))

	for _, s := range []string{"0.01", "1.11", "57.93", "200.00", "999999.99"} {
		subtotal, tax, total := e.Totals([]decimal.Decimal{dec(s)})
		assert.True(t, total.Equal(subtotal.Add(tax).Round(2)), "subtotal=%s", s)
	}
}
