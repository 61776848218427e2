// Package pricing computes order totals. Every function is pure and total:
// invalid numeric input is treated as zero and out-of-range discounts are
// clamped into range, never rejected. Clamp helpers report whether they
// changed the value so callers can log a warning without altering the result.
package pricing

import (
	"github.com/mithaas/sweetshop-api/internal/domain/entity"
	"github.com/mithaas/sweetshop-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// paidTolerance absorbs floating-point residue when deciding full payment
var paidTolerance = decimal.NewFromFloat(0.01)

// Totals holds every derived monetary figure of an order
type Totals struct {
	Subtotal      decimal.Decimal
	ExtraDiscount decimal.Decimal
	GrandTotal    decimal.Decimal
	Balance       decimal.Decimal
	TotalBoxCount int
	// Clamped is true when any box or order-level discount was pulled into range
	Clamped bool
}

// ItemAmount returns qty × price for one line item. Negative qty or price
// counts as zero.
func ItemAmount(it entity.BoxItem) decimal.Decimal {
	qty := nonNegative(it.Qty)
	price := nonNegative(it.Price)
	return qty.Mul(price)
}

// BoxItemsSubtotal returns the item subtotal of a single box instance,
// before count multiplication and discount.
func BoxItemsSubtotal(b entity.Box) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range b.Items {
		sum = sum.Add(ItemAmount(it))
	}
	return sum
}

// ClampBoxDiscount bounds a per-box discount into [0, subtotal] and reports
// whether the input was out of range.
func ClampBoxDiscount(discount, subtotal decimal.Decimal) (decimal.Decimal, bool) {
	if discount.IsNegative() {
		return decimal.Zero, true
	}
	if discount.GreaterThan(subtotal) {
		return subtotal, true
	}
	return discount, false
}

// BoxTotal returns (items subtotal − discount) × boxCount, with the discount
// clamped first so the result is never negative.
func BoxTotal(b entity.Box) decimal.Decimal {
	total, _ := boxTotal(b)
	return total
}

func boxTotal(b entity.Box) (decimal.Decimal, bool) {
	subtotal := BoxItemsSubtotal(b)
	discount, clamped := ClampBoxDiscount(b.Discount, subtotal)
	count := b.BoxCount
	if count < 1 {
		count = 1
	}
	n := decimal.NewFromInt(int64(count))
	return subtotal.Mul(n).Sub(discount.Mul(n)), clamped
}

// OrderSubtotal sums box totals across the order
func OrderSubtotal(boxes []entity.Box) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range boxes {
		sum = sum.Add(BoxTotal(b))
	}
	return sum
}

// ClampExtraDiscount bounds an order-level discount: percentage into [0,100],
// value into [0, subtotal]. Unknown types count as value. Reports whether the
// input was out of range.
func ClampExtraDiscount(d entity.ExtraDiscount, subtotal decimal.Decimal) (decimal.Decimal, bool) {
	v := d.Value
	if v.IsNegative() {
		return decimal.Zero, true
	}
	if d.Type == enum.DiscountTypePercentage {
		if v.GreaterThan(hundred) {
			return hundred, true
		}
		return v, false
	}
	if v.GreaterThan(subtotal) {
		return subtotal, true
	}
	return v, false
}

// ExtraDiscountAmount converts the clamped order-level discount into an
// absolute amount off the subtotal.
func ExtraDiscountAmount(d entity.ExtraDiscount, subtotal decimal.Decimal) decimal.Decimal {
	v, _ := ClampExtraDiscount(d, subtotal)
	if d.Type == enum.DiscountTypePercentage {
		return subtotal.Mul(v).Div(hundred)
	}
	return v
}

// Balance returns grandTotal − advancePaid − balancePaid, floored at zero.
// Negative payment input counts as zero.
func Balance(grandTotal, advancePaid, balancePaid decimal.Decimal) decimal.Decimal {
	b := grandTotal.Sub(nonNegative(advancePaid)).Sub(nonNegative(balancePaid))
	if b.IsNegative() {
		return decimal.Zero
	}
	return b
}

// TotalBoxCount sums box count multipliers across the order
func TotalBoxCount(boxes []entity.Box) int {
	n := 0
	for _, b := range boxes {
		if b.BoxCount > 0 {
			n += b.BoxCount
		} else {
			n++
		}
	}
	return n
}

// FullyPaid reports whether the order is settled: balance within the
// tolerance and a positive grand total.
func FullyPaid(grandTotal, balance decimal.Decimal) bool {
	return balance.LessThanOrEqual(paidTolerance) && grandTotal.IsPositive()
}

// Compute derives every total of an order in one pass
func Compute(boxes []entity.Box, extra entity.ExtraDiscount, advancePaid, balancePaid decimal.Decimal) Totals {
	subtotal := decimal.Zero
	clamped := false
	for _, b := range boxes {
		t, c := boxTotal(b)
		subtotal = subtotal.Add(t)
		clamped = clamped || c
	}

	_, extraClamped := ClampExtraDiscount(extra, subtotal)
	discount := ExtraDiscountAmount(extra, subtotal)
	grand := subtotal.Sub(discount)

	return Totals{
		Subtotal:      subtotal,
		ExtraDiscount: discount,
		GrandTotal:    grand,
		Balance:       Balance(grand, advancePaid, balancePaid),
		TotalBoxCount: TotalBoxCount(boxes),
		Clamped:       clamped || extraClamped,
	}
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
