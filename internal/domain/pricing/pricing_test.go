package pricing

import (
	"testing"

	"github.com/mithaas/sweetshop-api/internal/domain/entity"
	"github.com/mithaas/sweetshop-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func box(count int, discount string, items ...entity.BoxItem) entity.Box {
	return entity.Box{Items: items, BoxCount: count, Discount: dec(discount)}
}

func item(qty, price string) entity.BoxItem {
	return entity.BoxItem{Name: "kaju katli", Qty: dec(qty), Price: dec(price), Unit: "kg"}
}

func TestBoxTotal(t *testing.T) {
	tests := []struct {
		name string
		box  entity.Box
		want string
	}{
		{
			// itemsSubtotal=250; 250×3 − 20×3 = 690
			name: "worked example",
			box:  box(3, "20", item("2", "100"), item("1", "50")),
			want: "690",
		},
		{
			name: "no discount",
			box:  box(2, "0", item("1", "100")),
			want: "200",
		},
		{
			name: "discount exceeding subtotal clamps to subtotal",
			box:  box(2, "500", item("1", "100")),
			want: "0",
		},
		{
			name: "negative discount clamps to zero",
			box:  box(1, "-10", item("1", "100")),
			want: "100",
		},
		{
			name: "zero box count treated as one",
			box:  box(0, "0", item("1", "75")),
			want: "75",
		},
		{
			name: "negative qty treated as zero",
			box:  box(1, "0", entity.BoxItem{Qty: dec("-2"), Price: dec("100")}),
			want: "0",
		},
		{
			name: "empty box",
			box:  box(1, "0"),
			want: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BoxTotal(tt.box)
			if !got.Equal(dec(tt.want)) {
				t.Errorf("BoxTotal() = %s, want %s", got, tt.want)
			}
			if got.IsNegative() {
				t.Errorf("BoxTotal() = %s, must never be negative", got)
			}
		})
	}
}

func TestClampBoxDiscount(t *testing.T) {
	tests := []struct {
		name        string
		discount    string
		subtotal    string
		want        string
		wantClamped bool
	}{
		{"in range", "20", "250", "20", false},
		{"at subtotal", "250", "250", "250", false},
		{"above subtotal", "300", "250", "250", true},
		{"negative", "-5", "250", "0", true},
		{"zero", "0", "250", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, clamped := ClampBoxDiscount(dec(tt.discount), dec(tt.subtotal))
			if !got.Equal(dec(tt.want)) || clamped != tt.wantClamped {
				t.Errorf("ClampBoxDiscount(%s, %s) = (%s, %v), want (%s, %v)",
					tt.discount, tt.subtotal, got, clamped, tt.want, tt.wantClamped)
			}
		})
	}
}

func TestExtraDiscountAmount(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		typ      enum.DiscountType
		subtotal string
		want     string
	}{
		{"percentage", "10", enum.DiscountTypePercentage, "1000", "100"},
		// 110% clamps to 100% so the whole subtotal is discounted
		{"percentage above 100 clamps", "110", enum.DiscountTypePercentage, "1000", "1000"},
		{"flat value", "150", enum.DiscountTypeValue, "1000", "150"},
		{"flat value above subtotal clamps", "1200", enum.DiscountTypeValue, "1000", "1000"},
		{"negative clamps to zero", "-50", enum.DiscountTypeValue, "1000", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := entity.ExtraDiscount{Value: dec(tt.value), Type: tt.typ}
			got := ExtraDiscountAmount(d, dec(tt.subtotal))
			if !got.Equal(dec(tt.want)) {
				t.Errorf("ExtraDiscountAmount() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBalance(t *testing.T) {
	tests := []struct {
		name                       string
		grand, advance, paid, want string
	}{
		{"partial payment", "500", "300", "0", "200"},
		// 500−300−300 floors at zero
		{"overpayment floors at zero", "500", "300", "300", "0"},
		{"exact payment", "500", "200", "300", "0"},
		{"no payment", "500", "0", "0", "500"},
		{"negative payments ignored", "500", "-100", "0", "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Balance(dec(tt.grand), dec(tt.advance), dec(tt.paid))
			if !got.Equal(dec(tt.want)) {
				t.Errorf("Balance() = %s, want %s", got, tt.want)
			}
			if got.IsNegative() {
				t.Errorf("Balance() = %s, must never be negative", got)
			}
		})
	}
}

func TestFullyPaid(t *testing.T) {
	tests := []struct {
		name           string
		grand, balance string
		want           bool
	}{
		{"settled", "500", "0", true},
		{"within tolerance", "500", "0.01", true},
		{"outstanding", "500", "0.02", false},
		{"zero grand total never fully paid", "0", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FullyPaid(dec(tt.grand), dec(tt.balance)); got != tt.want {
				t.Errorf("FullyPaid(%s, %s) = %v, want %v", tt.grand, tt.balance, got, tt.want)
			}
		})
	}
}

func TestCompute(t *testing.T) {
	boxes := []entity.Box{
		box(3, "20", item("2", "100"), item("1", "50")), // 690
		box(1, "0", item("1", "310")),                   // 310
	}
	extra := entity.ExtraDiscount{Value: dec("10"), Type: enum.DiscountTypePercentage}

	totals := Compute(boxes, extra, dec("300"), dec("0"))

	if !totals.Subtotal.Equal(dec("1000")) {
		t.Errorf("Subtotal = %s, want 1000", totals.Subtotal)
	}
	if !totals.ExtraDiscount.Equal(dec("100")) {
		t.Errorf("ExtraDiscount = %s, want 100", totals.ExtraDiscount)
	}
	if !totals.GrandTotal.Equal(dec("900")) {
		t.Errorf("GrandTotal = %s, want 900", totals.GrandTotal)
	}
	if !totals.Balance.Equal(dec("600")) {
		t.Errorf("Balance = %s, want 600", totals.Balance)
	}
	if totals.TotalBoxCount != 4 {
		t.Errorf("TotalBoxCount = %d, want 4", totals.TotalBoxCount)
	}
	if totals.Clamped {
		t.Error("Clamped = true for in-range input")
	}
}

func TestComputeReportsClamping(t *testing.T) {
	boxes := []entity.Box{box(1, "999", item("1", "100"))}
	extra := entity.ExtraDiscount{Value: dec("110"), Type: enum.DiscountTypePercentage}

	totals := Compute(boxes, extra, decimal.Zero, decimal.Zero)

	if !totals.Clamped {
		t.Error("Clamped = false, want true for out-of-range discounts")
	}
	// 110% clamps to 100%, so everything is discounted away
	if !totals.GrandTotal.Equal(dec("0")) {
		t.Errorf("GrandTotal = %s, want 0", totals.GrandTotal)
	}
	if totals.GrandTotal.IsNegative() || totals.Balance.IsNegative() {
		t.Error("totals must never go negative under clamping")
	}
}
