package enum

// DiscountType represents how an order-level extra discount is interpreted
type DiscountType string

const (
	// DiscountTypeValue is a flat amount subtracted from the order subtotal
	DiscountTypeValue DiscountType = "value"
	// DiscountTypePercentage is a percentage of the order subtotal
	DiscountTypePercentage DiscountType = "percentage"
)

// IsValid reports whether t is a known discount type
func (t DiscountType) IsValid() bool {
	return t == DiscountTypeValue || t == DiscountTypePercentage
}
