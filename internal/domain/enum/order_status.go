package enum

// OrderStatus represents the lifecycle status of an order
type OrderStatus string

const (
	// OrderStatusAutoSaved marks an in-progress draft persisted by the auto-save loop
	OrderStatusAutoSaved OrderStatus = "auto-saved"
	// OrderStatusSaved marks an explicitly finalized order
	OrderStatusSaved OrderStatus = "saved"
	// OrderStatusHeld marks a finalized order put on hold
	OrderStatusHeld OrderStatus = "held"
)

// IsValid reports whether s is a known order status
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusAutoSaved, OrderStatusSaved, OrderStatusHeld:
		return true
	}
	return false
}
