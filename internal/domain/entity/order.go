package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/mithaas/sweetshop-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BoxItem is a single line item inside a box
type BoxItem struct {
	Name  string          `json:"name"`
	Qty   decimal.Decimal `json:"qty"`
	Price decimal.Decimal `json:"price"`
	Unit  string          `json:"unit"`
}

// Box is a repeatable unit of packaged items within an order.
// Discount applies per single box instance, before multiplying by BoxCount.
type Box struct {
	Items    []BoxItem       `json:"items"`
	BoxCount int             `json:"box_count"`
	Discount decimal.Decimal `json:"discount"`
}

// ExtraDiscount is the order-level discount applied after box totals
type ExtraDiscount struct {
	Value decimal.Decimal   `json:"value"`
	Type  enum.DiscountType `json:"type"`
}

// Order represents a customer order. Orders live in one table per branch
// (orders_<branchcode>), so there is no static TableName; repositories
// address the table explicitly.
type Order struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderNumber string    `gorm:"size:100;not null;index" json:"order_number"`
	BranchCode  string    `gorm:"size:20;not null" json:"branch_code"`
	BranchName  string    `gorm:"size:255" json:"branch_name"`

	CustomerName  string `gorm:"size:255;not null" json:"customer_name"`
	CustomerPhone string `gorm:"size:20;not null" json:"customer_phone"`
	CustomerEmail string `gorm:"size:255" json:"customer_email,omitempty"`
	Address       string `gorm:"type:text" json:"address,omitempty"`
	Pincode       string `gorm:"size:10" json:"pincode,omitempty"`

	OccasionCode string     `gorm:"size:20" json:"occasion_code"`
	DeliveryDate *time.Time `gorm:"type:date" json:"delivery_date,omitempty"`
	Notes        string     `gorm:"type:text" json:"notes,omitempty"`

	Boxes         Boxes         `gorm:"type:jsonb;serializer:json" json:"boxes"`
	ExtraDiscount ExtraDiscount `gorm:"type:jsonb;serializer:json" json:"extra_discount"`

	AdvancePaid     decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"advance_paid"`
	BalancePaid     decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"balance_paid"`
	AdvancePaidDate *time.Time      `json:"advance_paid_date,omitempty"`
	BalancePaidDate *time.Time      `json:"balance_paid_date,omitempty"`

	// Derived on every write from boxes, discounts and payments
	GrandTotal    decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"grand_total"`
	Balance       decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"balance"`
	TotalBoxCount int             `gorm:"default:0" json:"total_box_count"`

	Status  enum.OrderStatus `gorm:"size:20;default:'auto-saved'" json:"status"`
	IsDraft bool             `gorm:"default:true" json:"is_draft"`

	CreatedBy uuid.UUID      `gorm:"type:uuid" json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Boxes is the ordered box list of an order, persisted as a JSONB document
type Boxes []Box

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
