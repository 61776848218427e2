package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/mithaas/sweetshop-api/internal/application/service"
	"github.com/mithaas/sweetshop-api/internal/domain/entity"
	"github.com/mithaas/sweetshop-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// OrderRequest represents an order create/update/autosave request.
// Binding stays loose here: autosave accepts partial orders, and the full
// validation for explicit saves lives in the service.
type OrderRequest struct {
	OrderNumber   string               `json:"order_number" binding:"required"`
	CustomerName  string               `json:"customer_name"`
	CustomerPhone string               `json:"customer_phone"`
	CustomerEmail string               `json:"customer_email"`
	Address       string               `json:"address"`
	Pincode       string               `json:"pincode"`
	OccasionCode  string               `json:"occasion_code"`
	DeliveryDate  *time.Time           `json:"delivery_date"`
	Notes         string               `json:"notes"`
	Boxes         []entity.Box         `json:"boxes"`
	ExtraDiscount entity.ExtraDiscount `json:"extra_discount"`
	AdvancePaid   decimal.Decimal      `json:"advance_paid"`
	Status        enum.OrderStatus     `json:"status"`
}

// ToInput converts the request into a service input, stamped with the
// authenticated user.
func (r *OrderRequest) ToInput(createdBy uuid.UUID, username string) *service.OrderInput {
	return &service.OrderInput{
		OrderNumber:   r.OrderNumber,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		Address:       r.Address,
		Pincode:       r.Pincode,
		OccasionCode:  r.OccasionCode,
		DeliveryDate:  r.DeliveryDate,
		Notes:         r.Notes,
		Boxes:         r.Boxes,
		ExtraDiscount: r.ExtraDiscount,
		AdvancePaid:   r.AdvancePaid,
		Status:        r.Status,
		CreatedBy:     createdBy,
		Username:      username,
	}
}

// PaymentRequest represents a payment update. Nil fields are left untouched
type PaymentRequest struct {
	AdvancePaid *decimal.Decimal `json:"advance_paid"`
	BalancePaid *decimal.Decimal `json:"balance_paid"`
}

// OrderFilterRequest represents order list filter parameters
type OrderFilterRequest struct {
	Search    string `form:"search"`
	Status    string `form:"status"`
	IsDraft   *bool  `form:"is_draft"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
