package request

import "github.com/shopspring/decimal"

// BranchRequest represents a branch create/update request
type BranchRequest struct {
	Code    string `json:"code" binding:"required,min=2,max=20"`
	Name    string `json:"name" binding:"required,min=2,max=255"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// ItemRequest represents a catalog item create/update request
type ItemRequest struct {
	Name      string          `json:"name" binding:"required,min=2,max=255"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OccasionRequest represents an occasion create/update request
type OccasionRequest struct {
	Code string `json:"code" binding:"required,min=2,max=20"`
	Name string `json:"name" binding:"required,min=2,max=255"`
}

// UserRequest represents a user create/update request. Password may be
// empty on update to keep the current one.
type UserRequest struct {
	Username   string `json:"username" binding:"required,min=3,max=255"`
	FullName   string `json:"full_name"`
	Password   string `json:"password"`
	Role       string `json:"role" binding:"required"`
	BranchCode string `json:"branch_code"`
}
