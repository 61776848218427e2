package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/mithaas/sweetshop-api/internal/domain/enum"
	"gorm.io/gorm"
)

// User is a staff or admin account. Staff users are bound to one branch;
// admins have no branch and see every branch.
type User struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Username   string         `gorm:"size:255;unique;not null" json:"username"`
	FullName   string         `gorm:"size:255" json:"full_name,omitempty"`
	Password   string         `gorm:"size:255;not null" json:"-"`
	Role       enum.Role      `gorm:"size:20;default:'staff'" json:"role"`
	BranchCode string         `gorm:"size:20" json:"branch_code,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
