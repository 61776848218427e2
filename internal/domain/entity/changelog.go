package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChangelogEntry records an order mutation (created, updated, deleted) for
// after-the-fact review. Append-only; entries are never updated.
type ChangelogEntry struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BranchCode  string    `gorm:"size:20;not null;index" json:"branch_code"`
	OrderNumber string    `gorm:"size:100;not null" json:"order_number"`
	Action      string    `gorm:"size:20;not null" json:"action"`
	Username    string    `gorm:"size:255" json:"username"`
	Detail      string    `gorm:"type:text" json:"detail,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new changelog entry
func (e *ChangelogEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ChangelogEntry model
func (ChangelogEntry) TableName() string {
	return "changelog"
}
