package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Occasion is a named sales season (Diwali, Rakhi, general). Its code feeds
// the order-number prefix: {branch}-{occasion}-{sequence}.
type Occasion struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Code      string         `gorm:"size:20;unique;not null" json:"code"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new occasion
func (o *Occasion) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Occasion model
func (Occasion) TableName() string {
	return "occasions"
}
