package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DraftItem is a consumer's not-yet-submitted distribution line. Drafts are
// owned exclusively by the consumer and are deleted en masse when a
// distribution request is submitted from them.
type DraftItem struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ConsumerID       uuid.UUID `gorm:"type:uuid;not null;index" json:"consumer_id"`
	Name             string    `gorm:"type:varchar(255);not null" json:"name"`
	Type             string    `gorm:"type:varchar(20);not null" json:"type"`
	Info             string    `gorm:"type:varchar(20);not null" json:"info"`
	RequiredQuantity int       `gorm:"type:int;not null" json:"required_quantity"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (d *DraftItem) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
