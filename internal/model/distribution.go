package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DistributionRequest is a consumer's request to draw materials from approved
// stock. Its overall status is derived from the line items, ending in
// "completed" once every line is collected or rejected.
type DistributionRequest struct {
	ID          uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	ConsumerID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"consumer_id"`
	Consumer    *User              `gorm:"foreignKey:ConsumerID" json:"consumer,omitempty"`
	Status      string             `gorm:"type:varchar(30);not null;default:'pending';index" json:"status"`
	Items       []DistributionItem `gorm:"foreignKey:RequestID" json:"items"`
	SubmittedAt time.Time          `gorm:"autoCreateTime" json:"submitted_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func (d *DistributionRequest) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// DistributionItem is one requested material line. Once collected it records
// the handover details; for returnable materials the caseworker binds a
// specific serial/model from available stock at handover time.
type DistributionItem struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RequestID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"request_id"`
	LineNo           int        `gorm:"type:int;not null" json:"line_no"`
	Name             string     `gorm:"type:varchar(255);not null" json:"name"`
	Type             string     `gorm:"type:varchar(20);not null" json:"type"`
	Info             string     `gorm:"type:varchar(20);not null" json:"info"`
	RequiredQuantity int        `gorm:"type:int;not null" json:"required_quantity"`
	Status           string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Remarks          string     `gorm:"type:text" json:"remarks"`
	DateTaken        *time.Time `json:"date_taken,omitempty"`
	MessengerName    string     `gorm:"type:varchar(255)" json:"messenger_name,omitempty"`

	// Returnable unit bound at handover
	SerialNumber     string `gorm:"type:varchar(100);index" json:"serial_number,omitempty"`
	ModelNumber      string `gorm:"type:varchar(100)" json:"model_number,omitempty"`
	ProductCondition string `gorm:"type:varchar(20)" json:"product_condition,omitempty"`
}

func (i *DistributionItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
