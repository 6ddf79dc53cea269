package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Material type classification
const (
	MaterialReturnable    = "Returnable"
	MaterialNonReturnable = "Non-returnable"
)

// Material info classification
const (
	InfoElectronic    = "Electronic"
	InfoNonElectronic = "Non-Electronic"
)

// Product condition values for returnable units
const (
	ConditionGood     = "Good"
	ConditionNormal   = "Normal"
	ConditionBad      = "Bad"
	ConditionDisposal = "For Disposal"
)

// Material is a catalog entry managed by the master. The name doubles as the
// join key the dashboards query by, so it is unique.
type Material struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Type      string         `gorm:"type:varchar(20);not null" json:"type"` // Returnable, Non-returnable
	Info      string         `gorm:"type:varchar(20);not null" json:"info"` // Electronic, Non-Electronic
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *Material) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ValidCondition reports whether c is one of the enumerated product conditions.
func ValidCondition(c string) bool {
	switch c {
	case ConditionGood, ConditionNormal, ConditionBad, ConditionDisposal:
		return true
	}
	return false
}
