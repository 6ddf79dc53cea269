package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionCreateUser     = "CREATE_USER"
	ActionUpdateUser     = "UPDATE_USER"
	ActionDeleteUser     = "DELETE_USER"
	ActionChangePassword = "CHANGE_PASSWORD"
	ActionCreateMaterial = "CREATE_MATERIAL"
	ActionUpdateMaterial = "UPDATE_MATERIAL"
	ActionDeleteMaterial = "DELETE_MATERIAL"

	// Workflow actions
	ActionSubmitPurchaseRequest     = "SUBMIT_PURCHASE_REQUEST"
	ActionDecidePurchaseItems       = "DECIDE_PURCHASE_ITEMS"
	ActionSubmitDistributionRequest = "SUBMIT_DISTRIBUTION_REQUEST"
	ActionDecideDistributionItems   = "DECIDE_DISTRIBUTION_ITEMS"
	ActionConfirmHandover           = "CONFIRM_HANDOVER"
	ActionSubmitVerification        = "SUBMIT_VERIFICATION_REQUEST"
	ActionResolveVerification       = "RESOLVE_VERIFICATION_REQUEST"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:text" json:"details"` // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
