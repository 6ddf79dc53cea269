package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Annual verification request statuses
const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationChanged  = "verified-changed"
)

// RemarkVerifiedChanged is stamped on items whose confirmed condition differs
// from the one on record.
const RemarkVerifiedChanged = "Physically Verified and Changed"

// VerificationRequest is the caseworker's annual re-inspection of collected
// returnable units, proposing a condition per unit for approver sign-off.
type VerificationRequest struct {
	ID             uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	CaseworkerID   uuid.UUID          `gorm:"type:uuid;not null;index" json:"caseworker_id"`
	Caseworker     *User              `gorm:"foreignKey:CaseworkerID" json:"caseworker,omitempty"`
	Status         string             `gorm:"type:varchar(30);not null;default:'pending';index" json:"status"`
	Items          []VerificationItem `gorm:"foreignKey:RequestID" json:"items"`
	SubmittedAt    time.Time          `gorm:"autoCreateTime" json:"submitted_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

func (v *VerificationRequest) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// VerificationItem snapshots one collected returnable unit together with the
// proposed new condition. The owning distribution request id and the serial
// number locate the unit when a condition change is propagated back.
type VerificationItem struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RequestID             uuid.UUID  `gorm:"type:uuid;not null;index" json:"request_id"`
	DistributionRequestID uuid.UUID  `gorm:"type:uuid;not null;index" json:"distribution_request_id"`
	ConsumerID            uuid.UUID  `gorm:"type:uuid;not null" json:"consumer_id"`
	Name                  string     `gorm:"type:varchar(255);not null" json:"name"`
	SerialNumber          string     `gorm:"type:varchar(100);not null" json:"serial_number"`
	ModelNumber           string     `gorm:"type:varchar(100);not null" json:"model_number"`
	ProductCondition      string     `gorm:"type:varchar(20);not null" json:"product_condition"` // condition on record at proposal time
	NewCondition          string     `gorm:"type:varchar(20);not null" json:"new_condition"`
	Remarks               string     `gorm:"type:text" json:"remarks"`
	VerifiedDate          *time.Time `json:"verified_date,omitempty"`
}

func (i *VerificationItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
