package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role constants — the four fixed roles of the store workflow
const (
	RoleMaster     = "master"
	RoleCaseworker = "caseworker"
	RoleApprover   = "approver"
	RoleConsumer   = "consumer"
)

// User represents a provisioned account. Accounts are created by the master;
// deleting one revokes access (soft delete) without destroying the record.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UniqueID    string         `gorm:"type:varchar(100);not null" json:"unique_id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Designation string         `gorm:"type:varchar(255)" json:"designation"`
	Email       string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string         `gorm:"type:varchar(255);not null" json:"-"` // Omit password hash from JSON
	Role        string         `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// ValidRole reports whether role is one of the four workflow roles.
func ValidRole(role string) bool {
	switch role {
	case RoleMaster, RoleCaseworker, RoleApprover, RoleConsumer:
		return true
	}
	return false
}

// RefreshToken stores long-lived tokens allowing users to request new access tokens
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Token     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
