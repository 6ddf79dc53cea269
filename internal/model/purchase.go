package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Overall request statuses shared by purchase and distribution requests
const (
	StatusPending           = "pending"
	StatusApproved          = "approved"
	StatusRejected          = "rejected"
	StatusPartiallyApproved = "partially-approved"
	StatusCompleted         = "completed" // distribution requests only
)

// Line item statuses
const (
	ItemPending   = "pending"
	ItemApproved  = "approved"
	ItemRejected  = "rejected"
	ItemCollected = "collected" // distribution lines only
)

// PurchaseRequest records a vendor purchase submitted by a caseworker for
// approval. The overall status is always derived from the line items.
type PurchaseRequest struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	VendorName    string          `gorm:"type:varchar(255);not null" json:"vendor_name"`
	VendorPhone   string          `gorm:"type:varchar(30);not null" json:"vendor_phone"`
	VendorAddress string          `gorm:"type:text;not null" json:"vendor_address"`
	BillNumber    string          `gorm:"type:varchar(100);not null" json:"bill_number"`
	BillDate      time.Time       `gorm:"not null" json:"bill_date"`
	GSTNumber     string          `gorm:"type:varchar(50);not null" json:"gst_number"`
	GSTAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"gst_amount"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	CaseworkerID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"caseworker_id"`
	Caseworker    *User           `gorm:"foreignKey:CaseworkerID" json:"caseworker,omitempty"`
	Status        string          `gorm:"type:varchar(30);not null;default:'pending';index" json:"status"`
	Items         []PurchaseItem  `gorm:"foreignKey:RequestID" json:"items"`
	SubmittedAt   time.Time       `gorm:"autoCreateTime" json:"submitted_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (p *PurchaseRequest) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PurchaseItem is one material entry within a purchase request. Returnable
// materials are entered one line per physical unit (quantity 1 each) with the
// unit's serial number, model number, and condition; non-returnable lines
// carry the bulk quantity.
type PurchaseItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	RequestID uuid.UUID       `gorm:"type:uuid;not null;index" json:"request_id"`
	LineNo    int             `gorm:"type:int;not null" json:"line_no"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Type      string          `gorm:"type:varchar(20);not null" json:"type"`
	Info      string          `gorm:"type:varchar(20);not null" json:"info"`
	Quantity  int             `gorm:"type:int;not null" json:"quantity"`
	Cost      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"cost"`
	Status    string          `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Remarks   string          `gorm:"type:text" json:"remarks"`

	// Returnable unit identity
	SerialNumber     string `gorm:"type:varchar(100)" json:"serial_number,omitempty"`
	ModelNumber      string `gorm:"type:varchar(100)" json:"model_number,omitempty"`
	ProductCondition string `gorm:"type:varchar(20)" json:"product_condition,omitempty"`
}

func (i *PurchaseItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
