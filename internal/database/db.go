package database

import (
	"log"

	"material-store/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Material{},
		&model.PurchaseRequest{},
		&model.PurchaseItem{},
		&model.DistributionRequest{},
		&model.DistributionItem{},
		&model.DraftItem{},
		&model.VerificationRequest{},
		&model.VerificationItem{},
		&model.AuditLog{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}
