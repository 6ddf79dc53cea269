package repository

import (
	"context"

	"material-store/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	Create(ctx context.Context, request *model.PurchaseRequest) error
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.PurchaseRequest, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.PurchaseRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateItem(ctx context.Context, item *model.PurchaseItem) error
	ListAll(ctx context.Context) ([]model.PurchaseRequest, error)
	ListByStatus(ctx context.Context, statuses []string) ([]model.PurchaseRequest, error)
	ListByCaseworker(ctx context.Context, caseworkerID uuid.UUID) ([]model.PurchaseRequest, error)
}

type purchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(ctx context.Context, request *model.PurchaseRequest) error {
	return GetDB(ctx, r.db).Create(request).Error
}

func (r *purchaseRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.PurchaseRequest, error) {
	var request model.PurchaseRequest
	if err := GetDB(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// FindByIDForUpdate locks the request row for the duration of the enclosing
// transaction so concurrent approval batches cannot fold stale item state.
func (r *purchaseRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.PurchaseRequest, error) {
	db := GetDB(ctx, r.db)
	var request model.PurchaseRequest
	if err := lockForUpdate(db).First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := db.Where("request_id = ?", id).Order("line_no ASC").Find(&request.Items).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *purchaseRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return GetDB(ctx, r.db).Model(&model.PurchaseRequest{}).Where("id = ?", id).Update("status", status).Error
}

func (r *purchaseRepository) UpdateItem(ctx context.Context, item *model.PurchaseItem) error {
	return GetDB(ctx, r.db).Save(item).Error
}

func (r *purchaseRepository) ListAll(ctx context.Context) ([]model.PurchaseRequest, error) {
	var requests []model.PurchaseRequest
	if err := GetDB(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		Order("submitted_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *purchaseRepository) ListByStatus(ctx context.Context, statuses []string) ([]model.PurchaseRequest, error) {
	var requests []model.PurchaseRequest
	if err := GetDB(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		Where("status IN ?", statuses).
		Order("submitted_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *purchaseRepository) ListByCaseworker(ctx context.Context, caseworkerID uuid.UUID) ([]model.PurchaseRequest, error) {
	var requests []model.PurchaseRequest
	if err := GetDB(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		Where("caseworker_id = ?", caseworkerID).
		Order("submitted_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
