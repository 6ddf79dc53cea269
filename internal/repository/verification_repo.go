package repository

import (
	"context"

	"material-store/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VerificationRepository interface {
	Create(ctx context.Context, request *model.VerificationRequest) error
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.VerificationRequest, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.VerificationRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateItem(ctx context.Context, item *model.VerificationItem) error
	ListByStatus(ctx context.Context, statuses []string) ([]model.VerificationRequest, error)
	ListHistory(ctx context.Context) ([]model.VerificationRequest, error)
}

type verificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) Create(ctx context.Context, request *model.VerificationRequest) error {
	return GetDB(ctx, r.db).Create(request).Error
}

func (r *verificationRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.VerificationRequest, error) {
	var request model.VerificationRequest
	if err := GetDB(ctx, r.db).
		Preload("Items").
		First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *verificationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.VerificationRequest, error) {
	db := GetDB(ctx, r.db)
	var request model.VerificationRequest
	if err := lockForUpdate(db).First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := db.Where("request_id = ?", id).Find(&request.Items).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *verificationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return GetDB(ctx, r.db).Model(&model.VerificationRequest{}).Where("id = ?", id).Update("status", status).Error
}

func (r *verificationRepository) UpdateItem(ctx context.Context, item *model.VerificationItem) error {
	return GetDB(ctx, r.db).Save(item).Error
}

func (r *verificationRepository) ListByStatus(ctx context.Context, statuses []string) ([]model.VerificationRequest, error) {
	var requests []model.VerificationRequest
	if err := GetDB(ctx, r.db).
		Preload("Items").
		Where("status IN ?", statuses).
		Order("submitted_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// ListHistory returns every request that has already been resolved.
func (r *verificationRepository) ListHistory(ctx context.Context) ([]model.VerificationRequest, error) {
	var requests []model.VerificationRequest
	if err := GetDB(ctx, r.db).
		Preload("Items").
		Where("status <> ?", model.VerificationPending).
		Order("submitted_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
