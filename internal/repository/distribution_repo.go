package repository

import (
	"context"

	"material-store/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DistributionRepository interface {
	Create(ctx context.Context, request *model.DistributionRequest) error
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.DistributionRequest, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.DistributionRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateItem(ctx context.Context, item *model.DistributionItem) error
	ListAll(ctx context.Context) ([]model.DistributionRequest, error)
	ListByStatus(ctx context.Context, statuses []string) ([]model.DistributionRequest, error)
	ListByConsumer(ctx context.Context, consumerID uuid.UUID) ([]model.DistributionRequest, error)
	HasPendingForConsumer(ctx context.Context, consumerID uuid.UUID) (bool, error)
}

type distributionRepository struct {
	db *gorm.DB
}

func NewDistributionRepository(db *gorm.DB) DistributionRepository {
	return &distributionRepository{db: db}
}

func (r *distributionRepository) Create(ctx context.Context, request *model.DistributionRequest) error {
	return GetDB(ctx, r.db).Create(request).Error
}

func (r *distributionRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.DistributionRequest, error) {
	var request model.DistributionRequest
	if err := GetDB(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *distributionRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.DistributionRequest, error) {
	db := GetDB(ctx, r.db)
	var request model.DistributionRequest
	if err := lockForUpdate(db).First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := db.Where("request_id = ?", id).Order("line_no ASC").Find(&request.Items).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *distributionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return GetDB(ctx, r.db).Model(&model.DistributionRequest{}).Where("id = ?", id).Update("status", status).Error
}

func (r *distributionRepository) UpdateItem(ctx context.Context, item *model.DistributionItem) error {
	return GetDB(ctx, r.db).Save(item).Error
}

func (r *distributionRepository) ListAll(ctx context.Context) ([]model.DistributionRequest, error) {
	var requests []model.DistributionRequest
	if err := GetDB(ctx, r.db).
		Preload("Consumer").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		Order("submitted_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *distributionRepository) ListByStatus(ctx context.Context, statuses []string) ([]model.DistributionRequest, error) {
	var requests []model.DistributionRequest
	if err := GetDB(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		Where("status IN ?", statuses).
		Order("submitted_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *distributionRepository) ListByConsumer(ctx context.Context, consumerID uuid.UUID) ([]model.DistributionRequest, error) {
	var requests []model.DistributionRequest
	if err := GetDB(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		Where("consumer_id = ?", consumerID).
		Order("submitted_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *distributionRepository) HasPendingForConsumer(ctx context.Context, consumerID uuid.UUID) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.DistributionRequest{}).
		Where("consumer_id = ? AND status = ?", consumerID, model.StatusPending).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
