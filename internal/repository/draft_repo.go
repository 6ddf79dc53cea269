package repository

import (
	"context"

	"material-store/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DraftRepository interface {
	Create(ctx context.Context, draft *model.DraftItem) error
	Update(ctx context.Context, draft *model.DraftItem) error
	Delete(ctx context.Context, consumerID, id uuid.UUID) error
	FindByID(ctx context.Context, consumerID, id uuid.UUID) (*model.DraftItem, error)
	ListByConsumer(ctx context.Context, consumerID uuid.UUID) ([]model.DraftItem, error)
	DeleteAllByConsumer(ctx context.Context, consumerID uuid.UUID) error
}

type draftRepository struct {
	db *gorm.DB
}

func NewDraftRepository(db *gorm.DB) DraftRepository {
	return &draftRepository{db: db}
}

func (r *draftRepository) Create(ctx context.Context, draft *model.DraftItem) error {
	return GetDB(ctx, r.db).Create(draft).Error
}

func (r *draftRepository) Update(ctx context.Context, draft *model.DraftItem) error {
	return GetDB(ctx, r.db).Save(draft).Error
}

// Delete is scoped by consumer so one consumer can never touch another's drafts.
func (r *draftRepository) Delete(ctx context.Context, consumerID, id uuid.UUID) error {
	return GetDB(ctx, r.db).
		Where("id = ? AND consumer_id = ?", id, consumerID).
		Delete(&model.DraftItem{}).Error
}

func (r *draftRepository) FindByID(ctx context.Context, consumerID, id uuid.UUID) (*model.DraftItem, error) {
	var draft model.DraftItem
	if err := GetDB(ctx, r.db).
		First(&draft, "id = ? AND consumer_id = ?", id, consumerID).Error; err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *draftRepository) ListByConsumer(ctx context.Context, consumerID uuid.UUID) ([]model.DraftItem, error) {
	var drafts []model.DraftItem
	if err := GetDB(ctx, r.db).
		Where("consumer_id = ?", consumerID).
		Order("created_at ASC").
		Find(&drafts).Error; err != nil {
		return nil, err
	}
	return drafts, nil
}

func (r *draftRepository) DeleteAllByConsumer(ctx context.Context, consumerID uuid.UUID) error {
	return GetDB(ctx, r.db).
		Where("consumer_id = ?", consumerID).
		Delete(&model.DraftItem{}).Error
}
