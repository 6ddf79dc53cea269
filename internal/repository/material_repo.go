package repository

import (
	"context"

	"material-store/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaterialRepository interface {
	Create(ctx context.Context, material *model.Material) error
	Update(ctx context.Context, material *model.Material) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error)
	FindByName(ctx context.Context, name string) (*model.Material, error)
	List(ctx context.Context) ([]model.Material, error)
}

type materialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) Create(ctx context.Context, material *model.Material) error {
	return GetDB(ctx, r.db).Create(material).Error
}

func (r *materialRepository) Update(ctx context.Context, material *model.Material) error {
	return GetDB(ctx, r.db).Save(material).Error
}

func (r *materialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Material{}).Error
}

func (r *materialRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error) {
	var material model.Material
	if err := GetDB(ctx, r.db).First(&material, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *materialRepository) FindByName(ctx context.Context, name string) (*model.Material, error) {
	var material model.Material
	if err := GetDB(ctx, r.db).First(&material, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *materialRepository) List(ctx context.Context) ([]model.Material, error) {
	var materials []model.Material
	if err := GetDB(ctx, r.db).Order("name ASC").Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}
