package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"material-store/internal/model"
	"material-store/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaterialInput struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required,oneof=Returnable Non-returnable"`
	Info string `json:"info" binding:"required,oneof=Electronic Non-Electronic"`
}

// MaterialService manages the master's catalog. The catalog defines what can
// be purchased and requested at all; every workflow line references an entry
// by name.
type MaterialService interface {
	Create(ctx context.Context, actor Actor, input MaterialInput) (*model.Material, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, input MaterialInput) (*model.Material, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	List(ctx context.Context) ([]model.Material, error)
}

type materialService struct {
	repo      repository.MaterialRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
}

func NewMaterialService(repo repository.MaterialRepository, auditRepo repository.AuditRepository, txManager repository.TransactionManager) MaterialService {
	return &materialService{repo: repo, auditRepo: auditRepo, txManager: txManager}
}

func (s *materialService) Create(ctx context.Context, actor Actor, input MaterialInput) (*model.Material, error) {
	if err := actor.require(model.RoleMaster); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByName(ctx, input.Name); err == nil {
		return nil, validationf("material %q already exists", input.Name)
	}

	material := &model.Material{
		Name: input.Name,
		Type: input.Type,
		Info: input.Info,
	}
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, material); err != nil {
			return err
		}
		return s.logMaterialAction(txCtx, actor, model.ActionCreateMaterial, material)
	})
	if err != nil {
		return nil, err
	}
	return material, nil
}

func (s *materialService) Update(ctx context.Context, actor Actor, id uuid.UUID, input MaterialInput) (*model.Material, error) {
	if err := actor.require(model.RoleMaster); err != nil {
		return nil, err
	}

	material, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Name != material.Name {
		if _, err := s.repo.FindByName(ctx, input.Name); err == nil {
			return nil, validationf("material %q already exists", input.Name)
		}
	}
	material.Name = input.Name
	material.Type = input.Type
	material.Info = input.Info

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, material); err != nil {
			return err
		}
		return s.logMaterialAction(txCtx, actor, model.ActionUpdateMaterial, material)
	})
	if err != nil {
		return nil, err
	}
	return material, nil
}

func (s *materialService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := actor.require(model.RoleMaster); err != nil {
		return err
	}

	material, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, id); err != nil {
			return err
		}
		return s.logMaterialAction(txCtx, actor, model.ActionDeleteMaterial, material)
	})
}

func (s *materialService) List(ctx context.Context) ([]model.Material, error) {
	return s.repo.List(ctx)
}

func (s *materialService) logMaterialAction(ctx context.Context, actor Actor, action string, material *model.Material) error {
	details, _ := json.Marshal(map[string]interface{}{"type": material.Type, "info": material.Info})
	audit := &model.AuditLog{
		UserID:     &actor.ID,
		Action:     action,
		EntityID:   material.ID.String(),
		EntityName: material.Name,
		Details:    string(details),
	}
	if err := s.auditRepo.Log(ctx, audit); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
