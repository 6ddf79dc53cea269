package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"material-store/internal/model"
	"material-store/internal/repository"
	ws "material-store/internal/websocket"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type DraftInput struct {
	Name             string `json:"name" binding:"required"`
	RequiredQuantity int    `json:"required_quantity" binding:"required,gt=0"`
}

// HandoverInput confirms or refuses the physical handover of one line.
// Collected lines always need the messenger's name; returnable lines also
// need a serial/model picked from currently available stock.
type HandoverInput struct {
	LineNo        int    `json:"line_no"`
	Outcome       string `json:"outcome" binding:"required,oneof=collected rejected"`
	MessengerName string `json:"messenger_name"`
	SerialNumber  string `json:"serial_number"`
	ModelNumber   string `json:"model_number"`
	Remarks       string `json:"remarks"`
}

// CollectedItemRow is one handed-over line with the consumer it went to, as
// shown on the caseworker's collected-items report. Non-returnable lines carry
// a quantity; returnable lines carry the bound unit.
type CollectedItemRow struct {
	DistributionRequestID uuid.UUID  `json:"distribution_request_id"`
	ConsumerID            uuid.UUID  `json:"consumer_id"`
	ConsumerName          string     `json:"consumer_name,omitempty"`
	Designation           string     `json:"designation,omitempty"`
	Name                  string     `json:"name"`
	Type                  string     `json:"type"`
	Quantity              int        `json:"quantity"`
	SerialNumber          string     `json:"serial_number,omitempty"`
	ModelNumber           string     `json:"model_number,omitempty"`
	ProductCondition      string     `json:"product_condition,omitempty"`
	DateTaken             *time.Time `json:"date_taken,omitempty"`
	MessengerName         string     `json:"messenger_name"`
}

// --- Interface ---

type DistributionService interface {
	ListDrafts(ctx context.Context, actor Actor) ([]model.DraftItem, error)
	AddDraft(ctx context.Context, actor Actor, input DraftInput) (*model.DraftItem, error)
	UpdateDraft(ctx context.Context, actor Actor, draftID uuid.UUID, input DraftInput) (*model.DraftItem, error)
	DeleteDraft(ctx context.Context, actor Actor, draftID uuid.UUID) error

	Submit(ctx context.Context, actor Actor) (*model.DistributionRequest, error)
	DecideItems(ctx context.Context, actor Actor, requestID uuid.UUID, input DecideItemsInput) (*model.DistributionRequest, error)
	ConfirmHandover(ctx context.Context, actor Actor, requestID uuid.UUID, input HandoverInput) (*model.DistributionRequest, error)

	ListPending(ctx context.Context) ([]model.DistributionRequest, error)
	ListForHandover(ctx context.Context) ([]model.DistributionRequest, error)
	ListMine(ctx context.Context, consumerID uuid.UUID) ([]model.DistributionRequest, error)
	ListCollected(ctx context.Context, actor Actor) ([]CollectedItemRow, error)
}

type distributionService struct {
	distributionRepo repository.DistributionRepository
	purchaseRepo     repository.PurchaseRepository
	materialRepo     repository.MaterialRepository
	draftRepo        repository.DraftRepository
	auditRepo        repository.AuditRepository
	txManager        repository.TransactionManager
	hub              *ws.Hub
}

func NewDistributionService(
	distributionRepo repository.DistributionRepository,
	purchaseRepo repository.PurchaseRepository,
	materialRepo repository.MaterialRepository,
	draftRepo repository.DraftRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) DistributionService {
	return &distributionService{
		distributionRepo: distributionRepo,
		purchaseRepo:     purchaseRepo,
		materialRepo:     materialRepo,
		draftRepo:        draftRepo,
		auditRepo:        auditRepo,
		txManager:        txManager,
		hub:              hub,
	}
}

// --- Drafts ---

func (s *distributionService) ListDrafts(ctx context.Context, actor Actor) ([]model.DraftItem, error) {
	if err := actor.require(model.RoleConsumer); err != nil {
		return nil, err
	}
	return s.draftRepo.ListByConsumer(ctx, actor.ID)
}

// availableByName nets stock per material name minus the consumer's drafts,
// optionally ignoring one draft (the one being edited).
func (s *distributionService) availableByName(ctx context.Context, consumerID uuid.UUID, excludeDraft uuid.UUID) (map[string]int, error) {
	purchases, err := s.purchaseRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	distributions, err := s.distributionRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	drafts, err := s.draftRepo.ListByConsumer(ctx, consumerID)
	if err != nil {
		return nil, err
	}

	available := make(map[string]int)
	for _, item := range BuildAvailabilityByName(purchases, distributions) {
		available[item.Name] = item.Quantity
	}
	for _, d := range drafts {
		if d.ID == excludeDraft {
			continue
		}
		available[d.Name] -= d.RequiredQuantity
	}
	return available, nil
}

func (s *distributionService) AddDraft(ctx context.Context, actor Actor, input DraftInput) (*model.DraftItem, error) {
	if err := actor.require(model.RoleConsumer); err != nil {
		return nil, err
	}
	return s.saveDraft(ctx, actor, nil, input)
}

func (s *distributionService) UpdateDraft(ctx context.Context, actor Actor, draftID uuid.UUID, input DraftInput) (*model.DraftItem, error) {
	if err := actor.require(model.RoleConsumer); err != nil {
		return nil, err
	}
	existing, err := s.draftRepo.FindByID(ctx, actor.ID, draftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.saveDraft(ctx, actor, existing, input)
}

// saveDraft validates a draft line against the catalog and current
// availability, then creates it (existing == nil) or updates it in place.
func (s *distributionService) saveDraft(ctx context.Context, actor Actor, existing *model.DraftItem, input DraftInput) (*model.DraftItem, error) {
	pending, err := s.distributionRepo.HasPendingForConsumer(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ValidationError("a submitted request is still pending approval")
	}

	material, err := s.materialRepo.FindByName(ctx, input.Name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validationf("material %q is not in the catalog", input.Name)
		}
		return nil, err
	}

	excludeDraft := uuid.Nil
	if existing != nil {
		excludeDraft = existing.ID
	}
	available, err := s.availableByName(ctx, actor.ID, excludeDraft)
	if err != nil {
		return nil, err
	}
	if input.RequiredQuantity > available[input.Name] {
		return nil, validationf("required quantity (%d) exceeds the available quantity of %d", input.RequiredQuantity, available[input.Name])
	}

	if existing == nil {
		draft := &model.DraftItem{
			ConsumerID:       actor.ID,
			Name:             material.Name,
			Type:             material.Type,
			Info:             material.Info,
			RequiredQuantity: input.RequiredQuantity,
		}
		if err := s.draftRepo.Create(ctx, draft); err != nil {
			return nil, fmt.Errorf("failed to save draft: %w", err)
		}
		return draft, nil
	}

	existing.Name = material.Name
	existing.Type = material.Type
	existing.Info = material.Info
	existing.RequiredQuantity = input.RequiredQuantity
	if err := s.draftRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return existing, nil
}

func (s *distributionService) DeleteDraft(ctx context.Context, actor Actor, draftID uuid.UUID) error {
	if err := actor.require(model.RoleConsumer); err != nil {
		return err
	}
	if _, err := s.draftRepo.FindByID(ctx, actor.ID, draftID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.draftRepo.Delete(ctx, actor.ID, draftID)
}

// --- Submission ---

// Submit turns the consumer's drafts into a pending distribution request and
// clears them, atomically. Every draft is re-validated against a fresh stock
// projection inside the transaction — availability shown at add-time may have
// been taken in the meantime.
func (s *distributionService) Submit(ctx context.Context, actor Actor) (*model.DistributionRequest, error) {
	if err := actor.require(model.RoleConsumer); err != nil {
		return nil, err
	}

	var request *model.DistributionRequest
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		drafts, err := s.draftRepo.ListByConsumer(txCtx, actor.ID)
		if err != nil {
			return err
		}
		if len(drafts) == 0 {
			return ValidationError("add at least one item before submitting")
		}

		pending, err := s.distributionRepo.HasPendingForConsumer(txCtx, actor.ID)
		if err != nil {
			return err
		}
		if pending {
			return ValidationError("a submitted request is still pending approval")
		}

		purchases, err := s.purchaseRepo.ListAll(txCtx)
		if err != nil {
			return err
		}
		distributions, err := s.distributionRepo.ListAll(txCtx)
		if err != nil {
			return err
		}
		available := make(map[string]int)
		for _, item := range BuildAvailabilityByName(purchases, distributions) {
			available[item.Name] = item.Quantity
		}

		wanted := make(map[string]int)
		items := make([]model.DistributionItem, 0, len(drafts))
		for i, d := range drafts {
			wanted[d.Name] += d.RequiredQuantity
			if wanted[d.Name] > available[d.Name] {
				return validationf("only %d of %q is available", available[d.Name], d.Name)
			}
			items = append(items, model.DistributionItem{
				LineNo:           i,
				Name:             d.Name,
				Type:             d.Type,
				Info:             d.Info,
				RequiredQuantity: d.RequiredQuantity,
				Status:           model.ItemPending,
			})
		}

		request = &model.DistributionRequest{
			ConsumerID: actor.ID,
			Status:     model.StatusPending,
			Items:      items,
		}
		if err := s.distributionRepo.Create(txCtx, request); err != nil {
			return fmt.Errorf("failed to create distribution request: %w", err)
		}
		if err := s.draftRepo.DeleteAllByConsumer(txCtx, actor.ID); err != nil {
			return fmt.Errorf("failed to clear drafts: %w", err)
		}

		details, _ := json.Marshal(map[string]interface{}{"items": len(items)})
		audit := &model.AuditLog{
			UserID:   &actor.ID,
			Action:   model.ActionSubmitDistributionRequest,
			EntityID: request.ID.String(),
			Details:  string(details),
		}
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	notify(s.hub, EventDistributionChanged, EventStockChanged)
	return request, nil
}

// --- Approval ---

func (s *distributionService) DecideItems(ctx context.Context, actor Actor, requestID uuid.UUID, input DecideItemsInput) (*model.DistributionRequest, error) {
	if err := actor.require(model.RoleApprover); err != nil {
		return nil, err
	}
	for _, d := range input.Decisions {
		if d.Status == model.ItemRejected && d.Remarks == "" {
			return nil, validationf("remarks are required to reject line %d", d.LineNo)
		}
	}

	var request *model.DistributionRequest
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		request, err = s.distributionRepo.FindByIDForUpdate(txCtx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to read distribution request: %w", err)
		}

		byLine := make(map[int]*model.DistributionItem, len(request.Items))
		for i := range request.Items {
			byLine[request.Items[i].LineNo] = &request.Items[i]
		}

		for _, d := range input.Decisions {
			item, ok := byLine[d.LineNo]
			if !ok {
				return validationf("line %d does not exist on this request", d.LineNo)
			}
			if item.Status != model.ItemPending {
				return validationf("line %d is already %s", d.LineNo, item.Status)
			}
			item.Status = d.Status
			item.Remarks = d.Remarks
			if err := s.distributionRepo.UpdateItem(txCtx, item); err != nil {
				return fmt.Errorf("failed to update line %d: %w", d.LineNo, err)
			}
		}

		request.Status = FoldOverallStatus(distributionItemStatuses(request.Items))
		if err := s.distributionRepo.UpdateStatus(txCtx, request.ID, request.Status); err != nil {
			return fmt.Errorf("failed to update request status: %w", err)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"decisions": len(input.Decisions),
			"status":    request.Status,
		})
		audit := &model.AuditLog{
			UserID:   &actor.ID,
			Action:   model.ActionDecideDistributionItems,
			EntityID: request.ID.String(),
			Details:  string(details),
		}
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	notify(s.hub, EventDistributionChanged, EventStockChanged)
	return request, nil
}

// --- Handover ---

// ConfirmHandover records the physical outcome of one approved line. A
// collected returnable line binds the chosen serial/model and inherits the
// unit's condition from its purchase record; once every line is collected or
// rejected the request folds to completed.
func (s *distributionService) ConfirmHandover(ctx context.Context, actor Actor, requestID uuid.UUID, input HandoverInput) (*model.DistributionRequest, error) {
	if err := actor.require(model.RoleCaseworker); err != nil {
		return nil, err
	}
	if input.Outcome == model.ItemCollected && input.MessengerName == "" {
		return nil, ValidationError("messenger name is required to confirm collection")
	}

	var request *model.DistributionRequest
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		request, err = s.distributionRepo.FindByIDForUpdate(txCtx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to read distribution request: %w", err)
		}

		var item *model.DistributionItem
		for i := range request.Items {
			if request.Items[i].LineNo == input.LineNo {
				item = &request.Items[i]
				break
			}
		}
		if item == nil {
			return validationf("line %d does not exist on this request", input.LineNo)
		}
		if item.Status != model.ItemApproved {
			return validationf("line %d is %s; only approved lines can be handed over", input.LineNo, item.Status)
		}

		if input.Outcome == model.ItemCollected {
			now := time.Now()
			item.Status = model.ItemCollected
			item.DateTaken = &now
			item.MessengerName = input.MessengerName

			if item.Type == model.MaterialReturnable {
				if input.SerialNumber == "" || input.ModelNumber == "" {
					return ValidationError("select a serial and model number for this returnable item")
				}
				unit, err := s.lookupAvailableUnit(txCtx, item.Name, input.SerialNumber, input.ModelNumber)
				if err != nil {
					return err
				}
				item.SerialNumber = unit.SerialNumber
				item.ModelNumber = unit.ModelNumber
				item.ProductCondition = unit.ProductCondition
			}
		} else {
			item.Status = model.ItemRejected
			item.Remarks = input.Remarks
		}

		if err := s.distributionRepo.UpdateItem(txCtx, item); err != nil {
			return fmt.Errorf("failed to update line %d: %w", input.LineNo, err)
		}

		if IsComplete(distributionItemStatuses(request.Items)) {
			request.Status = model.StatusCompleted
			if err := s.distributionRepo.UpdateStatus(txCtx, request.ID, request.Status); err != nil {
				return fmt.Errorf("failed to update request status: %w", err)
			}
		}

		details, _ := json.Marshal(map[string]interface{}{
			"line_no": input.LineNo,
			"outcome": input.Outcome,
			"serial":  input.SerialNumber,
		})
		audit := &model.AuditLog{
			UserID:     &actor.ID,
			Action:     model.ActionConfirmHandover,
			EntityID:   request.ID.String(),
			EntityName: item.Name,
			Details:    string(details),
		}
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	notify(s.hub, EventDistributionChanged, EventStockChanged)
	return request, nil
}

// lookupAvailableUnit checks that the chosen serialized unit is actually free
// right now and returns its stock entry (which carries the unit's condition).
func (s *distributionService) lookupAvailableUnit(ctx context.Context, name, serial, modelNo string) (*StockItem, error) {
	purchases, err := s.purchaseRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	distributions, err := s.distributionRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, unit := range BuildAvailability(purchases, distributions) {
		if unit.Type == model.MaterialReturnable && unit.Name == name &&
			unit.SerialNumber == serial && unit.ModelNumber == modelNo {
			return &unit, nil
		}
	}
	return nil, validationf("unit %s/%s of %q is not available", serial, modelNo, name)
}

// --- Listings ---

func (s *distributionService) ListPending(ctx context.Context) ([]model.DistributionRequest, error) {
	return s.distributionRepo.ListByStatus(ctx, []string{model.StatusPending, model.StatusPartiallyApproved})
}

func (s *distributionService) ListForHandover(ctx context.Context) ([]model.DistributionRequest, error) {
	return s.distributionRepo.ListByStatus(ctx, []string{model.StatusApproved, model.StatusPartiallyApproved})
}

func (s *distributionService) ListMine(ctx context.Context, consumerID uuid.UUID) ([]model.DistributionRequest, error) {
	return s.distributionRepo.ListByConsumer(ctx, consumerID)
}

// ListCollected flattens every collected line across all consumers into the
// collected-items report, returnable and non-returnable alike.
func (s *distributionService) ListCollected(ctx context.Context, actor Actor) ([]CollectedItemRow, error) {
	if err := actor.require(model.RoleCaseworker); err != nil {
		return nil, err
	}
	distributions, err := s.distributionRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]CollectedItemRow, 0)
	for _, req := range distributions {
		for _, item := range req.Items {
			if item.Status != model.ItemCollected {
				continue
			}
			row := CollectedItemRow{
				DistributionRequestID: req.ID,
				ConsumerID:            req.ConsumerID,
				Name:                  item.Name,
				Type:                  item.Type,
				Quantity:              item.RequiredQuantity,
				SerialNumber:          item.SerialNumber,
				ModelNumber:           item.ModelNumber,
				ProductCondition:      item.ProductCondition,
				DateTaken:             item.DateTaken,
				MessengerName:         item.MessengerName,
			}
			if req.Consumer != nil {
				row.ConsumerName = req.Consumer.Name
				row.Designation = req.Consumer.Designation
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}
