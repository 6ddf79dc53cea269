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

// CollectedUnit is one returnable unit currently out with a consumer, as shown
// on the caseworker's verification screen.
type CollectedUnit struct {
	DistributionRequestID uuid.UUID `json:"distribution_request_id"`
	ConsumerID            uuid.UUID `json:"consumer_id"`
	ConsumerName          string    `json:"consumer_name,omitempty"`
	Name                  string    `json:"name"`
	SerialNumber          string    `json:"serial_number"`
	ModelNumber           string    `json:"model_number"`
	ProductCondition      string    `json:"product_condition"`
}

// ProposedCondition is the caseworker's proposed condition for one unit,
// addressed by the owning distribution request and serial number. Units the
// caseworker left untouched are simply not sent.
type ProposedCondition struct {
	DistributionRequestID uuid.UUID `json:"distribution_request_id" binding:"required"`
	SerialNumber          string    `json:"serial_number" binding:"required"`
	NewCondition          string    `json:"new_condition" binding:"required"`
}

type ProposeVerificationInput struct {
	Items []ProposedCondition `json:"items" binding:"required,min=1,dive"`
}

// ResolveVerificationInput is the approver's verdict. "approved" confirms
// every condition on record; "verified-changed" accepts the proposals and
// requires the date the physical check took place.
type ResolveVerificationInput struct {
	Outcome      string `json:"outcome" binding:"required,oneof=approved verified-changed"`
	VerifiedDate string `json:"verified_date"` // YYYY-MM-DD, required for verified-changed
}

// --- Interface ---

type VerificationService interface {
	ListCollectedUnits(ctx context.Context, actor Actor) ([]CollectedUnit, error)
	Propose(ctx context.Context, actor Actor, input ProposeVerificationInput) (*model.VerificationRequest, error)
	Resolve(ctx context.Context, actor Actor, requestID uuid.UUID, input ResolveVerificationInput) (*model.VerificationRequest, error)
	ListPending(ctx context.Context) ([]model.VerificationRequest, error)
	ListHistory(ctx context.Context) ([]model.VerificationRequest, error)
}

type verificationService struct {
	verificationRepo repository.VerificationRepository
	distributionRepo repository.DistributionRepository
	auditRepo        repository.AuditRepository
	txManager        repository.TransactionManager
	hub              *ws.Hub
}

func NewVerificationService(
	verificationRepo repository.VerificationRepository,
	distributionRepo repository.DistributionRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) VerificationService {
	return &verificationService{
		verificationRepo: verificationRepo,
		distributionRepo: distributionRepo,
		auditRepo:        auditRepo,
		txManager:        txManager,
		hub:              hub,
	}
}

// --- Implementation ---

// ListCollectedUnits returns every collected returnable unit across all
// distribution requests. Non-returnable items are consumed on handover and
// never come back for inspection.
func (s *verificationService) ListCollectedUnits(ctx context.Context, actor Actor) ([]CollectedUnit, error) {
	if err := actor.require(model.RoleCaseworker); err != nil {
		return nil, err
	}
	distributions, err := s.distributionRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	units := make([]CollectedUnit, 0)
	for _, req := range distributions {
		for _, item := range req.Items {
			if item.Status != model.ItemCollected || item.Type != model.MaterialReturnable {
				continue
			}
			unit := CollectedUnit{
				DistributionRequestID: req.ID,
				ConsumerID:            req.ConsumerID,
				Name:                  item.Name,
				SerialNumber:          item.SerialNumber,
				ModelNumber:           item.ModelNumber,
				ProductCondition:      item.ProductCondition,
			}
			if req.Consumer != nil {
				unit.ConsumerName = req.Consumer.Name
			}
			units = append(units, unit)
		}
	}
	return units, nil
}

// Propose snapshots the selected units with their proposed conditions into a
// pending verification request for approver sign-off. Conditions on record are
// captured at proposal time; nothing is written back until the request is
// resolved as verified-changed.
func (s *verificationService) Propose(ctx context.Context, actor Actor, input ProposeVerificationInput) (*model.VerificationRequest, error) {
	if err := actor.require(model.RoleCaseworker); err != nil {
		return nil, err
	}
	if len(input.Items) == 0 {
		return nil, ValidationError("select at least one unit to verify")
	}
	for _, p := range input.Items {
		if !model.ValidCondition(p.NewCondition) {
			return nil, validationf("invalid product condition %q", p.NewCondition)
		}
	}

	var request *model.VerificationRequest
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		items := make([]model.VerificationItem, 0, len(input.Items))
		for _, p := range input.Items {
			dist, err := s.distributionRepo.FindByIDWithItems(txCtx, p.DistributionRequestID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return validationf("distribution request %s does not exist", p.DistributionRequestID)
				}
				return fmt.Errorf("failed to read distribution request: %w", err)
			}

			var unit *model.DistributionItem
			for i := range dist.Items {
				it := &dist.Items[i]
				if it.Status == model.ItemCollected && it.Type == model.MaterialReturnable && it.SerialNumber == p.SerialNumber {
					unit = it
					break
				}
			}
			if unit == nil {
				return validationf("no collected unit with serial %q on request %s", p.SerialNumber, p.DistributionRequestID)
			}

			items = append(items, model.VerificationItem{
				DistributionRequestID: dist.ID,
				ConsumerID:            dist.ConsumerID,
				Name:                  unit.Name,
				SerialNumber:          unit.SerialNumber,
				ModelNumber:           unit.ModelNumber,
				ProductCondition:      unit.ProductCondition,
				NewCondition:          p.NewCondition,
			})
		}

		request = &model.VerificationRequest{
			CaseworkerID: actor.ID,
			Status:       model.VerificationPending,
			Items:        items,
		}
		if err := s.verificationRepo.Create(txCtx, request); err != nil {
			return fmt.Errorf("failed to create verification request: %w", err)
		}

		details, _ := json.Marshal(map[string]interface{}{"units": len(items)})
		audit := &model.AuditLog{
			UserID:   &actor.ID,
			Action:   model.ActionSubmitVerification,
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

	notify(s.hub, EventVerificationChanged)
	return request, nil
}

// Resolve closes a pending verification request.
//
// An approved verdict only flips the status: every unit keeps its condition on
// record. A verified-changed verdict stamps the changed units and writes the
// confirmed conditions back onto the owning distribution items, so later stock
// views and future verifications see the new condition. All reads happen
// before the first write: the verification request and every referenced
// distribution request are loaded under lock up front, then patched together.
func (s *verificationService) Resolve(ctx context.Context, actor Actor, requestID uuid.UUID, input ResolveVerificationInput) (*model.VerificationRequest, error) {
	if err := actor.require(model.RoleApprover); err != nil {
		return nil, err
	}

	var verifiedDate time.Time
	if input.Outcome == model.VerificationChanged {
		var err error
		verifiedDate, err = time.Parse("2006-01-02", input.VerifiedDate)
		if err != nil {
			return nil, validationf("invalid verified date: %s", input.VerifiedDate)
		}
		if verifiedDate.After(time.Now()) {
			return nil, ValidationError("verified date must not be in the future")
		}
	}

	var request *model.VerificationRequest
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		request, err = s.verificationRepo.FindByIDForUpdate(txCtx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to read verification request: %w", err)
		}
		if request.Status != model.VerificationPending {
			return validationf("verification request is already %s", request.Status)
		}

		if input.Outcome == model.VerificationApproved {
			request.Status = model.VerificationApproved
			if err := s.verificationRepo.UpdateStatus(txCtx, request.ID, request.Status); err != nil {
				return fmt.Errorf("failed to update request status: %w", err)
			}
			return s.logResolution(txCtx, actor, request, 0)
		}

		// Lock every referenced distribution request before writing anything.
		distributions := make(map[uuid.UUID]*model.DistributionRequest)
		for _, item := range request.Items {
			if _, ok := distributions[item.DistributionRequestID]; ok {
				continue
			}
			dist, err := s.distributionRepo.FindByIDForUpdate(txCtx, item.DistributionRequestID)
			if err != nil {
				return fmt.Errorf("failed to read distribution request %s: %w", item.DistributionRequestID, err)
			}
			distributions[item.DistributionRequestID] = dist
		}

		changed := 0
		for i := range request.Items {
			item := &request.Items[i]
			if item.NewCondition == item.ProductCondition {
				continue
			}

			item.Remarks = model.RemarkVerifiedChanged
			item.VerifiedDate = &verifiedDate
			if err := s.verificationRepo.UpdateItem(txCtx, item); err != nil {
				return fmt.Errorf("failed to update verification item: %w", err)
			}

			dist := distributions[item.DistributionRequestID]
			patched := false
			for j := range dist.Items {
				unit := &dist.Items[j]
				if unit.SerialNumber != item.SerialNumber || unit.Status != model.ItemCollected {
					continue
				}
				unit.ProductCondition = item.NewCondition
				if err := s.distributionRepo.UpdateItem(txCtx, unit); err != nil {
					return fmt.Errorf("failed to update distribution item: %w", err)
				}
				patched = true
				break
			}
			if !patched {
				return validationf("unit %q is no longer collected on request %s", item.SerialNumber, item.DistributionRequestID)
			}
			changed++
		}

		request.Status = model.VerificationChanged
		if err := s.verificationRepo.UpdateStatus(txCtx, request.ID, request.Status); err != nil {
			return fmt.Errorf("failed to update request status: %w", err)
		}
		return s.logResolution(txCtx, actor, request, changed)
	})
	if err != nil {
		return nil, err
	}

	notify(s.hub, EventVerificationChanged, EventDistributionChanged, EventStockChanged)
	return request, nil
}

func (s *verificationService) logResolution(ctx context.Context, actor Actor, request *model.VerificationRequest, changed int) error {
	details, _ := json.Marshal(map[string]interface{}{
		"status":  request.Status,
		"changed": changed,
	})
	audit := &model.AuditLog{
		UserID:   &actor.ID,
		Action:   model.ActionResolveVerification,
		EntityID: request.ID.String(),
		Details:  string(details),
	}
	if err := s.auditRepo.Log(ctx, audit); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func (s *verificationService) ListPending(ctx context.Context) ([]model.VerificationRequest, error) {
	return s.verificationRepo.ListByStatus(ctx, []string{model.VerificationPending})
}

func (s *verificationService) ListHistory(ctx context.Context) ([]model.VerificationRequest, error) {
	return s.verificationRepo.ListHistory(ctx)
}
