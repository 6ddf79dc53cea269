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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

// ReturnableUnitInput describes one physical unit entered during bulk entry of
// a returnable material.
type ReturnableUnitInput struct {
	SerialNumber     string `json:"serial_number" binding:"required"`
	ModelNumber      string `json:"model_number" binding:"required"`
	ProductCondition string `json:"product_condition" binding:"required"`
}

// PurchaseLineInput is one material entry on the vendor bill. For returnable
// materials Units must carry exactly Quantity entries; the line is expanded
// into one item per unit.
type PurchaseLineInput struct {
	Name     string                `json:"name" binding:"required"`
	Quantity int                   `json:"quantity" binding:"required,gt=0"`
	UnitCost string                `json:"unit_cost" binding:"required"`
	Units    []ReturnableUnitInput `json:"units"`
}

type SubmitPurchaseInput struct {
	VendorName    string              `json:"vendor_name" binding:"required"`
	VendorPhone   string              `json:"vendor_phone" binding:"required"`
	VendorAddress string              `json:"vendor_address" binding:"required"`
	BillNumber    string              `json:"bill_number" binding:"required"`
	BillDate      string              `json:"bill_date" binding:"required"` // YYYY-MM-DD
	GSTNumber     string              `json:"gst_number" binding:"required"`
	GSTAmount     string              `json:"gst_amount" binding:"required"`
	Items         []PurchaseLineInput `json:"items" binding:"required,min=1,dive"`
}

// ItemDecision is one approver decision within a batch, addressed by line
// number rather than a concatenated string key.
type ItemDecision struct {
	LineNo  int    `json:"line_no"`
	Status  string `json:"status" binding:"required,oneof=approved rejected"`
	Remarks string `json:"remarks"`
}

type DecideItemsInput struct {
	Decisions []ItemDecision `json:"decisions" binding:"required,min=1,dive"`
}

// RejectedCaseRow is one line of the caseworker's rejected-cases report.
type RejectedCaseRow struct {
	VendorName   string          `json:"vendor_name"`
	BillNumber   string          `json:"bill_number"`
	BillDate     time.Time       `json:"bill_date"`
	Name         string          `json:"name"`
	SerialNumber string          `json:"serial_number,omitempty"`
	ModelNumber  string          `json:"model_number,omitempty"`
	Quantity     int             `json:"quantity"`
	Cost         decimal.Decimal `json:"cost"`
	Remarks      string          `json:"remarks"`
}

// --- Interface ---

type PurchaseService interface {
	Submit(ctx context.Context, actor Actor, input SubmitPurchaseInput) (*model.PurchaseRequest, error)
	DecideItems(ctx context.Context, actor Actor, requestID uuid.UUID, input DecideItemsInput) (*model.PurchaseRequest, error)
	ListPending(ctx context.Context) ([]model.PurchaseRequest, error)
	ListMine(ctx context.Context, caseworkerID uuid.UUID) ([]model.PurchaseRequest, error)
	ListRejectedCases(ctx context.Context) ([]RejectedCaseRow, error)
}

type purchaseService struct {
	purchaseRepo repository.PurchaseRepository
	materialRepo repository.MaterialRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	hub          *ws.Hub
}

func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	materialRepo repository.MaterialRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) PurchaseService {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		materialRepo: materialRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		hub:          hub,
	}
}

// --- Implementation ---

// Submit validates the vendor bill and creates a pending purchase request.
// Returnable lines expand into one item per physical unit so each serial is
// independently trackable through approval and stock.
func (s *purchaseService) Submit(ctx context.Context, actor Actor, input SubmitPurchaseInput) (*model.PurchaseRequest, error) {
	if err := actor.require(model.RoleCaseworker); err != nil {
		return nil, err
	}
	if len(input.Items) == 0 {
		return nil, ValidationError("the bill must carry at least one item")
	}

	billDate, err := time.Parse("2006-01-02", input.BillDate)
	if err != nil {
		return nil, validationf("invalid bill date: %s", input.BillDate)
	}
	if billDate.After(time.Now()) {
		return nil, ValidationError("bill date must not be in the future")
	}

	gstAmount, err := decimal.NewFromString(input.GSTAmount)
	if err != nil || gstAmount.IsNegative() {
		return nil, validationf("invalid GST amount: %s", input.GSTAmount)
	}

	var items []model.PurchaseItem
	total := gstAmount
	lineNo := 0

	for _, line := range input.Items {
		material, err := s.materialRepo.FindByName(ctx, line.Name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, validationf("material %q is not in the catalog", line.Name)
			}
			return nil, fmt.Errorf("failed to look up material: %w", err)
		}

		unitCost, err := decimal.NewFromString(line.UnitCost)
		if err != nil || unitCost.IsNegative() {
			return nil, validationf("invalid cost for %q", line.Name)
		}

		if material.Type == model.MaterialReturnable {
			if len(line.Units) != line.Quantity {
				return nil, validationf("returnable material %q needs %d serialized units, got %d", line.Name, line.Quantity, len(line.Units))
			}
			for _, unit := range line.Units {
				if !model.ValidCondition(unit.ProductCondition) {
					return nil, validationf("invalid product condition %q", unit.ProductCondition)
				}
				items = append(items, model.PurchaseItem{
					LineNo:           lineNo,
					Name:             material.Name,
					Type:             material.Type,
					Info:             material.Info,
					Quantity:         1,
					Cost:             unitCost,
					Status:           model.ItemPending,
					SerialNumber:     unit.SerialNumber,
					ModelNumber:      unit.ModelNumber,
					ProductCondition: unit.ProductCondition,
				})
				total = total.Add(unitCost)
				lineNo++
			}
			continue
		}

		lineCost := unitCost.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, model.PurchaseItem{
			LineNo:   lineNo,
			Name:     material.Name,
			Type:     material.Type,
			Info:     material.Info,
			Quantity: line.Quantity,
			Cost:     lineCost,
			Status:   model.ItemPending,
		})
		total = total.Add(lineCost)
		lineNo++
	}

	request := &model.PurchaseRequest{
		VendorName:    input.VendorName,
		VendorPhone:   input.VendorPhone,
		VendorAddress: input.VendorAddress,
		BillNumber:    input.BillNumber,
		BillDate:      billDate,
		GSTNumber:     input.GSTNumber,
		GSTAmount:     gstAmount,
		TotalAmount:   total,
		CaseworkerID:  actor.ID,
		Status:        model.StatusPending,
		Items:         items,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.purchaseRepo.Create(txCtx, request); err != nil {
			return fmt.Errorf("failed to create purchase request: %w", err)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"vendor_name": input.VendorName,
			"bill_number": input.BillNumber,
			"items":       len(items),
		})
		audit := &model.AuditLog{
			UserID:     &actor.ID,
			Action:     model.ActionSubmitPurchaseRequest,
			EntityID:   request.ID.String(),
			EntityName: input.VendorName,
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

	notify(s.hub, EventPurchaseChanged)
	return request, nil
}

// DecideItems applies a batch of approve/reject decisions to a purchase
// request and folds the overall status. The request is re-read under lock
// inside the transaction so two approvers working on disjoint item sets never
// clobber each other's decisions.
func (s *purchaseService) DecideItems(ctx context.Context, actor Actor, requestID uuid.UUID, input DecideItemsInput) (*model.PurchaseRequest, error) {
	if err := actor.require(model.RoleApprover); err != nil {
		return nil, err
	}
	for _, d := range input.Decisions {
		if d.Status == model.ItemRejected && d.Remarks == "" {
			return nil, validationf("remarks are required to reject line %d", d.LineNo)
		}
	}

	var request *model.PurchaseRequest
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		request, err = s.purchaseRepo.FindByIDForUpdate(txCtx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to read purchase request: %w", err)
		}

		byLine := make(map[int]*model.PurchaseItem, len(request.Items))
		for i := range request.Items {
			byLine[request.Items[i].LineNo] = &request.Items[i]
		}

		for _, d := range input.Decisions {
			item, ok := byLine[d.LineNo]
			if !ok {
				return validationf("line %d does not exist on this request", d.LineNo)
			}
			// Statuses only move forward; a decided line is final.
			if item.Status != model.ItemPending {
				return validationf("line %d is already %s", d.LineNo, item.Status)
			}
			item.Status = d.Status
			item.Remarks = d.Remarks
			if err := s.purchaseRepo.UpdateItem(txCtx, item); err != nil {
				return fmt.Errorf("failed to update line %d: %w", d.LineNo, err)
			}
		}

		request.Status = FoldOverallStatus(purchaseItemStatuses(request.Items))
		if err := s.purchaseRepo.UpdateStatus(txCtx, request.ID, request.Status); err != nil {
			return fmt.Errorf("failed to update request status: %w", err)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"decisions": len(input.Decisions),
			"status":    request.Status,
		})
		audit := &model.AuditLog{
			UserID:     &actor.ID,
			Action:     model.ActionDecidePurchaseItems,
			EntityID:   request.ID.String(),
			EntityName: request.VendorName,
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

	notify(s.hub, EventPurchaseChanged, EventStockChanged)
	return request, nil
}

func (s *purchaseService) ListPending(ctx context.Context) ([]model.PurchaseRequest, error) {
	return s.purchaseRepo.ListByStatus(ctx, []string{model.StatusPending, model.StatusPartiallyApproved})
}

func (s *purchaseService) ListMine(ctx context.Context, caseworkerID uuid.UUID) ([]model.PurchaseRequest, error) {
	return s.purchaseRepo.ListByCaseworker(ctx, caseworkerID)
}

// ListRejectedCases flattens rejected line items across all requests together
// with their vendor metadata, for the caseworker's rejected-cases view.
func (s *purchaseService) ListRejectedCases(ctx context.Context) ([]RejectedCaseRow, error) {
	requests, err := s.purchaseRepo.ListByStatus(ctx, []string{model.StatusRejected, model.StatusPartiallyApproved})
	if err != nil {
		return nil, err
	}

	rows := make([]RejectedCaseRow, 0)
	for _, req := range requests {
		for _, item := range req.Items {
			if item.Status != model.ItemRejected {
				continue
			}
			rows = append(rows, RejectedCaseRow{
				VendorName:   req.VendorName,
				BillNumber:   req.BillNumber,
				BillDate:     req.BillDate,
				Name:         item.Name,
				SerialNumber: item.SerialNumber,
				ModelNumber:  item.ModelNumber,
				Quantity:     item.Quantity,
				Cost:         item.Cost,
				Remarks:      item.Remarks,
			})
		}
	}
	return rows, nil
}
