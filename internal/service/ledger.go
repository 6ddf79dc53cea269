package service

import (
	"context"
	"sort"

	"material-store/internal/model"
	"material-store/internal/repository"

	"github.com/google/uuid"
)

// StockKey identifies one stock bucket. Non-returnable materials aggregate by
// name alone; returnable units are tracked per (name, serial, model).
type StockKey struct {
	Name         string
	SerialNumber string
	ModelNumber  string
}

// StockItem is one row of the availability projection.
type StockItem struct {
	Name             string `json:"name"`
	Type             string `json:"type"`
	Info             string `json:"info"`
	SerialNumber     string `json:"serial_number,omitempty"`
	ModelNumber      string `json:"model_number,omitempty"`
	ProductCondition string `json:"product_condition,omitempty"`
	Quantity         int    `json:"quantity"`
}

func keyFor(name, typ, serial, modelNo string) StockKey {
	if typ == model.MaterialReturnable {
		return StockKey{Name: name, SerialNumber: serial, ModelNumber: modelNo}
	}
	return StockKey{Name: name}
}

// BuildAvailability is the pure read-side projection behind every stock view:
// approved supply minus committed demand per stock key, positive balances
// only. It never goes negative in the presented result — exhausted keys are
// dropped.
//
// Supply counts line items with status approved inside purchase requests
// whose overall status is approved or partially-approved. Demand counts every
// distribution line that is not rejected (pending and approved lines hold
// stock just like collected ones).
func BuildAvailability(purchases []model.PurchaseRequest, distributions []model.DistributionRequest) []StockItem {
	supply := make(map[StockKey]StockItem)

	for _, req := range purchases {
		if req.Status != model.StatusApproved && req.Status != model.StatusPartiallyApproved {
			continue
		}
		for _, item := range req.Items {
			if item.Status != model.ItemApproved {
				continue
			}
			key := keyFor(item.Name, item.Type, item.SerialNumber, item.ModelNumber)
			entry, ok := supply[key]
			if !ok {
				info := item.Info
				if info == "" {
					info = "N/A"
				}
				entry = StockItem{
					Name:             item.Name,
					Type:             item.Type,
					Info:             info,
					SerialNumber:     item.SerialNumber,
					ModelNumber:      item.ModelNumber,
					ProductCondition: item.ProductCondition,
				}
			}
			entry.Quantity += item.Quantity
			supply[key] = entry
		}
	}

	demand := make(map[StockKey]int)
	for _, req := range distributions {
		for _, item := range req.Items {
			if item.Status == model.ItemRejected {
				continue
			}
			key := keyFor(item.Name, item.Type, item.SerialNumber, item.ModelNumber)
			demand[key] += item.RequiredQuantity
		}
	}

	out := make([]StockItem, 0, len(supply))
	for key, entry := range supply {
		entry.Quantity -= demand[key]
		if entry.Quantity > 0 {
			out = append(out, entry)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].SerialNumber < out[j].SerialNumber
	})

	return out
}

// BuildAvailabilityByName nets approved supply against committed demand per
// material name, ignoring unit identity. This is the shape the consumer
// request form validates against: distribution lines for returnable materials
// carry no serial until handover, so only name-level accounting can charge
// them against stock.
func BuildAvailabilityByName(purchases []model.PurchaseRequest, distributions []model.DistributionRequest) []StockItem {
	supply := make(map[string]StockItem)

	for _, req := range purchases {
		if req.Status != model.StatusApproved && req.Status != model.StatusPartiallyApproved {
			continue
		}
		for _, item := range req.Items {
			if item.Status != model.ItemApproved {
				continue
			}
			entry, ok := supply[item.Name]
			if !ok {
				info := item.Info
				if info == "" {
					info = "N/A"
				}
				entry = StockItem{Name: item.Name, Type: item.Type, Info: info}
			}
			entry.Quantity += item.Quantity
			supply[item.Name] = entry
		}
	}

	demand := make(map[string]int)
	for _, req := range distributions {
		for _, item := range req.Items {
			if item.Status == model.ItemRejected {
				continue
			}
			demand[item.Name] += item.RequiredQuantity
		}
	}

	out := make([]StockItem, 0, len(supply))
	for name, entry := range supply {
		entry.Quantity -= demand[name]
		if entry.Quantity > 0 {
			out = append(out, entry)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LedgerService answers "how much of material X is free to distribute right
// now". It is advisory, not a reservation system: the projection is recomputed
// from the persisted requests on every call, and submission re-validates
// against a fresh projection inside the transaction.
type LedgerService interface {
	Stock(ctx context.Context) ([]StockItem, error)
	AvailableForConsumer(ctx context.Context, consumerID uuid.UUID) ([]StockItem, error)
	AvailableSerials(ctx context.Context, materialName string) ([]StockItem, error)
}

type ledgerService struct {
	purchaseRepo     repository.PurchaseRepository
	distributionRepo repository.DistributionRepository
	draftRepo        repository.DraftRepository
}

func NewLedgerService(
	purchaseRepo repository.PurchaseRepository,
	distributionRepo repository.DistributionRepository,
	draftRepo repository.DraftRepository,
) LedgerService {
	return &ledgerService{
		purchaseRepo:     purchaseRepo,
		distributionRepo: distributionRepo,
		draftRepo:        draftRepo,
	}
}

func (s *ledgerService) project(ctx context.Context) ([]StockItem, error) {
	purchases, err := s.purchaseRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	distributions, err := s.distributionRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildAvailability(purchases, distributions), nil
}

func (s *ledgerService) Stock(ctx context.Context) ([]StockItem, error) {
	return s.project(ctx)
}

func (s *ledgerService) projectByName(ctx context.Context) ([]StockItem, error) {
	purchases, err := s.purchaseRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	distributions, err := s.distributionRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildAvailabilityByName(purchases, distributions), nil
}

// AvailableForConsumer additionally subtracts the consumer's own unsubmitted
// drafts, so the request form never offers stock the consumer has already
// spoken for in the same draft list.
func (s *ledgerService) AvailableForConsumer(ctx context.Context, consumerID uuid.UUID) ([]StockItem, error) {
	byName, err := s.projectByName(ctx)
	if err != nil {
		return nil, err
	}
	drafts, err := s.draftRepo.ListByConsumer(ctx, consumerID)
	if err != nil {
		return nil, err
	}

	drafted := make(map[string]int)
	for _, d := range drafts {
		drafted[d.Name] += d.RequiredQuantity
	}

	out := make([]StockItem, 0, len(byName))
	for _, item := range byName {
		item.Quantity -= drafted[item.Name]
		if item.Quantity > 0 {
			out = append(out, item)
		}
	}
	return out, nil
}

// AvailableSerials lists the free returnable units of one material, for the
// serial picker shown at handover time.
func (s *ledgerService) AvailableSerials(ctx context.Context, materialName string) ([]StockItem, error) {
	stock, err := s.project(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]StockItem, 0)
	for _, item := range stock {
		if item.Name == materialName && item.Type == model.MaterialReturnable {
			out = append(out, item)
		}
	}
	return out, nil
}
