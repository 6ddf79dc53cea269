package service

import (
	"testing"

	"material-store/internal/model"
)

func purchase(status string, items ...model.PurchaseItem) model.PurchaseRequest {
	return model.PurchaseRequest{Status: status, Items: items}
}

func distribution(status string, items ...model.DistributionItem) model.DistributionRequest {
	return model.DistributionRequest{Status: status, Items: items}
}

func TestBuildAvailabilitySupplyOnly(t *testing.T) {
	purchases := []model.PurchaseRequest{
		purchase(model.StatusApproved,
			model.PurchaseItem{Name: "A4 Paper", Type: model.MaterialNonReturnable, Quantity: 50, Status: model.ItemApproved},
			model.PurchaseItem{Name: "Stapler", Type: model.MaterialNonReturnable, Quantity: 5, Status: model.ItemRejected},
		),
		// Pending requests contribute nothing, even with approved-looking lines
		purchase(model.StatusPending,
			model.PurchaseItem{Name: "A4 Paper", Type: model.MaterialNonReturnable, Quantity: 100, Status: model.ItemApproved},
		),
	}

	stock := BuildAvailability(purchases, nil)
	if len(stock) != 1 {
		t.Fatalf("expected 1 stock row, got %d: %+v", len(stock), stock)
	}
	if stock[0].Name != "A4 Paper" || stock[0].Quantity != 50 {
		t.Errorf("got %+v, want A4 Paper x50", stock[0])
	}
}

func TestBuildAvailabilityReturnableUnits(t *testing.T) {
	purchases := []model.PurchaseRequest{
		purchase(model.StatusPartiallyApproved,
			model.PurchaseItem{Name: "Laptop", Type: model.MaterialReturnable, Quantity: 1, Status: model.ItemApproved, SerialNumber: "SN-1", ModelNumber: "M1", ProductCondition: model.ConditionGood},
			model.PurchaseItem{Name: "Laptop", Type: model.MaterialReturnable, Quantity: 1, Status: model.ItemApproved, SerialNumber: "SN-2", ModelNumber: "M1", ProductCondition: model.ConditionNormal},
			model.PurchaseItem{Name: "Laptop", Type: model.MaterialReturnable, Quantity: 1, Status: model.ItemRejected, SerialNumber: "SN-3", ModelNumber: "M1"},
		),
	}
	distributions := []model.DistributionRequest{
		distribution(model.StatusCompleted,
			model.DistributionItem{Name: "Laptop", Type: model.MaterialReturnable, RequiredQuantity: 1, Status: model.ItemCollected, SerialNumber: "SN-1", ModelNumber: "M1"},
		),
	}

	stock := BuildAvailability(purchases, distributions)
	if len(stock) != 1 {
		t.Fatalf("expected 1 free unit, got %d: %+v", len(stock), stock)
	}
	if stock[0].SerialNumber != "SN-2" {
		t.Errorf("expected SN-2 to remain, got %+v", stock[0])
	}
	if stock[0].ProductCondition != model.ConditionNormal {
		t.Errorf("unit condition lost: %+v", stock[0])
	}
}

// A rejected distribution line releases its hold; pending and approved lines
// keep holding stock.
func TestBuildAvailabilityByNameDemandStates(t *testing.T) {
	purchases := []model.PurchaseRequest{
		purchase(model.StatusApproved,
			model.PurchaseItem{Name: "A4 Paper", Type: model.MaterialNonReturnable, Quantity: 10, Status: model.ItemApproved},
		),
	}
	distributions := []model.DistributionRequest{
		distribution(model.StatusPending,
			model.DistributionItem{Name: "A4 Paper", Type: model.MaterialNonReturnable, RequiredQuantity: 3, Status: model.ItemPending},
		),
		distribution(model.StatusPartiallyApproved,
			model.DistributionItem{Name: "A4 Paper", Type: model.MaterialNonReturnable, RequiredQuantity: 2, Status: model.ItemApproved},
			model.DistributionItem{Name: "A4 Paper", Type: model.MaterialNonReturnable, RequiredQuantity: 4, Status: model.ItemRejected},
		),
	}

	stock := BuildAvailabilityByName(purchases, distributions)
	if len(stock) != 1 {
		t.Fatalf("expected 1 row, got %d", len(stock))
	}
	if stock[0].Quantity != 5 { // 10 - 3 - 2
		t.Errorf("got quantity %d, want 5", stock[0].Quantity)
	}
}

// Pending returnable demand carries no serial yet but must still charge the
// name-level projection.
func TestBuildAvailabilityByNameUnboundReturnableDemand(t *testing.T) {
	purchases := []model.PurchaseRequest{
		purchase(model.StatusApproved,
			model.PurchaseItem{Name: "Laptop", Type: model.MaterialReturnable, Quantity: 1, Status: model.ItemApproved, SerialNumber: "SN-1", ModelNumber: "M1"},
			model.PurchaseItem{Name: "Laptop", Type: model.MaterialReturnable, Quantity: 1, Status: model.ItemApproved, SerialNumber: "SN-2", ModelNumber: "M1"},
		),
	}
	distributions := []model.DistributionRequest{
		distribution(model.StatusPending,
			model.DistributionItem{Name: "Laptop", Type: model.MaterialReturnable, RequiredQuantity: 2, Status: model.ItemPending},
		),
	}

	stock := BuildAvailabilityByName(purchases, distributions)
	if len(stock) != 0 {
		t.Errorf("expected no availability, got %+v", stock)
	}
}

// The projection never reports negative balances even when demand exceeds
// supply.
func TestBuildAvailabilityNeverNegative(t *testing.T) {
	purchases := []model.PurchaseRequest{
		purchase(model.StatusApproved,
			model.PurchaseItem{Name: "A4 Paper", Type: model.MaterialNonReturnable, Quantity: 2, Status: model.ItemApproved},
		),
	}
	distributions := []model.DistributionRequest{
		distribution(model.StatusApproved,
			model.DistributionItem{Name: "A4 Paper", Type: model.MaterialNonReturnable, RequiredQuantity: 5, Status: model.ItemApproved},
		),
	}

	for _, stock := range [][]StockItem{
		BuildAvailability(purchases, distributions),
		BuildAvailabilityByName(purchases, distributions),
	} {
		for _, item := range stock {
			if item.Quantity <= 0 {
				t.Errorf("non-positive row leaked: %+v", item)
			}
		}
	}
}

func TestBuildAvailabilityDefaultsInfo(t *testing.T) {
	purchases := []model.PurchaseRequest{
		purchase(model.StatusApproved,
			model.PurchaseItem{Name: "Chair", Type: model.MaterialNonReturnable, Quantity: 1, Status: model.ItemApproved},
		),
	}
	stock := BuildAvailability(purchases, nil)
	if len(stock) != 1 || stock[0].Info != "N/A" {
		t.Errorf("expected Info to default to N/A, got %+v", stock)
	}
}
