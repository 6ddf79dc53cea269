package service

import (
	"context"
	"testing"

	"material-store/internal/model"
)

func laptopAndPaperInput() SubmitPurchaseInput {
	return SubmitPurchaseInput{
		VendorName:    "Acme Supplies",
		VendorPhone:   "9876543210",
		VendorAddress: "12 Market Road",
		BillNumber:    "BILL-001",
		BillDate:      "2026-01-15",
		GSTNumber:     "GST-42",
		GSTAmount:     "50",
		Items: []PurchaseLineInput{
			{
				Name: "Laptop", Quantity: 2, UnitCost: "500",
				Units: []ReturnableUnitInput{
					{SerialNumber: "SN-1", ModelNumber: "M1", ProductCondition: model.ConditionGood},
					{SerialNumber: "SN-2", ModelNumber: "M1", ProductCondition: model.ConditionGood},
				},
			},
			{Name: "A4 Paper", Quantity: 10, UnitCost: "20"},
		},
	}
}

func seedCatalog(t *testing.T, e *env) {
	t.Helper()
	e.addMaterial(t, "Laptop", model.MaterialReturnable, model.InfoElectronic)
	e.addMaterial(t, "A4 Paper", model.MaterialNonReturnable, model.InfoNonElectronic)
}

func TestPurchaseSubmit(t *testing.T) {
	e := newEnv(t)
	seedCatalog(t, e)
	caseworker := e.addUser(t, model.RoleCaseworker)

	request, err := e.purchases.Submit(context.Background(), caseworker, laptopAndPaperInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if request.Status != model.StatusPending {
		t.Errorf("status = %q, want pending", request.Status)
	}
	// 2 serialized units + 1 bulk line
	if len(request.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(request.Items))
	}
	// 2x500 + 10x20 + 50 GST
	if got := request.TotalAmount.String(); got != "1250" {
		t.Errorf("total = %s, want 1250", got)
	}
	for i, item := range request.Items {
		if item.LineNo != i {
			t.Errorf("line numbers not sequential: %+v", item)
		}
		if item.Status != model.ItemPending {
			t.Errorf("line %d status = %q, want pending", i, item.Status)
		}
	}
	if request.Items[0].Quantity != 1 || request.Items[0].SerialNumber != "SN-1" {
		t.Errorf("returnable expansion wrong: %+v", request.Items[0])
	}
}

func TestPurchaseSubmitValidation(t *testing.T) {
	e := newEnv(t)
	seedCatalog(t, e)
	caseworker := e.addUser(t, model.RoleCaseworker)
	consumer := e.addUser(t, model.RoleConsumer)
	ctx := context.Background()

	t.Run("wrong role", func(t *testing.T) {
		if _, err := e.purchases.Submit(ctx, consumer, laptopAndPaperInput()); err != ErrForbidden {
			t.Errorf("err = %v, want ErrForbidden", err)
		}
	})

	t.Run("no items", func(t *testing.T) {
		input := laptopAndPaperInput()
		input.Items = nil
		if _, err := e.purchases.Submit(ctx, caseworker, input); !IsValidation(err) {
			t.Errorf("err = %v, want validation error", err)
		}
	})

	t.Run("future bill date", func(t *testing.T) {
		input := laptopAndPaperInput()
		input.BillDate = "2099-01-01"
		if _, err := e.purchases.Submit(ctx, caseworker, input); !IsValidation(err) {
			t.Errorf("err = %v, want validation error", err)
		}
	})

	t.Run("unknown material", func(t *testing.T) {
		input := laptopAndPaperInput()
		input.Items[1].Name = "Mystery Box"
		if _, err := e.purchases.Submit(ctx, caseworker, input); !IsValidation(err) {
			t.Errorf("err = %v, want validation error", err)
		}
	})

	t.Run("unit count mismatch", func(t *testing.T) {
		input := laptopAndPaperInput()
		input.Items[0].Units = input.Items[0].Units[:1]
		if _, err := e.purchases.Submit(ctx, caseworker, input); !IsValidation(err) {
			t.Errorf("err = %v, want validation error", err)
		}
	})

	t.Run("bad condition", func(t *testing.T) {
		input := laptopAndPaperInput()
		input.Items[0].Units[0].ProductCondition = "Shiny"
		if _, err := e.purchases.Submit(ctx, caseworker, input); !IsValidation(err) {
			t.Errorf("err = %v, want validation error", err)
		}
	})

	t.Run("negative cost", func(t *testing.T) {
		input := laptopAndPaperInput()
		input.Items[1].UnitCost = "-5"
		if _, err := e.purchases.Submit(ctx, caseworker, input); !IsValidation(err) {
			t.Errorf("err = %v, want validation error", err)
		}
	})
}

func TestPurchaseDecideItems(t *testing.T) {
	e := newEnv(t)
	seedCatalog(t, e)
	caseworker := e.addUser(t, model.RoleCaseworker)
	approver := e.addUser(t, model.RoleApprover)
	ctx := context.Background()

	request, err := e.purchases.Submit(ctx, caseworker, laptopAndPaperInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	// Partial decision: one approved, one rejected, one untouched.
	request, err = e.purchases.DecideItems(ctx, approver, request.ID, DecideItemsInput{
		Decisions: []ItemDecision{
			{LineNo: 0, Status: model.ItemApproved},
			{LineNo: 1, Status: model.ItemRejected, Remarks: "damaged in transit"},
		},
	})
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if request.Status != model.StatusPartiallyApproved {
		t.Errorf("status = %q, want partially-approved", request.Status)
	}

	// A decided line is final.
	_, err = e.purchases.DecideItems(ctx, approver, request.ID, DecideItemsInput{
		Decisions: []ItemDecision{{LineNo: 0, Status: model.ItemRejected, Remarks: "changed my mind"}},
	})
	if !IsValidation(err) {
		t.Fatalf("re-deciding line 0: err = %v, want validation error", err)
	}
	reloaded, err := e.purchaseRepo.FindByIDWithItems(ctx, request.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Items[0].Status != model.ItemApproved {
		t.Errorf("line 0 regressed to %q", reloaded.Items[0].Status)
	}

	// Decide the remaining line; fold accounts for all three.
	request, err = e.purchases.DecideItems(ctx, approver, request.ID, DecideItemsInput{
		Decisions: []ItemDecision{{LineNo: 2, Status: model.ItemApproved}},
	})
	if err != nil {
		t.Fatalf("decide remaining: %v", err)
	}
	if request.Status != model.StatusPartiallyApproved {
		t.Errorf("status = %q, want partially-approved (one line rejected)", request.Status)
	}
}

func TestPurchaseDecideValidation(t *testing.T) {
	e := newEnv(t)
	seedCatalog(t, e)
	caseworker := e.addUser(t, model.RoleCaseworker)
	approver := e.addUser(t, model.RoleApprover)
	ctx := context.Background()

	request, err := e.purchases.Submit(ctx, caseworker, laptopAndPaperInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	t.Run("reject needs remarks", func(t *testing.T) {
		_, err := e.purchases.DecideItems(ctx, approver, request.ID, DecideItemsInput{
			Decisions: []ItemDecision{{LineNo: 0, Status: model.ItemRejected}},
		})
		if !IsValidation(err) {
			t.Errorf("err = %v, want validation error", err)
		}
	})

	t.Run("unknown line aborts the whole batch", func(t *testing.T) {
		_, err := e.purchases.DecideItems(ctx, approver, request.ID, DecideItemsInput{
			Decisions: []ItemDecision{
				{LineNo: 0, Status: model.ItemApproved},
				{LineNo: 99, Status: model.ItemApproved},
			},
		})
		if !IsValidation(err) {
			t.Fatalf("err = %v, want validation error", err)
		}
		// No partial write: line 0 must still be pending.
		reloaded, err := e.purchaseRepo.FindByIDWithItems(ctx, request.ID)
		if err != nil {
			t.Fatalf("reload: %v", err)
		}
		if reloaded.Items[0].Status != model.ItemPending {
			t.Errorf("partial write leaked: line 0 = %q", reloaded.Items[0].Status)
		}
	})

	t.Run("caseworker cannot decide", func(t *testing.T) {
		_, err := e.purchases.DecideItems(ctx, caseworker, request.ID, DecideItemsInput{
			Decisions: []ItemDecision{{LineNo: 0, Status: model.ItemApproved}},
		})
		if err != ErrForbidden {
			t.Errorf("err = %v, want ErrForbidden", err)
		}
	})
}

func TestPurchaseListRejectedCases(t *testing.T) {
	e := newEnv(t)
	seedCatalog(t, e)
	caseworker := e.addUser(t, model.RoleCaseworker)
	approver := e.addUser(t, model.RoleApprover)
	ctx := context.Background()

	request, err := e.purchases.Submit(ctx, caseworker, laptopAndPaperInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	_, err = e.purchases.DecideItems(ctx, approver, request.ID, DecideItemsInput{
		Decisions: []ItemDecision{
			{LineNo: 0, Status: model.ItemRejected, Remarks: "scratched"},
			{LineNo: 1, Status: model.ItemApproved},
			{LineNo: 2, Status: model.ItemApproved},
		},
	})
	if err != nil {
		t.Fatalf("decide: %v", err)
	}

	rows, err := e.purchases.ListRejectedCases(ctx)
	if err != nil {
		t.Fatalf("list rejected: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].SerialNumber != "SN-1" || rows[0].Remarks != "scratched" || rows[0].VendorName != "Acme Supplies" {
		t.Errorf("unexpected row: %+v", rows[0])
	}
}

func TestPurchaseAuditTrail(t *testing.T) {
	e := newEnv(t)
	seedCatalog(t, e)
	caseworker := e.addUser(t, model.RoleCaseworker)
	ctx := context.Background()

	if _, err := e.purchases.Submit(ctx, caseworker, laptopAndPaperInput()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	logs, total, err := e.auditRepo.List(ctx, 1, 10)
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if total != 1 || logs[0].Action != model.ActionSubmitPurchaseRequest {
		t.Errorf("audit trail = %d entries, first action %q", total, logs[0].Action)
	}
}
