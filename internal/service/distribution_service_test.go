package service

import (
	"context"
	"testing"

	"material-store/internal/model"
)

func TestDraftAvailabilityChecks(t *testing.T) {
	e := newEnv(t)
	seedCatalog(t, e)
	caseworker := e.addUser(t, model.RoleCaseworker)
	approver := e.addUser(t, model.RoleApprover)
	consumer := e.addUser(t, model.RoleConsumer)
	ctx := context.Background()

	e.approvedPurchase(t, caseworker, approver, laptopAndPaperInput())

	// 10 sheets approved; 4 fit, then only 6 remain for further drafts.
	if _, err := e.distributions.AddDraft(ctx, consumer, DraftInput{Name: "A4 Paper", RequiredQuantity: 4}); err != nil {
		t.Fatalf("add draft: %v", err)
	}
	if _, err := e.distributions.AddDraft(ctx, consumer, DraftInput{Name: "A4 Paper", RequiredQuantity: 7}); !IsValidation(err) {
		t.Errorf("over-draft err = %v, want validation error", err)
	}

	// The consumer availability view charges the existing draft.
	stock, err := e.ledger.AvailableForConsumer(ctx, consumer.ID)
	if err != nil {
		t.Fatalf("available: %v", err)
	}
	for _, item := range stock {
		if item.Name == "A4 Paper" && item.Quantity != 6 {
			t.Errorf("paper availability = %d, want 6", item.Quantity)
		}
	}

	if _, err := e.distributions.AddDraft(ctx, consumer, DraftInput{Name: "Mystery Box", RequiredQuantity: 1}); !IsValidation(err) {
		t.Errorf("unknown material err = %v, want validation error", err)
	}
	if _, err := e.distributions.AddDraft(ctx, caseworker, DraftInput{Name: "A4 Paper", RequiredQuantity: 1}); err != ErrForbidden {
		t.Errorf("caseworker draft err = %v, want ErrForbidden", err)
	}
}

func TestDistributionSubmitClearsDrafts(t *testing.T) {
	e := newEnv(t)
	seedCatalog(t, e)
	caseworker := e.addUser(t, model.RoleCaseworker)
	approver := e.addUser(t, model.RoleApprover)
	consumer := e.addUser(t, model.RoleConsumer)
	ctx := context.Background()

	e.approvedPurchase(t, caseworker, approver, laptopAndPaperInput())

	// Submitting with no drafts is rejected.
	if _, err := e.distributions.Submit(ctx, consumer); !IsValidation(err) {
		t.Errorf("empty submit err = %v, want validation error", err)
	}

	if _, err := e.distributions.AddDraft(ctx, consumer, DraftInput{Name: "Laptop", RequiredQuantity: 1}); err != nil {
		t.Fatalf("add draft: %v", err)
	}
	if _, err := e.distributions.AddDraft(ctx, consumer, DraftInput{Name: "A4 Paper", RequiredQuantity: 4}); err != nil {
		t.Fatalf("add draft: %v", err)
	}

	request, err := e.distributions.Submit(ctx, consumer)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if request.Status != model.StatusPending || len(request.Items) != 2 {
		t.Errorf("request = %q with %d items, want pending with 2", request.Status, len(request.Items))
	}

	drafts, err := e.distributions.ListDrafts(ctx, consumer)
	if err != nil {
		t.Fatalf("list drafts: %v", err)
	}
	if len(drafts) != 0 {
		t.Errorf("drafts not cleared: %d remain", len(drafts))
	}

	// New drafts are blocked while a request is pending.
	if _, err := e.distributions.AddDraft(ctx, consumer, DraftInput{Name: "A4 Paper", RequiredQuantity: 1}); !IsValidation(err) {
		t.Errorf("draft while pending err = %v, want validation error", err)
	}
}

func TestDistributionEndToEnd(t *testing.T) {
	e := newEnv(t)
	seedCatalog(t, e)
	caseworker := e.addUser(t, model.RoleCaseworker)
	approver := e.addUser(t, model.RoleApprover)
	consumer := e.addUser(t, model.RoleConsumer)
	ctx := context.Background()

	e.approvedPurchase(t, caseworker, approver, laptopAndPaperInput())

	if _, err := e.distributions.AddDraft(ctx, consumer, DraftInput{Name: "Laptop", RequiredQuantity: 1}); err != nil {
		t.Fatalf("add draft: %v", err)
	}
	if _, err := e.distributions.AddDraft(ctx, consumer, DraftInput{Name: "A4 Paper", RequiredQuantity: 4}); err != nil {
		t.Fatalf("add draft: %v", err)
	}
	request, err := e.distributions.Submit(ctx, consumer)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	// Approve both lines.
	request, err = e.distributions.DecideItems(ctx, approver, request.ID, DecideItemsInput{
		Decisions: []ItemDecision{
			{LineNo: 0, Status: model.ItemApproved},
			{LineNo: 1, Status: model.ItemApproved},
		},
	})
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if request.Status != model.StatusApproved {
		t.Fatalf("status = %q, want approved", request.Status)
	}

	// Handover validations.
	if _, err := e.distributions.ConfirmHandover(ctx, caseworker, request.ID, HandoverInput{
		LineNo: 0, Outcome: model.ItemCollected,
	}); !IsValidation(err) {
		t.Errorf("missing messenger err = %v, want validation error", err)
	}
	if _, err := e.distributions.ConfirmHandover(ctx, caseworker, request.ID, HandoverInput{
		LineNo: 0, Outcome: model.ItemCollected, MessengerName: "Ravi",
	}); !IsValidation(err) {
		t.Errorf("missing serial err = %v, want validation error", err)
	}
	if _, err := e.distributions.ConfirmHandover(ctx, caseworker, request.ID, HandoverInput{
		LineNo: 0, Outcome: model.ItemCollected, MessengerName: "Ravi", SerialNumber: "SN-99", ModelNumber: "M1",
	}); !IsValidation(err) {
		t.Errorf("unknown serial err = %v, want validation error", err)
	}

	// Collect the laptop with a real unit.
	request, err = e.distributions.ConfirmHandover(ctx, caseworker, request.ID, HandoverInput{
		LineNo: 0, Outcome: model.ItemCollected, MessengerName: "Ravi", SerialNumber: "SN-1", ModelNumber: "M1",
	})
	if err != nil {
		t.Fatalf("handover laptop: %v", err)
	}
	laptop := request.Items[0]
	if laptop.Status != model.ItemCollected || laptop.SerialNumber != "SN-1" || laptop.DateTaken == nil {
		t.Errorf("laptop line not bound: %+v", laptop)
	}
	if laptop.ProductCondition != model.ConditionGood {
		t.Errorf("unit condition not inherited: %q", laptop.ProductCondition)
	}
	if request.Status != model.StatusApproved {
		t.Errorf("status = %q, want approved while a line remains", request.Status)
	}

	// The collected unit must no longer be offered.
	serials, err := e.ledger.AvailableSerials(ctx, "Laptop")
	if err != nil {
		t.Fatalf("serials: %v", err)
	}
	if len(serials) != 1 || serials[0].SerialNumber != "SN-2" {
		t.Errorf("free serials = %+v, want only SN-2", serials)
	}

	// Collect the paper; every line terminal folds to completed.
	request, err = e.distributions.ConfirmHandover(ctx, caseworker, request.ID, HandoverInput{
		LineNo: 1, Outcome: model.ItemCollected, MessengerName: "Ravi",
	})
	if err != nil {
		t.Fatalf("handover paper: %v", err)
	}
	if request.Status != model.StatusCompleted {
		t.Errorf("status = %q, want completed", request.Status)
	}

	// A collected line cannot be handed over again.
	if _, err := e.distributions.ConfirmHandover(ctx, caseworker, request.ID, HandoverInput{
		LineNo: 0, Outcome: model.ItemCollected, MessengerName: "Ravi", SerialNumber: "SN-2", ModelNumber: "M1",
	}); !IsValidation(err) {
		t.Errorf("double handover err = %v, want validation error", err)
	}

	// Final stock: one laptop unit and 6 sheets.
	stock, err := e.ledger.Stock(ctx)
	if err != nil {
		t.Fatalf("stock: %v", err)
	}
	byKey := map[string]int{}
	for _, item := range stock {
		byKey[item.Name+"/"+item.SerialNumber] = item.Quantity
	}
	if byKey["Laptop/SN-2"] != 1 || byKey["A4 Paper/"] != 6 {
		t.Errorf("final stock wrong: %+v", stock)
	}
}

func TestDistributionCollectedReport(t *testing.T) {
	e := newEnv(t)
	seedCatalog(t, e)
	caseworker := e.addUser(t, model.RoleCaseworker)
	approver := e.addUser(t, model.RoleApprover)
	consumer := e.addUser(t, model.RoleConsumer)
	ctx := context.Background()

	e.approvedPurchase(t, caseworker, approver, laptopAndPaperInput())

	if _, err := e.distributions.AddDraft(ctx, consumer, DraftInput{Name: "Laptop", RequiredQuantity: 1}); err != nil {
		t.Fatalf("add draft: %v", err)
	}
	if _, err := e.distributions.AddDraft(ctx, consumer, DraftInput{Name: "A4 Paper", RequiredQuantity: 4}); err != nil {
		t.Fatalf("add draft: %v", err)
	}
	request, err := e.distributions.Submit(ctx, consumer)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	request, err = e.distributions.DecideItems(ctx, approver, request.ID, DecideItemsInput{
		Decisions: []ItemDecision{
			{LineNo: 0, Status: model.ItemApproved},
			{LineNo: 1, Status: model.ItemApproved},
		},
	})
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if _, err := e.distributions.ConfirmHandover(ctx, caseworker, request.ID, HandoverInput{
		LineNo: 0, Outcome: model.ItemCollected, MessengerName: "Ravi", SerialNumber: "SN-1", ModelNumber: "M1",
	}); err != nil {
		t.Fatalf("handover laptop: %v", err)
	}
	if _, err := e.distributions.ConfirmHandover(ctx, caseworker, request.ID, HandoverInput{
		LineNo: 1, Outcome: model.ItemCollected, MessengerName: "Mina",
	}); err != nil {
		t.Fatalf("handover paper: %v", err)
	}

	if _, err := e.distributions.ListCollected(ctx, consumer); err != ErrForbidden {
		t.Errorf("consumer report err = %v, want ErrForbidden", err)
	}

	// Both lines show up, non-returnable included, with the consumer and
	// handover details on every row.
	rows, err := e.distributions.ListCollected(ctx, caseworker)
	if err != nil {
		t.Fatalf("collected report: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	byName := make(map[string]CollectedItemRow, len(rows))
	for _, row := range rows {
		byName[row.Name] = row
		if row.ConsumerID != consumer.ID || row.ConsumerName == "" {
			t.Errorf("row missing consumer info: %+v", row)
		}
		if row.DateTaken == nil {
			t.Errorf("row missing date taken: %+v", row)
		}
	}
	laptop := byName["Laptop"]
	if laptop.SerialNumber != "SN-1" || laptop.MessengerName != "Ravi" || laptop.Quantity != 1 {
		t.Errorf("unexpected laptop row: %+v", laptop)
	}
	paper := byName["A4 Paper"]
	if paper.Quantity != 4 || paper.MessengerName != "Mina" || paper.SerialNumber != "" {
		t.Errorf("unexpected paper row: %+v", paper)
	}
}

func TestDistributionHandoverRejection(t *testing.T) {
	e := newEnv(t)
	seedCatalog(t, e)
	caseworker := e.addUser(t, model.RoleCaseworker)
	approver := e.addUser(t, model.RoleApprover)
	consumer := e.addUser(t, model.RoleConsumer)
	ctx := context.Background()

	e.approvedPurchase(t, caseworker, approver, laptopAndPaperInput())

	if _, err := e.distributions.AddDraft(ctx, consumer, DraftInput{Name: "A4 Paper", RequiredQuantity: 4}); err != nil {
		t.Fatalf("add draft: %v", err)
	}
	request, err := e.distributions.Submit(ctx, consumer)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	request, err = e.distributions.DecideItems(ctx, approver, request.ID, DecideItemsInput{
		Decisions: []ItemDecision{{LineNo: 0, Status: model.ItemApproved}},
	})
	if err != nil {
		t.Fatalf("decide: %v", err)
	}

	// Refusal at the counter releases the hold and completes the request.
	request, err = e.distributions.ConfirmHandover(ctx, caseworker, request.ID, HandoverInput{
		LineNo: 0, Outcome: model.ItemRejected, Remarks: "never collected",
	})
	if err != nil {
		t.Fatalf("refuse handover: %v", err)
	}
	if request.Status != model.StatusCompleted {
		t.Errorf("status = %q, want completed", request.Status)
	}

	stock, err := e.ledger.Stock(ctx)
	if err != nil {
		t.Fatalf("stock: %v", err)
	}
	for _, item := range stock {
		if item.Name == "A4 Paper" && item.Quantity != 10 {
			t.Errorf("rejected line still holds stock: %+v", item)
		}
	}
}
