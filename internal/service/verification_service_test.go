package service

import (
	"context"
	"testing"

	"material-store/internal/model"
)

// collectLaptop walks one laptop unit through purchase, distribution, and
// handover so it shows up as a collected unit for verification.
func collectLaptop(t *testing.T, e *env, caseworker, approver, consumer Actor) *model.DistributionRequest {
	t.Helper()
	ctx := context.Background()

	e.approvedPurchase(t, caseworker, approver, laptopAndPaperInput())

	if _, err := e.distributions.AddDraft(ctx, consumer, DraftInput{Name: "Laptop", RequiredQuantity: 1}); err != nil {
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
	request, err = e.distributions.ConfirmHandover(ctx, caseworker, request.ID, HandoverInput{
		LineNo: 0, Outcome: model.ItemCollected, MessengerName: "Ravi", SerialNumber: "SN-1", ModelNumber: "M1",
	})
	if err != nil {
		t.Fatalf("handover: %v", err)
	}
	return request
}

func TestVerificationListCollectedUnits(t *testing.T) {
	e := newEnv(t)
	seedCatalog(t, e)
	caseworker := e.addUser(t, model.RoleCaseworker)
	approver := e.addUser(t, model.RoleApprover)
	consumer := e.addUser(t, model.RoleConsumer)

	request := collectLaptop(t, e, caseworker, approver, consumer)

	units, err := e.verifications.ListCollectedUnits(context.Background(), caseworker)
	if err != nil {
		t.Fatalf("collected units: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("units = %d, want 1", len(units))
	}
	unit := units[0]
	if unit.SerialNumber != "SN-1" || unit.DistributionRequestID != request.ID || unit.ProductCondition != model.ConditionGood {
		t.Errorf("unexpected unit: %+v", unit)
	}
}

func TestVerificationApprovedKeepsConditions(t *testing.T) {
	e := newEnv(t)
	seedCatalog(t, e)
	caseworker := e.addUser(t, model.RoleCaseworker)
	approver := e.addUser(t, model.RoleApprover)
	consumer := e.addUser(t, model.RoleConsumer)
	ctx := context.Background()

	dist := collectLaptop(t, e, caseworker, approver, consumer)

	request, err := e.verifications.Propose(ctx, caseworker, ProposeVerificationInput{
		Items: []ProposedCondition{
			{DistributionRequestID: dist.ID, SerialNumber: "SN-1", NewCondition: model.ConditionBad},
		},
	})
	if err != nil {
		t.Fatalf("propose: %v", err)
	}

	request, err = e.verifications.Resolve(ctx, approver, request.ID, ResolveVerificationInput{
		Outcome: model.VerificationApproved,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if request.Status != model.VerificationApproved {
		t.Errorf("status = %q, want approved", request.Status)
	}

	// The distribution item keeps its condition on record.
	reloaded, err := e.distributionRepo.FindByIDWithItems(ctx, dist.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Items[0].ProductCondition != model.ConditionGood {
		t.Errorf("condition changed on approve: %q", reloaded.Items[0].ProductCondition)
	}
}

func TestVerificationChangedPropagates(t *testing.T) {
	e := newEnv(t)
	seedCatalog(t, e)
	caseworker := e.addUser(t, model.RoleCaseworker)
	approver := e.addUser(t, model.RoleApprover)
	consumer := e.addUser(t, model.RoleConsumer)
	ctx := context.Background()

	dist := collectLaptop(t, e, caseworker, approver, consumer)

	request, err := e.verifications.Propose(ctx, caseworker, ProposeVerificationInput{
		Items: []ProposedCondition{
			{DistributionRequestID: dist.ID, SerialNumber: "SN-1", NewCondition: model.ConditionBad},
		},
	})
	if err != nil {
		t.Fatalf("propose: %v", err)
	}
	if request.Items[0].ProductCondition != model.ConditionGood {
		t.Fatalf("snapshot condition = %q, want Good", request.Items[0].ProductCondition)
	}

	request, err = e.verifications.Resolve(ctx, approver, request.ID, ResolveVerificationInput{
		Outcome:      model.VerificationChanged,
		VerifiedDate: "2026-06-01",
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if request.Status != model.VerificationChanged {
		t.Errorf("status = %q, want verified-changed", request.Status)
	}
	item := request.Items[0]
	if item.Remarks != model.RemarkVerifiedChanged || item.VerifiedDate == nil {
		t.Errorf("changed item not stamped: %+v", item)
	}

	// The confirmed condition lands on the owning distribution item.
	reloaded, err := e.distributionRepo.FindByIDWithItems(ctx, dist.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Items[0].ProductCondition != model.ConditionBad {
		t.Errorf("distribution item condition = %q, want Bad", reloaded.Items[0].ProductCondition)
	}

	// Later verifications start from the new condition on record.
	units, err := e.verifications.ListCollectedUnits(ctx, caseworker)
	if err != nil {
		t.Fatalf("collected units: %v", err)
	}
	if units[0].ProductCondition != model.ConditionBad {
		t.Errorf("next round condition = %q, want Bad", units[0].ProductCondition)
	}

	// A resolved request is final.
	_, err = e.verifications.Resolve(ctx, approver, request.ID, ResolveVerificationInput{
		Outcome: model.VerificationApproved,
	})
	if !IsValidation(err) {
		t.Errorf("re-resolve err = %v, want validation error", err)
	}
}

func TestVerificationValidation(t *testing.T) {
	e := newEnv(t)
	seedCatalog(t, e)
	caseworker := e.addUser(t, model.RoleCaseworker)
	approver := e.addUser(t, model.RoleApprover)
	consumer := e.addUser(t, model.RoleConsumer)
	ctx := context.Background()

	dist := collectLaptop(t, e, caseworker, approver, consumer)

	t.Run("no units selected", func(t *testing.T) {
		_, err := e.verifications.Propose(ctx, caseworker, ProposeVerificationInput{})
		if !IsValidation(err) {
			t.Errorf("err = %v, want validation error", err)
		}
	})

	t.Run("bad condition", func(t *testing.T) {
		_, err := e.verifications.Propose(ctx, caseworker, ProposeVerificationInput{
			Items: []ProposedCondition{
				{DistributionRequestID: dist.ID, SerialNumber: "SN-1", NewCondition: "Sparkling"},
			},
		})
		if !IsValidation(err) {
			t.Errorf("err = %v, want validation error", err)
		}
	})

	t.Run("unknown serial", func(t *testing.T) {
		_, err := e.verifications.Propose(ctx, caseworker, ProposeVerificationInput{
			Items: []ProposedCondition{
				{DistributionRequestID: dist.ID, SerialNumber: "SN-404", NewCondition: model.ConditionBad},
			},
		})
		if !IsValidation(err) {
			t.Errorf("err = %v, want validation error", err)
		}
	})

	t.Run("changed verdict needs a date", func(t *testing.T) {
		request, err := e.verifications.Propose(ctx, caseworker, ProposeVerificationInput{
			Items: []ProposedCondition{
				{DistributionRequestID: dist.ID, SerialNumber: "SN-1", NewCondition: model.ConditionBad},
			},
		})
		if err != nil {
			t.Fatalf("propose: %v", err)
		}
		_, err = e.verifications.Resolve(ctx, approver, request.ID, ResolveVerificationInput{
			Outcome: model.VerificationChanged,
		})
		if !IsValidation(err) {
			t.Errorf("missing date err = %v, want validation error", err)
		}
		_, err = e.verifications.Resolve(ctx, approver, request.ID, ResolveVerificationInput{
			Outcome:      model.VerificationChanged,
			VerifiedDate: "2099-01-01",
		})
		if !IsValidation(err) {
			t.Errorf("future date err = %v, want validation error", err)
		}
	})

	t.Run("only the approver resolves", func(t *testing.T) {
		request, err := e.verifications.Propose(ctx, caseworker, ProposeVerificationInput{
			Items: []ProposedCondition{
				{DistributionRequestID: dist.ID, SerialNumber: "SN-1", NewCondition: model.ConditionNormal},
			},
		})
		if err != nil {
			t.Fatalf("propose: %v", err)
		}
		_, err = e.verifications.Resolve(ctx, caseworker, request.ID, ResolveVerificationInput{
			Outcome: model.VerificationApproved,
		})
		if err != ErrForbidden {
			t.Errorf("err = %v, want ErrForbidden", err)
		}
	})
}
