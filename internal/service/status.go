package service

import "material-store/internal/model"

// FoldOverallStatus derives a request's overall status from its line item
// statuses. It is the single source of truth for both purchase and
// distribution requests: the overall status is never set independently.
//
//	all approved                      -> approved
//	at least one approved             -> partially-approved
//	some decided, none approved       -> rejected
//	nothing decided yet               -> pending
//
// The last rule deliberately keeps an untouched request pending instead of
// reading it as rejected.
func FoldOverallStatus(itemStatuses []string) string {
	allApproved := len(itemStatuses) > 0
	anyApproved := false
	anyDecided := false

	for _, s := range itemStatuses {
		switch s {
		case model.ItemApproved, model.ItemCollected:
			anyApproved = true
			anyDecided = true
		case model.ItemRejected:
			allApproved = false
			anyDecided = true
		default:
			allApproved = false
		}
	}

	switch {
	case allApproved:
		return model.StatusApproved
	case anyApproved:
		return model.StatusPartiallyApproved
	case anyDecided:
		return model.StatusRejected
	default:
		return model.StatusPending
	}
}

// IsComplete reports whether every line has reached a terminal handover state
// (collected or rejected); a distribution request then folds to completed.
func IsComplete(itemStatuses []string) bool {
	if len(itemStatuses) == 0 {
		return false
	}
	for _, s := range itemStatuses {
		if s != model.ItemCollected && s != model.ItemRejected {
			return false
		}
	}
	return true
}

func purchaseItemStatuses(items []model.PurchaseItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Status
	}
	return out
}

func distributionItemStatuses(items []model.DistributionItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Status
	}
	return out
}
