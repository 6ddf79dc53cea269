package service

import (
	"testing"

	"material-store/internal/model"
)

func TestFoldOverallStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		want     string
	}{
		{"all approved", []string{"approved", "approved"}, model.StatusApproved},
		{"all collected counts as approved", []string{"collected", "collected"}, model.StatusApproved},
		{"mixed approved and rejected", []string{"approved", "rejected"}, model.StatusPartiallyApproved},
		{"mixed approved and pending", []string{"approved", "pending"}, model.StatusPartiallyApproved},
		{"all rejected", []string{"rejected", "rejected"}, model.StatusRejected},
		{"rejected with pending", []string{"rejected", "pending"}, model.StatusRejected},
		{"nothing decided stays pending", []string{"pending", "pending"}, model.StatusPending},
		{"single pending", []string{"pending"}, model.StatusPending},
		{"empty", nil, model.StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FoldOverallStatus(tt.statuses); got != tt.want {
				t.Errorf("FoldOverallStatus(%v) = %q, want %q", tt.statuses, got, tt.want)
			}
		})
	}
}

// Folding the same multiset of statuses must give the same result regardless
// of item order.
func TestFoldOverallStatusOrderIndependent(t *testing.T) {
	a := FoldOverallStatus([]string{"approved", "rejected", "pending"})
	b := FoldOverallStatus([]string{"pending", "approved", "rejected"})
	c := FoldOverallStatus([]string{"rejected", "pending", "approved"})
	if a != b || b != c {
		t.Errorf("fold not order independent: %q %q %q", a, b, c)
	}
}

func TestIsComplete(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		want     bool
	}{
		{"all collected", []string{"collected", "collected"}, true},
		{"collected and rejected", []string{"collected", "rejected"}, true},
		{"approved line remains", []string{"collected", "approved"}, false},
		{"pending line remains", []string{"collected", "pending"}, false},
		{"empty never completes", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsComplete(tt.statuses); got != tt.want {
				t.Errorf("IsComplete(%v) = %v, want %v", tt.statuses, got, tt.want)
			}
		})
	}
}
