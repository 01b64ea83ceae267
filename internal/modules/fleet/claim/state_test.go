package claim

import (
	"testing"
	"time"

	"github.com/driveshare/core/internal/models"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to models.ClaimStatus }{
		{models.ClaimPending, models.ClaimUnderReview},
		{models.ClaimPending, models.ClaimDenied},
		{models.ClaimUnderReview, models.ClaimApproved},
		{models.ClaimUnderReview, models.ClaimDenied},
		{models.ClaimPending, models.ClaimPending},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Fatalf("expected %s -> %s allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to models.ClaimStatus }{
		{models.ClaimPending, models.ClaimApproved},
		{models.ClaimApproved, models.ClaimPending},
		{models.ClaimApproved, models.ClaimDenied},
		{models.ClaimDenied, models.ClaimUnderReview},
	}
	for _, tc := range denied {
		if CanTransition(tc.from, tc.to) {
			t.Fatalf("expected %s -> %s not allowed", tc.from, tc.to)
		}
	}
}

func TestApplyTransition(t *testing.T) {
	now := time.Now()

	c := &models.ClaimModel{Status: models.ClaimPending}
	if err := ApplyTransition(c, models.ClaimUnderReview, now); err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	if c.Status != models.ClaimUnderReview {
		t.Fatalf("expected under_review, got %s", c.Status)
	}
	if c.ResolvedAt != nil {
		t.Fatalf("under_review must not resolve the claim")
	}

	if err := ApplyTransition(c, models.ClaimApproved, now); err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	if c.ResolvedAt == nil || !c.ResolvedAt.Equal(now) {
		t.Fatalf("approval must set ResolvedAt, got %v", c.ResolvedAt)
	}

	if err := ApplyTransition(c, models.ClaimPending, now); err == nil {
		t.Fatalf("expected reopening an approved claim to fail")
	}
}

func TestApplyTransitionPendingShortcut(t *testing.T) {
	c := &models.ClaimModel{Status: models.ClaimPending}
	if err := ApplyTransition(c, models.ClaimApproved, time.Now()); err == nil {
		t.Fatalf("expected pending -> approved to fail without review")
	}
}
