package claim

import (
	"fmt"
	"time"

	"github.com/driveshare/core/internal/models"
)

// allowTransition defines the claim status state machine as a directed graph.
var allowTransition = map[models.ClaimStatus][]models.ClaimStatus{
	models.ClaimPending:     {models.ClaimUnderReview, models.ClaimDenied},
	models.ClaimUnderReview: {models.ClaimApproved, models.ClaimDenied},
	// Terminal states.
	models.ClaimApproved: {},
	models.ClaimDenied:   {},
}

// CanTransition reports whether from -> to is an allowed status change.
func CanTransition(from, to models.ClaimStatus) bool {
	if from == to {
		return true
	}
	allowed, ok := allowTransition[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// ApplyTransition changes a claim's status and maintains ResolvedAt.
func ApplyTransition(c *models.ClaimModel, to models.ClaimStatus, now time.Time) error {
	if c == nil {
		return fmt.Errorf("claim is nil")
	}
	from := c.Status
	if !CanTransition(from, to) {
		return fmt.Errorf("invalid claim status transition: %s -> %s", from, to)
	}

	c.Status = to
	if (to == models.ClaimApproved || to == models.ClaimDenied) && c.ResolvedAt == nil {
		t := now
		c.ResolvedAt = &t
	}
	return nil
}
