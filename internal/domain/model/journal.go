package model

import (
	"time"

	"github.com/google/uuid"
)

// GrantJournalEntry records a verified payment whose entitlement write
// failed. A verified payment with no entitlement is a billable defect, so the
// failure is journaled for background retry and alerting instead of being
// swallowed.
type GrantJournalEntry struct {
	ID             string
	UserID         string
	CourseIDs      []string
	OrderID        string
	PaymentID      string
	Source         GrantSource
	DurationMonths int
	CreatedAt      time.Time
	RetriedAt      *time.Time
	Resolved       bool
}

func NewGrantJournalEntry(userID string, courseIDs []string, orderID, paymentID string, source GrantSource, durationMonths int) *GrantJournalEntry {
	return &GrantJournalEntry{
		ID:             uuid.NewString(),
		UserID:         userID,
		CourseIDs:      courseIDs,
		OrderID:        orderID,
		PaymentID:      paymentID,
		Source:         source,
		DurationMonths: durationMonths,
		CreatedAt:      time.Now(),
	}
}
