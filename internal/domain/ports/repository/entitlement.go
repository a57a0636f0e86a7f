package repository

import (
	"context"
	"time"

	"course-marketplace/internal/domain/model"
)

// EntitlementRepository stores per-user entitlement profiles.
type EntitlementRepository interface {
	// FindByUser returns the user's entitlement set. A user with no profile
	// row yet gets an empty set, not ErrNotFound.
	FindByUser(ctx context.Context, tx Tx, userID string) (*model.EntitlementSet, error)
	// Grant unions courseIDs into the flat purchased set and overwrites the
	// per-course record for each id, all within one atomic profile update.
	Grant(ctx context.Context, tx Tx, userID string, courseIDs []string, rec model.EntitlementRecord) error
}

// GrantJournalRepository persists failed-grant entries for reconciliation.
type GrantJournalRepository interface {
	Append(ctx context.Context, tx Tx, e *model.GrantJournalEntry) error
	ListUnresolved(ctx context.Context, tx Tx, limit int) ([]*model.GrantJournalEntry, error)
	MarkResolved(ctx context.Context, tx Tx, id string, at time.Time) error
	MarkRetried(ctx context.Context, tx Tx, id string, at time.Time) error
}
