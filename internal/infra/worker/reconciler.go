package worker

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"course-marketplace/internal/domain/model"
	"course-marketplace/internal/domain/ports/repository"
	"course-marketplace/internal/infra/metrics"
)

// Reconciler drains the grant journal: verified payments whose entitlement
// write failed at request time are retried here until the profile update
// lands. The retried record keeps the original purchase date and duration so
// the user gets exactly the window they paid for.
type Reconciler struct {
	journal      repository.GrantJournalRepository
	entitlements repository.EntitlementRepository
	tm           repository.TransactionManager
	pool         *Pool
	interval     time.Duration
	log          *zerolog.Logger
}

func NewReconciler(
	journal repository.GrantJournalRepository,
	entitlements repository.EntitlementRepository,
	tm repository.TransactionManager,
	pool *Pool,
	interval time.Duration,
	logger *zerolog.Logger,
) *Reconciler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Reconciler{
		journal:      journal,
		entitlements: entitlements,
		tm:           tm,
		pool:         pool,
		interval:     interval,
		log:          logger,
	}
}

func (r *Reconciler) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Reconciler) tick(ctx context.Context) {
	entries, err := r.journal.ListUnresolved(ctx, repository.NoTX, 100)
	if err != nil {
		r.log.Error().Err(err).Msg("journal list failed")
		return
	}
	metrics.SetJournalDepth(len(entries))
	for _, e := range entries {
		entry := e
		if err := r.pool.Submit(func(ctx context.Context) error {
			return r.retry(ctx, entry)
		}); err != nil {
			r.log.Warn().Err(err).Str("journal_id", entry.ID).Msg("reconcile submit dropped")
		}
	}
}

// retry replays the grant and marks the entry resolved in one transaction.
func (r *Reconciler) retry(ctx context.Context, e *model.GrantJournalEntry) error {
	now := time.Now()
	rec := model.NewEntitlementRecord(e.CreatedAt, e.DurationMonths, e.OrderID, e.PaymentID, e.Source)

	err := r.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if err := r.entitlements.Grant(ctx, tx, e.UserID, e.CourseIDs, rec); err != nil {
			return err
		}
		return r.journal.MarkResolved(ctx, tx, e.ID, now)
	})
	if err != nil {
		_ = r.journal.MarkRetried(ctx, repository.NoTX, e.ID, now)
		r.log.Error().Err(err).
			Str("journal_id", e.ID).
			Str("user_id", e.UserID).
			Msg("grant reconciliation retry failed")
		return err
	}

	metrics.IncGrant(string(e.Source), "reconciled")
	r.log.Info().
		Str("journal_id", e.ID).
		Str("user_id", e.UserID).
		Strs("course_ids", e.CourseIDs).
		Msg("journaled grant reconciled")
	return nil
}
