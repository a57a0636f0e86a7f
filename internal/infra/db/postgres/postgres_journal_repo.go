package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"course-marketplace/internal/domain"
	"course-marketplace/internal/domain/model"
	"course-marketplace/internal/domain/ports/repository"
)

var _ repository.GrantJournalRepository = (*journalRepo)(nil)

type journalRepo struct{ pool *pgxpool.Pool }

func NewJournalRepo(pool *pgxpool.Pool) *journalRepo {
	return &journalRepo{pool: pool}
}

func (r *journalRepo) Append(ctx context.Context, tx repository.Tx, e *model.GrantJournalEntry) error {
	const q = `
INSERT INTO grant_journal (id, user_id, course_ids, order_id, payment_id, source, duration_months, created_at, retried_at, resolved)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10);`
	_, err := execSQL(ctx, r.pool, tx, q, e.ID, e.UserID, e.CourseIDs, e.OrderID, e.PaymentID, e.Source, e.DurationMonths, e.CreatedAt, e.RetriedAt, e.Resolved)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *journalRepo) ListUnresolved(ctx context.Context, tx repository.Tx, limit int) ([]*model.GrantJournalEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	const q = `
SELECT id, user_id, course_ids, order_id, payment_id, source, duration_months, created_at, retried_at, resolved
FROM grant_journal WHERE NOT resolved ORDER BY created_at ASC LIMIT $1;`
	rows, err := queryRows(ctx, r.pool, tx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.GrantJournalEntry
	for rows.Next() {
		e := &model.GrantJournalEntry{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.CourseIDs, &e.OrderID, &e.PaymentID, &e.Source, &e.DurationMonths, &e.CreatedAt, &e.RetriedAt, &e.Resolved); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *journalRepo) MarkResolved(ctx context.Context, tx repository.Tx, id string, at time.Time) error {
	const q = `UPDATE grant_journal SET resolved=TRUE, retried_at=$2 WHERE id=$1;`
	if _, err := execSQL(ctx, r.pool, tx, q, id, at); err != nil {
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *journalRepo) MarkRetried(ctx context.Context, tx repository.Tx, id string, at time.Time) error {
	const q = `UPDATE grant_journal SET retried_at=$2 WHERE id=$1;`
	if _, err := execSQL(ctx, r.pool, tx, q, id, at); err != nil {
		return domain.ErrOperationFailed
	}
	return nil
}
