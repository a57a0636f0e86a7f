package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"course-marketplace/internal/domain"
	"course-marketplace/internal/domain/model"
	"course-marketplace/internal/domain/ports/repository"
)

var _ repository.SettingsRepository = (*settingsRepo)(nil)

// settingsRepo stores the policy singleton as a single guarded row (id=1).
type settingsRepo struct{ pool *pgxpool.Pool }

func NewSettingsRepo(pool *pgxpool.Pool) *settingsRepo {
	return &settingsRepo{pool: pool}
}

func (r *settingsRepo) Get(ctx context.Context, tx repository.Tx) (model.PolicySettings, error) {
	const q = `SELECT is_payment_enabled, course_duration_months, updated_at FROM settings WHERE id=1;`
	row, err := pickRow(ctx, r.pool, tx, q)
	if err != nil {
		return model.PolicySettings{}, err
	}

	var s model.PolicySettings
	if err := row.Scan(&s.IsPaymentEnabled, &s.CourseDurationMonths, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.DefaultPolicySettings(), nil
		}
		return model.PolicySettings{}, domain.ErrReadDatabaseRow
	}
	return s.Normalize(), nil
}

func (r *settingsRepo) Save(ctx context.Context, tx repository.Tx, s model.PolicySettings) error {
	const q = `
INSERT INTO settings (id, is_payment_enabled, course_duration_months, updated_at)
VALUES (1, $1, $2, NOW())
ON CONFLICT (id) DO UPDATE SET
  is_payment_enabled=$1, course_duration_months=$2, updated_at=NOW();`
	_, err := execSQL(ctx, r.pool, tx, q, s.IsPaymentEnabled, s.CourseDurationMonths)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}
