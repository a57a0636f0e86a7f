package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"course-marketplace/internal/domain"
	"course-marketplace/internal/domain/model"
	"course-marketplace/internal/domain/ports/repository"
)

var _ repository.EntitlementRepository = (*entitlementRepo)(nil)

type entitlementRepo struct{ pool *pgxpool.Pool }

func NewEntitlementRepo(pool *pgxpool.Pool) *entitlementRepo {
	return &entitlementRepo{pool: pool}
}

func (r *entitlementRepo) FindByUser(ctx context.Context, tx repository.Tx, userID string) (*model.EntitlementSet, error) {
	const q = `SELECT purchased_course_ids, purchases FROM user_profiles WHERE user_id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}

	set := &model.EntitlementSet{UserID: userID, Purchases: map[string]model.EntitlementRecord{}}
	var purchasesRaw []byte
	if err := row.Scan(&set.PurchasedCourseIDs, &purchasesRaw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No profile yet means no entitlements, not an error.
			return set, nil
		}
		return nil, domain.ErrReadDatabaseRow
	}
	if len(purchasesRaw) > 0 {
		if err := json.Unmarshal(purchasesRaw, &set.Purchases); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
	}
	return set, nil
}

// Grant performs the whole union+overwrite as one UPSERT so that a
// multi-course bundle is never observable half-applied: the flat id set is
// unioned and every course key in the jsonb map is replaced in the same
// statement.
func (r *entitlementRepo) Grant(ctx context.Context, tx repository.Tx, userID string, courseIDs []string, rec model.EntitlementRecord) error {
	recs := make(map[string]model.EntitlementRecord, len(courseIDs))
	for _, id := range courseIDs {
		recs[id] = rec
	}
	payload, err := json.Marshal(recs)
	if err != nil {
		return domain.ErrInvalidArgument
	}

	const q = `
INSERT INTO user_profiles (user_id, purchased_course_ids, purchases, updated_at)
VALUES ($1, $2, $3::jsonb, NOW())
ON CONFLICT (user_id) DO UPDATE SET
  purchased_course_ids = ARRAY(
    SELECT DISTINCT unnest(user_profiles.purchased_course_ids || $2)
  ),
  purchases  = user_profiles.purchases || $3::jsonb,
  updated_at = NOW();`

	if _, err := execSQL(ctx, r.pool, tx, q, userID, courseIDs, payload); err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}
