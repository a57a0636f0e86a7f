package usecase

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"course-marketplace/internal/domain"
	"course-marketplace/internal/domain/model"
	"course-marketplace/internal/domain/ports/repository"
)

// Compile-time check
var _ SettingsUseCase = (*settingsUC)(nil)

// SettingsUseCase reads and updates the global policy singleton. Updates
// accept only allow-listed fields; arbitrary key merging is rejected.
type SettingsUseCase interface {
	Get(ctx context.Context) (model.PolicySettings, error)
	Update(ctx context.Context, fields map[string]any) (model.PolicySettings, error)
}

type settingsUC struct {
	settings repository.SettingsRepository
	tm       repository.TransactionManager
	log      *zerolog.Logger
}

func NewSettingsUseCase(settings repository.SettingsRepository, tm repository.TransactionManager, logger *zerolog.Logger) *settingsUC {
	return &settingsUC{settings: settings, tm: tm, log: logger}
}

func (u *settingsUC) Get(ctx context.Context) (model.PolicySettings, error) {
	return u.settings.Get(ctx, repository.NoTX)
}

// Update applies a partial update under a transaction so the read-modify-
// write is consistent. Only isPaymentEnabled and courseDurationMonths are
// mutable; any other key fails the whole request.
func (u *settingsUC) Update(ctx context.Context, fields map[string]any) (model.PolicySettings, error) {
	var out model.PolicySettings
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		cur, err := u.settings.Get(ctx, tx)
		if err != nil {
			return err
		}
		for k, v := range fields {
			switch k {
			case "isPaymentEnabled":
				b, ok := v.(bool)
				if !ok {
					return domain.ErrInvalidArgument
				}
				cur.IsPaymentEnabled = b
			case "courseDurationMonths":
				// JSON numbers decode as float64.
				f, ok := v.(float64)
				if !ok || f < 1 || f != float64(int(f)) {
					return domain.ErrInvalidArgument
				}
				cur.CourseDurationMonths = int(f)
			default:
				return domain.ErrInvalidArgument
			}
		}
		if err := u.settings.Save(ctx, tx, cur); err != nil {
			return err
		}
		out = cur
		return nil
	})
	if err != nil {
		return model.PolicySettings{}, err
	}
	u.log.Info().
		Bool("is_payment_enabled", out.IsPaymentEnabled).
		Int("course_duration_months", out.CourseDurationMonths).
		Msg("policy settings updated")
	return out, nil
}
