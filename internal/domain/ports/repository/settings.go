package repository

import (
	"context"

	"course-marketplace/internal/domain/model"
)

// SettingsRepository reads and writes the singleton policy record. Get
// returns defaults (payments enabled, 5 months) when no row exists.
type SettingsRepository interface {
	Get(ctx context.Context, tx Tx) (model.PolicySettings, error)
	Save(ctx context.Context, tx Tx, s model.PolicySettings) error
}
