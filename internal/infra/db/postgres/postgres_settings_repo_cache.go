package postgres

import (
	"context"
	"encoding/json"
	"time"

	"course-marketplace/internal/domain/model"
	"course-marketplace/internal/domain/ports/repository"
	"course-marketplace/internal/infra/metrics"
	red "course-marketplace/internal/infra/redis"
)

var _ repository.SettingsRepository = (*settingsRepoCacheDecorator)(nil)

const settingsCacheKey = "settings:policy"

// settingsRepoCacheDecorator is the single configuration-access point for the
// policy singleton: every handler reads through here instead of refetching
// per request. TTL is short (seconds) so admin edits propagate quickly, and
// callers snapshot the returned value once per grant operation.
type settingsRepoCacheDecorator struct {
	inner repository.SettingsRepository
	cache red.RedisClient
	ttl   time.Duration
}

func NewSettingsRepoCacheDecorator(inner repository.SettingsRepository, cache red.RedisClient, ttl time.Duration) repository.SettingsRepository {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &settingsRepoCacheDecorator{inner: inner, cache: cache, ttl: ttl}
}

func (d *settingsRepoCacheDecorator) Get(ctx context.Context, tx repository.Tx) (model.PolicySettings, error) {
	val, err := d.cache.Get(ctx, settingsCacheKey)
	if err == nil {
		metrics.IncCacheRequest("settings", "hit")
		var s model.PolicySettings
		if json.Unmarshal([]byte(val), &s) == nil {
			return s.Normalize(), nil
		}
	}

	metrics.IncCacheRequest("settings", "miss")
	s, err := d.inner.Get(ctx, tx)
	if err != nil {
		return model.PolicySettings{}, err
	}
	bytes, _ := json.Marshal(s)
	_ = d.cache.Set(ctx, settingsCacheKey, bytes, d.ttl)
	return s, nil
}

func (d *settingsRepoCacheDecorator) Save(ctx context.Context, tx repository.Tx, s model.PolicySettings) error {
	_ = d.cache.Del(ctx, settingsCacheKey)
	return d.inner.Save(ctx, tx, s)
}
