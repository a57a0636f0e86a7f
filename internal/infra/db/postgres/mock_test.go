//go:build !integration

package postgres

import (
	"context"
	"errors"
	"time"

	"course-marketplace/internal/domain/model"
	"course-marketplace/internal/domain/ports/repository"
	red "course-marketplace/internal/infra/redis"
)

var errCacheMiss = errors.New("redis: nil")

// mockRedisClient mocks the Redis client wrapper. Unset funcs behave like an
// empty cache.
type mockRedisClient struct {
	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	DelFunc    func(ctx context.Context, keys ...string) error
	IncrFunc   func(ctx context.Context, key string) (int64, error)
	ExpireFunc func(ctx context.Context, key string, expiration time.Duration) error
}

var _ red.RedisClient = (*mockRedisClient)(nil)

func (m *mockRedisClient) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return "", errCacheMiss
}

func (m *mockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, expiration)
	}
	return nil
}

func (m *mockRedisClient) Del(ctx context.Context, keys ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, keys...)
	}
	return nil
}

func (m *mockRedisClient) Incr(ctx context.Context, key string) (int64, error) {
	if m.IncrFunc != nil {
		return m.IncrFunc(ctx, key)
	}
	return 1, nil
}

func (m *mockRedisClient) Expire(ctx context.Context, key string, expiration time.Duration) error {
	if m.ExpireFunc != nil {
		return m.ExpireFunc(ctx, key, expiration)
	}
	return nil
}

func (m *mockRedisClient) Ping(ctx context.Context) error { return nil }
func (m *mockRedisClient) Close() error                   { return nil }

// mockInnerCourseRepo lets decorator tests observe pass-through calls.
type mockInnerCourseRepo struct {
	FindByIDFunc func(ctx context.Context, tx repository.Tx, id string) (*model.Course, error)
	ListAllFunc  func(ctx context.Context, tx repository.Tx) ([]*model.Course, error)
	SaveFunc     func(ctx context.Context, tx repository.Tx, c *model.Course) error
}

var _ repository.CourseRepository = (*mockInnerCourseRepo)(nil)

func (m *mockInnerCourseRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Course, error) {
	return m.FindByIDFunc(ctx, tx, id)
}

func (m *mockInnerCourseRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Course, error) {
	return m.ListAllFunc(ctx, tx)
}

func (m *mockInnerCourseRepo) Save(ctx context.Context, tx repository.Tx, c *model.Course) error {
	return m.SaveFunc(ctx, tx, c)
}

// mockInnerSettingsRepo mirrors the settings store behind the decorator.
type mockInnerSettingsRepo struct {
	GetFunc  func(ctx context.Context, tx repository.Tx) (model.PolicySettings, error)
	SaveFunc func(ctx context.Context, tx repository.Tx, s model.PolicySettings) error
}

var _ repository.SettingsRepository = (*mockInnerSettingsRepo)(nil)

func (m *mockInnerSettingsRepo) Get(ctx context.Context, tx repository.Tx) (model.PolicySettings, error) {
	return m.GetFunc(ctx, tx)
}

func (m *mockInnerSettingsRepo) Save(ctx context.Context, tx repository.Tx, s model.PolicySettings) error {
	return m.SaveFunc(ctx, tx, s)
}
