package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"course-marketplace/internal/domain/model"
	"course-marketplace/internal/domain/ports/repository"
	"course-marketplace/internal/infra/metrics"
	red "course-marketplace/internal/infra/redis"
)

var _ repository.CourseRepository = (*courseRepoCacheDecorator)(nil)

type courseRepoCacheDecorator struct {
	inner repository.CourseRepository
	cache red.RedisClient
	ttl   time.Duration
}

func NewCourseRepoCacheDecorator(inner repository.CourseRepository, cache red.RedisClient, ttl time.Duration) repository.CourseRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &courseRepoCacheDecorator{inner: inner, cache: cache, ttl: ttl}
}

func (d *courseRepoCacheDecorator) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Course, error) {
	key := fmt.Sprintf("course:%s", id)
	val, err := d.cache.Get(ctx, key)
	if err == nil {
		metrics.IncCacheRequest("course", "hit")
		var c model.Course
		if json.Unmarshal([]byte(val), &c) == nil {
			return &c, nil
		}
	}

	metrics.IncCacheRequest("course", "miss")
	c, err := d.inner.FindByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if c != nil {
		bytes, _ := json.Marshal(c)
		_ = d.cache.Set(ctx, key, bytes, d.ttl)
	}
	return c, nil
}

func (d *courseRepoCacheDecorator) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Course, error) {
	key := "courses:all"
	val, err := d.cache.Get(ctx, key)
	if err == nil {
		metrics.IncCacheRequest("course_list", "hit")
		var cs []*model.Course
		if json.Unmarshal([]byte(val), &cs) == nil {
			return cs, nil
		}
	}

	metrics.IncCacheRequest("course_list", "miss")
	cs, err := d.inner.ListAll(ctx, tx)
	if err != nil {
		return nil, err
	}
	if len(cs) > 0 {
		bytes, _ := json.Marshal(cs)
		_ = d.cache.Set(ctx, key, bytes, d.ttl)
	}
	return cs, nil
}

// For write operations, we must invalidate the cache.
func (d *courseRepoCacheDecorator) Save(ctx context.Context, tx repository.Tx, c *model.Course) error {
	_ = d.cache.Del(ctx, fmt.Sprintf("course:%s", c.ID), "courses:all")
	return d.inner.Save(ctx, tx, c)
}
