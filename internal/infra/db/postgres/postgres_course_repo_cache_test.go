//go:build !integration

package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"course-marketplace/internal/domain/model"
	"course-marketplace/internal/domain/ports/repository"
)

func TestCourseRepoCacheDecorator(t *testing.T) {
	ctx := context.Background()
	course := &model.Course{ID: "CS301", Title: "Algorithms", Price: 499}
	courseJSON, _ := json.Marshal(course)

	t.Run("FindByID should return from cache on hit", func(t *testing.T) {
		// Arrange
		mockRedis := &mockRedisClient{
			GetFunc: func(ctx context.Context, key string) (string, error) {
				return string(courseJSON), nil
			},
		}
		innerCalled := false
		inner := &mockInnerCourseRepo{
			FindByIDFunc: func(ctx context.Context, tx repository.Tx, id string) (*model.Course, error) {
				innerCalled = true
				return nil, nil
			},
		}
		decorator := NewCourseRepoCacheDecorator(inner, mockRedis, time.Hour)

		// Act
		result, err := decorator.FindByID(ctx, nil, "CS301")

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if innerCalled {
			t.Error("inner repository should not be called on a cache hit")
		}
		if result == nil || result.ID != "CS301" || result.Price != 499 {
			t.Errorf("did not return the cached course: %+v", result)
		}
	})

	t.Run("FindByID should fall through and populate on miss", func(t *testing.T) {
		// Arrange
		var setKey string
		mockRedis := &mockRedisClient{
			SetFunc: func(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
				setKey = key
				return nil
			},
		}
		inner := &mockInnerCourseRepo{
			FindByIDFunc: func(ctx context.Context, tx repository.Tx, id string) (*model.Course, error) {
				cp := *course
				return &cp, nil
			},
		}
		decorator := NewCourseRepoCacheDecorator(inner, mockRedis, time.Hour)

		// Act
		result, err := decorator.FindByID(ctx, nil, "CS301")

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result == nil || result.ID != "CS301" {
			t.Errorf("unexpected result: %+v", result)
		}
		if setKey != "course:CS301" {
			t.Errorf("expected the miss to populate course:CS301, got %q", setKey)
		}
	})

	t.Run("Save should invalidate both the entry and the list", func(t *testing.T) {
		// Arrange
		var deletedKeys []string
		mockRedis := &mockRedisClient{
			DelFunc: func(ctx context.Context, keys ...string) error {
				deletedKeys = append(deletedKeys, keys...)
				return nil
			},
		}
		inner := &mockInnerCourseRepo{
			SaveFunc: func(ctx context.Context, tx repository.Tx, c *model.Course) error {
				return nil
			},
		}
		decorator := NewCourseRepoCacheDecorator(inner, mockRedis, time.Hour)

		// Act
		err := decorator.Save(ctx, nil, course)

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(deletedKeys) != 2 {
			t.Fatalf("expected 2 keys to be deleted, but got %d", len(deletedKeys))
		}
	})
}
