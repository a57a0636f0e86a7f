package repository

import (
	"context"

	"course-marketplace/internal/domain/model"
)

// CourseRepository is the authoritative price record store.
type CourseRepository interface {
	FindByID(ctx context.Context, tx Tx, id string) (*model.Course, error)
	ListAll(ctx context.Context, tx Tx) ([]*model.Course, error)
	Save(ctx context.Context, tx Tx, c *model.Course) error
}
