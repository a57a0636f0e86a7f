package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"course-marketplace/internal/domain/model"
	"course-marketplace/internal/domain/ports/repository"
)

// Compile-time check
var _ CatalogUseCase = (*catalogUC)(nil)

// CatalogUseCase lists the purchasable courses. The client only ever sees
// prices through here; it never supplies one.
type CatalogUseCase interface {
	List(ctx context.Context) ([]*model.Course, error)
}

type catalogUC struct {
	courses repository.CourseRepository
	log     *zerolog.Logger
}

func NewCatalogUseCase(courses repository.CourseRepository, logger *zerolog.Logger) *catalogUC {
	return &catalogUC{courses: courses, log: logger}
}

func (u *catalogUC) List(ctx context.Context) ([]*model.Course, error) {
	return u.courses.ListAll(ctx, repository.NoTX)
}
