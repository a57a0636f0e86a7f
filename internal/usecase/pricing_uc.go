package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"course-marketplace/internal/domain"
	"course-marketplace/internal/domain/ports/repository"
)

// Compile-time check
var _ PricingUseCase = (*pricingUC)(nil)

// PricingUseCase resolves basket totals from the authoritative course
// records. Client-declared amounts are never consulted anywhere.
type PricingUseCase interface {
	// ResolveTotal sums the current price of every course id. Any id without
	// a record fails the whole basket; a total <= 0 is rejected before any
	// order can be issued.
	ResolveTotal(ctx context.Context, courseIDs []string) (float64, error)
}

type pricingUC struct {
	courses repository.CourseRepository
	log     *zerolog.Logger
}

func NewPricingUseCase(courses repository.CourseRepository, logger *zerolog.Logger) *pricingUC {
	return &pricingUC{courses: courses, log: logger}
}

func (u *pricingUC) ResolveTotal(ctx context.Context, courseIDs []string) (float64, error) {
	if len(courseIDs) == 0 {
		return 0, domain.ErrInvalidArgument
	}

	var total float64
	for _, id := range courseIDs {
		c, err := u.courses.FindByID(ctx, repository.NoTX, id)
		if err != nil {
			if errors.Is(err, domain.ErrCourseNotFound) {
				// No partial success: one unknown id aborts the basket.
				return 0, &domain.CourseNotFoundError{ID: id}
			}
			return 0, err
		}
		total += c.Price
	}

	if total <= 0 {
		// A zero-value gateway order would be abusable.
		return 0, domain.ErrInvalidAmount
	}
	return total, nil
}
