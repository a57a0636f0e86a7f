package model

import "course-marketplace/internal/domain"

type BasketKind string

const (
	BasketKindSingle BasketKind = "single"
	BasketKindBundle BasketKind = "bundle"
)

// Basket is the normalized form of a checkout request. The API accepts either
// a single courseId or a courseIds list; NewBasket collapses both into one
// deduplicated id set so nothing downstream branches on the request shape.
type Basket struct {
	CourseIDs []string
	Kind      BasketKind
}

// NewBasket normalizes the two request forms. Exactly one of courseID /
// courseIDs must be populated; duplicates in the list collapse, order of
// first appearance is kept.
func NewBasket(courseID string, courseIDs []string) (*Basket, error) {
	if courseID != "" && len(courseIDs) > 0 {
		return nil, domain.ErrInvalidArgument
	}
	if courseID != "" {
		return &Basket{CourseIDs: []string{courseID}, Kind: BasketKindSingle}, nil
	}
	seen := make(map[string]struct{}, len(courseIDs))
	ids := make([]string, 0, len(courseIDs))
	for _, id := range courseIDs {
		if id == "" {
			return nil, domain.ErrInvalidArgument
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &Basket{CourseIDs: ids, Kind: BasketKindBundle}, nil
}
