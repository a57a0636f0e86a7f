package model

import (
	"time"

	"course-marketplace/internal/domain"

	"github.com/google/uuid"
)

// Course is the authoritative price record for a purchasable course.
// Price is in major currency units; 0 means intentionally free, which is
// distinct from the course not existing at all.
type Course struct {
	ID        string
	Title     string
	Price     float64
	CreatedAt time.Time
}

func (c *Course) IsZero() bool { return c == nil || c.ID == "" }

// NewCourse validates and constructs a course record.
func NewCourse(id, title string, price float64) (*Course, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if title == "" || price < 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &Course{
		ID:        id,
		Title:     title,
		Price:     price,
		CreatedAt: time.Now(),
	}, nil
}
