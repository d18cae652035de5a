// internal/domain/course.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Course represents a course offered on the platform. A zero price marks a
// free course.
type Course struct {
	ID          int64           `db:"id" json:"id"`
	Title       string          `db:"title" json:"title"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	CreatorID   int64           `db:"creator_id" json:"creator_id"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// NewCourse creates a new Course instance.
func NewCourse(creatorID int64, title, description string, price decimal.Decimal) *Course {
	now := time.Now().UTC()
	return &Course{
		Title:       title,
		Description: description,
		Price:       price,
		CreatorID:   creatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsPaid reports whether enrolling in the course requires payment.
func (c *Course) IsPaid() bool {
	return c.Price.IsPositive()
}
