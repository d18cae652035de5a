// internal/domain/enrollment.go
package domain

import "time"

// Enrollment holds the set of courses a user is enrolled in. A course appears
// in the set at most once.
type Enrollment struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"` // Unique owner reference
	Courses   []int64   `db:"courses" json:"courses"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// HasCourse reports whether the enrollment already contains the course.
func (e *Enrollment) HasCourse(courseID int64) bool {
	for _, id := range e.Courses {
		if id == courseID {
			return true
		}
	}
	return false
}
