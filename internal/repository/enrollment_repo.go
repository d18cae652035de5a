// internal/repository/enrollment_repo.go
package repository

import (
	"context"

	"coursehub/internal/domain"
)

// EnrollmentRepository defines the interface for enrollment data operations.
type EnrollmentRepository interface {
	// GetEnrollmentByUserID retrieves the user's enrollment record.
	GetEnrollmentByUserID(ctx context.Context, q DBExecutor, userID int64) (*domain.Enrollment, error)
	// AddCourse puts the course into the user's enrolled set, creating the
	// record on first enrollment. A course already in the set fails with
	// util.ErrDuplicateEnrollment; the set never holds a course twice.
	AddCourse(ctx context.Context, q DBExecutor, userID, courseID int64) (*domain.Enrollment, error)
	// RemoveCourse takes the course out of the user's enrolled set. Fails
	// with util.ErrNotFound when the course is not in the set.
	RemoveCourse(ctx context.Context, q DBExecutor, userID, courseID int64) (*domain.Enrollment, error)
}
