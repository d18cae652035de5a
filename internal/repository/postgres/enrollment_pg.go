// internal/repository/postgres/enrollment_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"coursehub/internal/domain"
	"coursehub/internal/repository"
	"coursehub/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// EnrollmentRepository implements repository.EnrollmentRepository for
// PostgreSQL. The enrolled-course set is a BIGINT[] column on one row per
// user, matching the one-record-per-user ownership model.
type EnrollmentRepository struct{}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(db *sqlx.DB) repository.EnrollmentRepository {
	return &EnrollmentRepository{}
}

// GetEnrollmentByUserID retrieves the user's enrollment record.
func (r *EnrollmentRepository) GetEnrollmentByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Enrollment, error) {
	var enrollment domain.Enrollment
	query := `SELECT id, user_id, courses, created_at, updated_at FROM enrollments WHERE user_id = $1`
	row := q.QueryRowContext(ctx, query, userID)
	err := row.Scan(
		&enrollment.ID,
		&enrollment.UserID,
		(*pq.Int64Array)(&enrollment.Courses),
		&enrollment.CreatedAt,
		&enrollment.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get enrollment for user %d: %w", userID, storeFailure(err))
	}
	return &enrollment, nil
}

// AddCourse puts the course into the user's enrolled set in one atomic
// statement. The conflict-update predicate rejects a course that is already
// in the set, so the set never holds a course twice even under concurrent
// enrollment attempts.
func (r *EnrollmentRepository) AddCourse(ctx context.Context, q repository.DBExecutor, userID, courseID int64) (*domain.Enrollment, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO enrollments (user_id, courses, created_at, updated_at)
		VALUES ($1, ARRAY[$2]::bigint[], $3, $3)
		ON CONFLICT (user_id) DO UPDATE
			SET courses = array_append(enrollments.courses, $2), updated_at = $3
			WHERE NOT enrollments.courses @> ARRAY[$2]::bigint[]
		RETURNING id, user_id, courses, created_at, updated_at`
	var enrollment domain.Enrollment
	row := q.QueryRowContext(ctx, query, userID, courseID, now)
	err := row.Scan(
		&enrollment.ID,
		&enrollment.UserID,
		(*pq.Int64Array)(&enrollment.Courses),
		&enrollment.CreatedAt,
		&enrollment.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			// The conflict-update predicate filtered the row: already enrolled.
			return nil, fmt.Errorf("user %d course %d: %w", userID, courseID, util.ErrDuplicateEnrollment)
		}
		return nil, fmt.Errorf("failed to add course %d to enrollment of user %d: %w", courseID, userID, storeFailure(err))
	}
	return &enrollment, nil
}

// RemoveCourse takes the course out of the user's enrolled set.
func (r *EnrollmentRepository) RemoveCourse(ctx context.Context, q repository.DBExecutor, userID, courseID int64) (*domain.Enrollment, error) {
	query := `
		UPDATE enrollments
		SET courses = array_remove(courses, $2), updated_at = $3
		WHERE user_id = $1 AND courses @> ARRAY[$2]::bigint[]
		RETURNING id, user_id, courses, created_at, updated_at`
	var enrollment domain.Enrollment
	row := q.QueryRowContext(ctx, query, userID, courseID, time.Now().UTC())
	err := row.Scan(
		&enrollment.ID,
		&enrollment.UserID,
		(*pq.Int64Array)(&enrollment.Courses),
		&enrollment.CreatedAt,
		&enrollment.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user %d course %d: %w", userID, courseID, util.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to remove course %d from enrollment of user %d: %w", courseID, userID, storeFailure(err))
	}
	return &enrollment, nil
}
