// internal/repository/postgres/course_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"coursehub/internal/domain"
	"coursehub/internal/repository"
	"coursehub/internal/util"

	"github.com/jmoiron/sqlx"
)

// CourseRepository implements repository.CourseRepository for PostgreSQL.
type CourseRepository struct{}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(db *sqlx.DB) repository.CourseRepository {
	return &CourseRepository{}
}

// CreateCourse inserts a new course using the provided DBExecutor.
func (r *CourseRepository) CreateCourse(ctx context.Context, q repository.DBExecutor, course *domain.Course) error {
	query := `INSERT INTO courses (title, description, price, creator_id, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		course.Title,
		course.Description,
		course.Price,
		course.CreatorID,
		course.CreatedAt,
		course.UpdatedAt,
	).Scan(&course.ID)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", storeFailure(err))
	}
	return nil
}

// GetCourseByID retrieves a course by its ID using the provided DBExecutor.
func (r *CourseRepository) GetCourseByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Course, error) {
	var course domain.Course
	query := `SELECT id, title, description, price, creator_id, created_at, updated_at FROM courses WHERE id = $1`
	err := q.GetContext(ctx, &course, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get course by ID %d: %w", id, storeFailure(err))
	}
	return &course, nil
}

// ListCourses retrieves a page of courses, newest first.
func (r *CourseRepository) ListCourses(ctx context.Context, q repository.DBExecutor, limit, offset int) ([]domain.Course, error) {
	courses := []domain.Course{}
	query := `SELECT id, title, description, price, creator_id, created_at, updated_at
              FROM courses ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	err := q.SelectContext(ctx, &courses, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", storeFailure(err))
	}
	return courses, nil
}

// UpdateCourse persists the course's mutable fields by ID.
func (r *CourseRepository) UpdateCourse(ctx context.Context, q repository.DBExecutor, course *domain.Course) error {
	query := `UPDATE courses SET title = $1, description = $2, price = $3, updated_at = $4 WHERE id = $5`
	result, err := q.ExecContext(ctx, query,
		course.Title,
		course.Description,
		course.Price,
		course.UpdatedAt,
		course.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update course %d: %w", course.ID, storeFailure(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected updating course %d: %w", course.ID, storeFailure(err))
	}
	if rowsAffected == 0 {
		return fmt.Errorf("course %d: %w", course.ID, util.ErrNotFound)
	}
	return nil
}

// DeleteCourse removes a course. Lessons go with it via ON DELETE CASCADE on
// lessons.course_id.
func (r *CourseRepository) DeleteCourse(ctx context.Context, q repository.DBExecutor, id int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete course %d: %w", id, storeFailure(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected deleting course %d: %w", id, storeFailure(err))
	}
	if rowsAffected == 0 {
		return fmt.Errorf("course %d: %w", id, util.ErrNotFound)
	}
	return nil
}

// CreateLesson inserts a lesson for a course using the provided DBExecutor.
func (r *CourseRepository) CreateLesson(ctx context.Context, q repository.DBExecutor, lesson *domain.Lesson) error {
	query := `INSERT INTO lessons (course_id, title, description, video_url, duration, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		lesson.CourseID,
		lesson.Title,
		lesson.Description,
		lesson.VideoURL,
		lesson.Duration,
		lesson.CreatedAt,
		lesson.UpdatedAt,
	).Scan(&lesson.ID)
	if err != nil {
		return fmt.Errorf("failed to create lesson for course %d: %w", lesson.CourseID, storeFailure(err))
	}
	return nil
}

// GetLessonByID retrieves a lesson scoped to its course.
func (r *CourseRepository) GetLessonByID(ctx context.Context, q repository.DBExecutor, courseID, lessonID int64) (*domain.Lesson, error) {
	var lesson domain.Lesson
	query := `SELECT id, course_id, title, description, video_url, duration, created_at, updated_at
              FROM lessons WHERE id = $1 AND course_id = $2`
	err := q.GetContext(ctx, &lesson, query, lessonID, courseID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get lesson %d of course %d: %w", lessonID, courseID, storeFailure(err))
	}
	return &lesson, nil
}

// ListLessonsByCourseID retrieves a course's lessons in creation order. The
// video URL column is deliberately not selected.
func (r *CourseRepository) ListLessonsByCourseID(ctx context.Context, q repository.DBExecutor, courseID int64) ([]domain.Lesson, error) {
	lessons := []domain.Lesson{}
	query := `SELECT id, course_id, title, description, duration, created_at, updated_at
              FROM lessons WHERE course_id = $1 ORDER BY created_at ASC, id ASC`
	err := q.SelectContext(ctx, &lessons, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons for course %d: %w", courseID, storeFailure(err))
	}
	return lessons, nil
}

// UpdateLesson persists the lesson's mutable fields, scoped to the course.
func (r *CourseRepository) UpdateLesson(ctx context.Context, q repository.DBExecutor, lesson *domain.Lesson) error {
	query := `UPDATE lessons SET title = $1, description = $2, video_url = $3, duration = $4, updated_at = $5
              WHERE id = $6 AND course_id = $7`
	result, err := q.ExecContext(ctx, query,
		lesson.Title,
		lesson.Description,
		lesson.VideoURL,
		lesson.Duration,
		lesson.UpdatedAt,
		lesson.ID,
		lesson.CourseID,
	)
	if err != nil {
		return fmt.Errorf("failed to update lesson %d of course %d: %w", lesson.ID, lesson.CourseID, storeFailure(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected updating lesson %d: %w", lesson.ID, storeFailure(err))
	}
	if rowsAffected == 0 {
		return fmt.Errorf("lesson %d of course %d: %w", lesson.ID, lesson.CourseID, util.ErrNotFound)
	}
	return nil
}

// DeleteLesson removes a lesson, scoped to the course.
func (r *CourseRepository) DeleteLesson(ctx context.Context, q repository.DBExecutor, courseID, lessonID int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM lessons WHERE id = $1 AND course_id = $2`, lessonID, courseID)
	if err != nil {
		return fmt.Errorf("failed to delete lesson %d of course %d: %w", lessonID, courseID, storeFailure(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected deleting lesson %d: %w", lessonID, storeFailure(err))
	}
	if rowsAffected == 0 {
		return fmt.Errorf("lesson %d of course %d: %w", lessonID, courseID, util.ErrNotFound)
	}
	return nil
}
