// internal/repository/course_repo.go
package repository

import (
	"context"

	"coursehub/internal/domain"
)

// CourseRepository defines the interface for course and lesson data
// operations. Lessons belong to the course module; no other module reads
// them.
type CourseRepository interface {
	// CreateCourse adds a new course.
	CreateCourse(ctx context.Context, q DBExecutor, course *domain.Course) error
	// GetCourseByID retrieves a course by its ID.
	GetCourseByID(ctx context.Context, q DBExecutor, id int64) (*domain.Course, error)
	// ListCourses retrieves a page of courses ordered by creation time,
	// newest first.
	ListCourses(ctx context.Context, q DBExecutor, limit, offset int) ([]domain.Course, error)
	// UpdateCourse persists changed course fields by ID.
	UpdateCourse(ctx context.Context, q DBExecutor, course *domain.Course) error
	// DeleteCourse removes a course and its lessons.
	DeleteCourse(ctx context.Context, q DBExecutor, id int64) error

	// CreateLesson adds a lesson to a course.
	CreateLesson(ctx context.Context, q DBExecutor, lesson *domain.Lesson) error
	// GetLessonByID retrieves a lesson scoped to its course.
	GetLessonByID(ctx context.Context, q DBExecutor, courseID, lessonID int64) (*domain.Lesson, error)
	// ListLessonsByCourseID retrieves a course's lessons in creation order.
	// The video URL is withheld; it is only served per lesson.
	ListLessonsByCourseID(ctx context.Context, q DBExecutor, courseID int64) ([]domain.Lesson, error)
	// UpdateLesson persists changed lesson fields, scoped to the course.
	UpdateLesson(ctx context.Context, q DBExecutor, lesson *domain.Lesson) error
	// DeleteLesson removes a lesson, scoped to the course.
	DeleteLesson(ctx context.Context, q DBExecutor, courseID, lessonID int64) error
}
