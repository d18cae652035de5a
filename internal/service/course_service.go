// internal/service/course_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"coursehub/internal/domain"
	"coursehub/internal/repository"
	"coursehub/internal/util"

	"github.com/shopspring/decimal"
)

// Default course-listing paging.
const (
	DefaultCoursePage  = 1
	DefaultCourseLimit = 10
)

// CourseUpdate carries the course fields to change. Nil fields keep their
// stored value.
type CourseUpdate struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
}

// LessonUpdate carries the lesson fields to change. Nil fields keep their
// stored value.
type LessonUpdate struct {
	Title       *string
	Description *string
	VideoURL    *string
	Duration    *int
}

// CourseService manages the course catalog and the lessons inside it.
type CourseService interface {
	Create(ctx context.Context, creatorID int64, title, description string, price decimal.Decimal) (*domain.Course, error)
	GetByID(ctx context.Context, courseID int64) (*domain.Course, error)
	List(ctx context.Context, page, limit int) ([]domain.Course, error)
	Update(ctx context.Context, courseID int64, update CourseUpdate) (*domain.Course, error)
	Delete(ctx context.Context, courseID int64) error

	AddLesson(ctx context.Context, courseID int64, title, description, videoURL string, duration int) (*domain.Lesson, error)
	ListLessons(ctx context.Context, courseID int64) ([]domain.Lesson, error)
	UpdateLesson(ctx context.Context, courseID, lessonID int64, update LessonUpdate) (*domain.Lesson, error)
	DeleteLesson(ctx context.Context, courseID, lessonID int64) error
}

type courseService struct {
	dbExecutor repository.DBExecutor
	courses    repository.CourseRepository
}

// NewCourseService creates a new instance of CourseService.
func NewCourseService(dbExecutor repository.DBExecutor, courses repository.CourseRepository) CourseService {
	return &courseService{dbExecutor: dbExecutor, courses: courses}
}

func (s *courseService) Create(ctx context.Context, creatorID int64, title, description string, price decimal.Decimal) (*domain.Course, error) {
	if title == "" {
		return nil, fmt.Errorf("create course: title: %w", util.ErrInvalidInput)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("create course: price: %w", util.ErrInvalidInput)
	}
	course := domain.NewCourse(creatorID, title, description, price)
	if err := s.courses.CreateCourse(ctx, s.dbExecutor, course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	return course, nil
}

func (s *courseService) GetByID(ctx context.Context, courseID int64) (*domain.Course, error) {
	course, err := s.courses.GetCourseByID(ctx, s.dbExecutor, courseID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("course %d: %w", courseID, util.ErrCourseNotFound)
		}
		return nil, fmt.Errorf("get course %d: %w", courseID, err)
	}
	return course, nil
}

func (s *courseService) List(ctx context.Context, page, limit int) ([]domain.Course, error) {
	if page < 1 {
		page = DefaultCoursePage
	}
	if limit < 1 {
		limit = DefaultCourseLimit
	}
	courses, err := s.courses.ListCourses(ctx, s.dbExecutor, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (s *courseService) Update(ctx context.Context, courseID int64, update CourseUpdate) (*domain.Course, error) {
	course, err := s.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if update.Title != nil {
		if *update.Title == "" {
			return nil, fmt.Errorf("update course %d: title: %w", courseID, util.ErrInvalidInput)
		}
		course.Title = *update.Title
	}
	if update.Description != nil {
		course.Description = *update.Description
	}
	if update.Price != nil {
		if update.Price.IsNegative() {
			return nil, fmt.Errorf("update course %d: price: %w", courseID, util.ErrInvalidInput)
		}
		course.Price = *update.Price
	}
	course.UpdatedAt = time.Now().UTC()
	if err := s.courses.UpdateCourse(ctx, s.dbExecutor, course); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("course %d: %w", courseID, util.ErrCourseNotFound)
		}
		return nil, fmt.Errorf("update course %d: %w", courseID, err)
	}
	return course, nil
}

func (s *courseService) Delete(ctx context.Context, courseID int64) error {
	if err := s.courses.DeleteCourse(ctx, s.dbExecutor, courseID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return fmt.Errorf("course %d: %w", courseID, util.ErrCourseNotFound)
		}
		return fmt.Errorf("delete course %d: %w", courseID, err)
	}
	return nil
}

func (s *courseService) AddLesson(ctx context.Context, courseID int64, title, description, videoURL string, duration int) (*domain.Lesson, error) {
	if title == "" {
		return nil, fmt.Errorf("add lesson: title: %w", util.ErrInvalidInput)
	}
	if duration < 0 {
		return nil, fmt.Errorf("add lesson: duration: %w", util.ErrInvalidInput)
	}
	// The course must exist before a lesson can hang off it.
	if _, err := s.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	lesson := domain.NewLesson(courseID, title, description, videoURL, duration)
	if err := s.courses.CreateLesson(ctx, s.dbExecutor, lesson); err != nil {
		return nil, fmt.Errorf("add lesson to course %d: %w", courseID, err)
	}
	return lesson, nil
}

func (s *courseService) ListLessons(ctx context.Context, courseID int64) ([]domain.Lesson, error) {
	if _, err := s.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	lessons, err := s.courses.ListLessonsByCourseID(ctx, s.dbExecutor, courseID)
	if err != nil {
		return nil, fmt.Errorf("list lessons of course %d: %w", courseID, err)
	}
	return lessons, nil
}

func (s *courseService) UpdateLesson(ctx context.Context, courseID, lessonID int64, update LessonUpdate) (*domain.Lesson, error) {
	lesson, err := s.courses.GetLessonByID(ctx, s.dbExecutor, courseID, lessonID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("lesson %d of course %d: %w", lessonID, courseID, util.ErrLessonNotFound)
		}
		return nil, fmt.Errorf("get lesson %d of course %d: %w", lessonID, courseID, err)
	}
	if update.Title != nil {
		if *update.Title == "" {
			return nil, fmt.Errorf("update lesson %d: title: %w", lessonID, util.ErrInvalidInput)
		}
		lesson.Title = *update.Title
	}
	if update.Description != nil {
		lesson.Description = *update.Description
	}
	if update.VideoURL != nil {
		lesson.VideoURL = *update.VideoURL
	}
	if update.Duration != nil {
		if *update.Duration < 0 {
			return nil, fmt.Errorf("update lesson %d: duration: %w", lessonID, util.ErrInvalidInput)
		}
		lesson.Duration = *update.Duration
	}
	lesson.UpdatedAt = time.Now().UTC()
	if err := s.courses.UpdateLesson(ctx, s.dbExecutor, lesson); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("lesson %d of course %d: %w", lessonID, courseID, util.ErrLessonNotFound)
		}
		return nil, fmt.Errorf("update lesson %d of course %d: %w", lessonID, courseID, err)
	}
	return lesson, nil
}

func (s *courseService) DeleteLesson(ctx context.Context, courseID, lessonID int64) error {
	if err := s.courses.DeleteLesson(ctx, s.dbExecutor, courseID, lessonID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return fmt.Errorf("lesson %d of course %d: %w", lessonID, courseID, util.ErrLessonNotFound)
		}
		return fmt.Errorf("delete lesson %d of course %d: %w", lessonID, courseID, err)
	}
	return nil
}
