// internal/events/course.go
package events

import (
	"context"
	"fmt"

	"coursehub/internal/eventbus"
	"coursehub/internal/repository"
	"coursehub/internal/util"
)

// CourseListener answers course lookups and pricing requests over the bus so
// other modules never call the course module directly.
type CourseListener struct {
	db      repository.DBExecutor
	courses repository.CourseRepository
}

// NewCourseListener creates a CourseListener.
func NewCourseListener(db repository.DBExecutor, courses repository.CourseRepository) *CourseListener {
	return &CourseListener{db: db, courses: courses}
}

// Register subscribes the listener's handlers on the bus.
func (l *CourseListener) Register(bus *eventbus.Bus) {
	bus.SubscribeRequest(TopicGetCourse, l.getCourse)
	bus.SubscribeRequest(TopicCheckPricing, l.checkPricing)
}

// getCourse replies with the full course record.
func (l *CourseListener) getCourse(ctx context.Context, payload any) (any, error) {
	courseID, ok := payload.(int64)
	if !ok {
		return nil, fmt.Errorf("getCourse: unexpected payload %T", payload)
	}
	course, err := l.courses.GetCourseByID(ctx, l.db, courseID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, fmt.Errorf("getCourse: course %d: %w", courseID, err)
	}
	return course, nil
}

// checkPricing replies with just the course price.
func (l *CourseListener) checkPricing(ctx context.Context, payload any) (any, error) {
	courseID, ok := payload.(int64)
	if !ok {
		return nil, fmt.Errorf("checkPricing: unexpected payload %T", payload)
	}
	course, err := l.courses.GetCourseByID(ctx, l.db, courseID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, fmt.Errorf("checkPricing: course %d: %w", courseID, err)
	}
	return course.Price, nil
}
