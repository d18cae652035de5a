// internal/service/activity_service.go
package service

import (
	"context"
	"fmt"

	"coursehub/internal/domain"
	"coursehub/internal/repository"
)

// ActivityService reads a user's activity trail. Writes never come through
// here; the activity listener appends records off the bus.
type ActivityService interface {
	List(ctx context.Context, userID int64) ([]domain.Activity, error)
}

type activityService struct {
	dbExecutor repository.DBExecutor
	activities repository.ActivityRepository
}

// NewActivityService creates a new instance of ActivityService.
func NewActivityService(dbExecutor repository.DBExecutor, activities repository.ActivityRepository) ActivityService {
	return &activityService{dbExecutor: dbExecutor, activities: activities}
}

func (s *activityService) List(ctx context.Context, userID int64) ([]domain.Activity, error) {
	activities, err := s.activities.GetActivitiesByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list activities for user %d: %w", userID, err)
	}
	return activities, nil
}
