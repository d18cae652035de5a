// internal/repository/activity_repo.go
package repository

import (
	"context"

	"coursehub/internal/domain"
)

// ActivityRepository defines the interface for user activity records. The
// trail is append-only; records are never updated or deleted.
type ActivityRepository interface {
	// CreateActivity appends an activity record.
	CreateActivity(ctx context.Context, q DBExecutor, activity *domain.Activity) error
	// GetActivitiesByUserID retrieves a user's activity trail, newest first.
	GetActivitiesByUserID(ctx context.Context, q DBExecutor, userID int64) ([]domain.Activity, error)
}
