// internal/repository/postgres/activity_pg.go
package postgres

import (
	"context"
	"fmt"

	"coursehub/internal/domain"
	"coursehub/internal/repository"

	"github.com/jmoiron/sqlx"
)

// ActivityRepository implements repository.ActivityRepository for PostgreSQL.
type ActivityRepository struct{}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *sqlx.DB) repository.ActivityRepository {
	return &ActivityRepository{}
}

// CreateActivity appends an activity record using the provided DBExecutor.
func (r *ActivityRepository) CreateActivity(ctx context.Context, q repository.DBExecutor, activity *domain.Activity) error {
	query := `INSERT INTO activities (user_id, event, detail, created_at)
              VALUES ($1, $2, $3, $4) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		activity.UserID,
		activity.Event,
		activity.Detail,
		activity.CreatedAt,
	).Scan(&activity.ID)
	if err != nil {
		return fmt.Errorf("failed to create activity for user %d: %w", activity.UserID, storeFailure(err))
	}
	return nil
}

// GetActivitiesByUserID retrieves a user's activity trail, newest first.
func (r *ActivityRepository) GetActivitiesByUserID(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Activity, error) {
	activities := []domain.Activity{}
	query := `SELECT id, user_id, event, detail, created_at
              FROM activities WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	err := q.SelectContext(ctx, &activities, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities for user %d: %w", userID, storeFailure(err))
	}
	return activities, nil
}
