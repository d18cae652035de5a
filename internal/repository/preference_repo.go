// internal/repository/preference_repo.go
package repository

import (
	"context"

	"coursehub/internal/domain"
)

// PreferenceRepository defines the interface for preference data operations.
type PreferenceRepository interface {
	// CreatePreference inserts a preference record unless one already exists
	// for the user, in which case the existing record is returned unchanged
	// (idempotent on user id).
	CreatePreference(ctx context.Context, q DBExecutor, preference *domain.Preference) (*domain.Preference, error)
	// GetPreferenceByUserID retrieves the user's preference record.
	GetPreferenceByUserID(ctx context.Context, q DBExecutor, userID int64) (*domain.Preference, error)
	// UpdatePreferenceByUserID replaces the user's preference document.
	UpdatePreferenceByUserID(ctx context.Context, q DBExecutor, userID int64, document domain.PreferenceDocument) (*domain.Preference, error)
}
