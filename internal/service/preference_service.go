// internal/service/preference_service.go
package service

import (
	"context"
	"fmt"

	"coursehub/internal/domain"
	"coursehub/internal/repository"
	"coursehub/internal/util"
)

// PreferenceService manages per-user settings documents.
type PreferenceService interface {
	// Get returns the user's preference record. A user whose preference was
	// never provisioned (a tolerated outcome of the account fan-out) gets
	// the default document rather than an error.
	Get(ctx context.Context, userID int64) (*domain.Preference, error)
	Update(ctx context.Context, userID int64, document domain.PreferenceDocument) (*domain.Preference, error)
}

type preferenceService struct {
	dbExecutor  repository.DBExecutor
	preferences repository.PreferenceRepository
}

// NewPreferenceService creates a new instance of PreferenceService.
func NewPreferenceService(dbExecutor repository.DBExecutor, preferences repository.PreferenceRepository) PreferenceService {
	return &preferenceService{dbExecutor: dbExecutor, preferences: preferences}
}

func (s *preferenceService) Get(ctx context.Context, userID int64) (*domain.Preference, error) {
	preference, err := s.preferences.GetPreferenceByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return domain.NewPreference(userID, domain.DefaultPreferenceDocument()), nil
		}
		return nil, fmt.Errorf("get preference for user %d: %w", userID, err)
	}
	return preference, nil
}

func (s *preferenceService) Update(ctx context.Context, userID int64, document domain.PreferenceDocument) (*domain.Preference, error) {
	preference, err := s.preferences.UpdatePreferenceByUserID(ctx, s.dbExecutor, userID, document)
	if err != nil {
		return nil, fmt.Errorf("update preference for user %d: %w", userID, err)
	}
	return preference, nil
}
