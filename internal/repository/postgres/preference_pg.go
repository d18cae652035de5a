// internal/repository/postgres/preference_pg.go
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
)

// PreferenceRepository implements repository.PreferenceRepository for
// PostgreSQL.
type PreferenceRepository struct{}

// NewPreferenceRepository creates a new PreferenceRepository.
func NewPreferenceRepository(db *sqlx.DB) repository.PreferenceRepository {
	return &PreferenceRepository{}
}

// CreatePreference inserts the record unless one exists for the user. The
// existing record wins; a concurrent insert losing the unique-index race is
// resolved by re-reading.
func (r *PreferenceRepository) CreatePreference(ctx context.Context, q repository.DBExecutor, preference *domain.Preference) (*domain.Preference, error) {
	existing, err := r.GetPreferenceByUserID(ctx, q, preference.UserID)
	if err == nil {
		return existing, nil
	}
	if !util.IsError(err, util.ErrNotFound) {
		return nil, err
	}

	query := `INSERT INTO preferences (user_id, document, created_at, updated_at)
              VALUES ($1, $2, $3, $4) RETURNING id`
	err = q.QueryRowContext(ctx, query,
		preference.UserID,
		preference.Document,
		preference.CreatedAt,
		preference.UpdatedAt,
	).Scan(&preference.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return r.GetPreferenceByUserID(ctx, q, preference.UserID)
		}
		return nil, fmt.Errorf("failed to create preference: %w", storeFailure(err))
	}
	return preference, nil
}

// GetPreferenceByUserID retrieves the user's preference record.
func (r *PreferenceRepository) GetPreferenceByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Preference, error) {
	var preference domain.Preference
	query := `SELECT id, user_id, document, created_at, updated_at FROM preferences WHERE user_id = $1`
	err := q.GetContext(ctx, &preference, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get preference for user %d: %w", userID, storeFailure(err))
	}
	return &preference, nil
}

// UpdatePreferenceByUserID replaces the user's preference document.
func (r *PreferenceRepository) UpdatePreferenceByUserID(ctx context.Context, q repository.DBExecutor, userID int64, document domain.PreferenceDocument) (*domain.Preference, error) {
	var preference domain.Preference
	query := `UPDATE preferences SET document = $2, updated_at = $3 WHERE user_id = $1
              RETURNING id, user_id, document, created_at, updated_at`
	err := q.GetContext(ctx, &preference, query, userID, document, time.Now().UTC())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update preference for user %d: %w", userID, storeFailure(err))
	}
	return &preference, nil
}
