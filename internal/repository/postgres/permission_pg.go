// internal/repository/postgres/permission_pg.go
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

// PermissionRepository implements repository.PermissionRepository for
// PostgreSQL.
type PermissionRepository struct{}

// NewPermissionRepository creates a new PermissionRepository.
func NewPermissionRepository(db *sqlx.DB) repository.PermissionRepository {
	return &PermissionRepository{}
}

// CreatePermission inserts the record unless one exists for the email. The
// existing record wins; a concurrent insert losing the unique-index race is
// resolved by re-reading.
func (r *PermissionRepository) CreatePermission(ctx context.Context, q repository.DBExecutor, permission *domain.Permission) (*domain.Permission, error) {
	existing, err := r.GetPermissionByEmail(ctx, q, permission.Email)
	if err == nil {
		return existing, nil
	}
	if !util.IsError(err, util.ErrNotFound) {
		return nil, err
	}

	query := `INSERT INTO permissions (user_id, email, permissions, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err = q.QueryRowContext(ctx, query,
		permission.UserID,
		permission.Email,
		permission.Permissions,
		permission.CreatedAt,
		permission.UpdatedAt,
	).Scan(&permission.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return r.GetPermissionByEmail(ctx, q, permission.Email)
		}
		return nil, fmt.Errorf("failed to create permission: %w", storeFailure(err))
	}
	return permission, nil
}

// GetPermissionByEmail retrieves the permission record for an email.
func (r *PermissionRepository) GetPermissionByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.Permission, error) {
	var permission domain.Permission
	query := `SELECT id, user_id, email, permissions, created_at, updated_at FROM permissions WHERE email = $1`
	err := q.GetContext(ctx, &permission, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get permission for email '%s': %w", email, storeFailure(err))
	}
	return &permission, nil
}

// UpdatePermissionsByUserID replaces the user's permission set.
func (r *PermissionRepository) UpdatePermissionsByUserID(ctx context.Context, q repository.DBExecutor, userID int64, permissions domain.PermissionSet) (*domain.Permission, error) {
	var permission domain.Permission
	query := `UPDATE permissions SET permissions = $2, updated_at = $3 WHERE user_id = $1
              RETURNING id, user_id, email, permissions, created_at, updated_at`
	err := q.GetContext(ctx, &permission, query, userID, permissions, time.Now().UTC())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update permissions for user %d: %w", userID, storeFailure(err))
	}
	return &permission, nil
}

// DeletePermissionByUserID removes the user's permission record.
func (r *PermissionRepository) DeletePermissionByUserID(ctx context.Context, q repository.DBExecutor, userID int64) error {
	query := `DELETE FROM permissions WHERE user_id = $1`
	if _, err := q.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete permission for user %d: %w", userID, storeFailure(err))
	}
	return nil
}
