// internal/repository/permission_repo.go
package repository

import (
	"context"

	"coursehub/internal/domain"
)

// PermissionRepository defines the interface for permission data operations.
type PermissionRepository interface {
	// CreatePermission inserts a permission record unless one already exists
	// for the email, in which case the existing record is returned unchanged
	// (idempotent on email).
	CreatePermission(ctx context.Context, q DBExecutor, permission *domain.Permission) (*domain.Permission, error)
	// GetPermissionByEmail retrieves the permission record for an email.
	GetPermissionByEmail(ctx context.Context, q DBExecutor, email string) (*domain.Permission, error)
	// UpdatePermissionsByUserID replaces the user's permission set.
	UpdatePermissionsByUserID(ctx context.Context, q DBExecutor, userID int64, permissions domain.PermissionSet) (*domain.Permission, error)
	// DeletePermissionByUserID removes the user's permission record.
	DeletePermissionByUserID(ctx context.Context, q DBExecutor, userID int64) error
}
