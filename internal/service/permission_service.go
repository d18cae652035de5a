// internal/service/permission_service.go
package service

import (
	"context"
	"fmt"

	"coursehub/internal/domain"
	"coursehub/internal/repository"
	"coursehub/internal/util"
)

// PermissionService manages per-user permission sets. Creation happens only
// through the userCreated fan-out, not here.
type PermissionService interface {
	GetByEmail(ctx context.Context, email string) (*domain.Permission, error)
	Update(ctx context.Context, userID int64, permissions domain.PermissionSet) (*domain.Permission, error)
	Delete(ctx context.Context, userID int64) error
}

type permissionService struct {
	dbExecutor  repository.DBExecutor
	permissions repository.PermissionRepository
}

// NewPermissionService creates a new instance of PermissionService.
func NewPermissionService(dbExecutor repository.DBExecutor, permissions repository.PermissionRepository) PermissionService {
	return &permissionService{dbExecutor: dbExecutor, permissions: permissions}
}

func (s *permissionService) GetByEmail(ctx context.Context, email string) (*domain.Permission, error) {
	permission, err := s.permissions.GetPermissionByEmail(ctx, s.dbExecutor, email)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("permissions for '%s': %w", email, util.ErrPermissionNotFound)
		}
		return nil, fmt.Errorf("get permissions: %w", err)
	}
	return permission, nil
}

func (s *permissionService) Update(ctx context.Context, userID int64, permissions domain.PermissionSet) (*domain.Permission, error) {
	permission, err := s.permissions.UpdatePermissionsByUserID(ctx, s.dbExecutor, userID, permissions)
	if err != nil {
		return nil, fmt.Errorf("update permissions for user %d: %w", userID, err)
	}
	return permission, nil
}

func (s *permissionService) Delete(ctx context.Context, userID int64) error {
	if err := s.permissions.DeletePermissionByUserID(ctx, s.dbExecutor, userID); err != nil {
		return fmt.Errorf("delete permissions for user %d: %w", userID, err)
	}
	return nil
}
