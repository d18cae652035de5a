// internal/service/permission_service_test.go
package service

import (
	"context"
	"testing"

	"coursehub/internal/domain"
	"coursehub/internal/repository"
	"coursehub/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPermissionRepository is a mock implementation of repository.PermissionRepository.
type MockPermissionRepository struct {
	mock.Mock
}

func (m *MockPermissionRepository) CreatePermission(ctx context.Context, q repository.DBExecutor, permission *domain.Permission) (*domain.Permission, error) {
	args := m.Called(ctx, q, permission)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Permission), args.Error(1)
}

func (m *MockPermissionRepository) GetPermissionByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.Permission, error) {
	args := m.Called(ctx, q, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Permission), args.Error(1)
}

func (m *MockPermissionRepository) UpdatePermissionsByUserID(ctx context.Context, q repository.DBExecutor, userID int64, permissions domain.PermissionSet) (*domain.Permission, error) {
	args := m.Called(ctx, q, userID, permissions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Permission), args.Error(1)
}

func (m *MockPermissionRepository) DeletePermissionByUserID(ctx context.Context, q repository.DBExecutor, userID int64) error {
	args := m.Called(ctx, q, userID)
	return args.Error(0)
}

func TestGetPermissionsByEmail(t *testing.T) {
	email := "ada@example.com"

	t.Run("Found", func(t *testing.T) {
		ctx := context.Background()
		permRepo := new(MockPermissionRepository)

		stored := &domain.Permission{ID: 3, UserID: 7, Email: email, Permissions: domain.DefaultPermissions()}
		permRepo.On("GetPermissionByEmail", ctx, mock.Anything, email).Return(stored, nil).Once()

		svc := NewPermissionService(new(MockDBExecutor), permRepo)

		permission, err := svc.GetByEmail(ctx, email)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultPermissions(), permission.Permissions)
	})

	t.Run("Missing", func(t *testing.T) {
		ctx := context.Background()
		permRepo := new(MockPermissionRepository)
		permRepo.On("GetPermissionByEmail", ctx, mock.Anything, email).Return(nil, util.ErrNotFound).Once()

		svc := NewPermissionService(new(MockDBExecutor), permRepo)

		permission, err := svc.GetByEmail(ctx, email)
		assert.ErrorIs(t, err, util.ErrPermissionNotFound)
		assert.Nil(t, permission)
	})
}

func TestUpdatePermissions(t *testing.T) {
	ctx := context.Background()
	userID := int64(7)
	permRepo := new(MockPermissionRepository)

	next := domain.PermissionSet{"course": {"read"}}
	updated := &domain.Permission{ID: 3, UserID: userID, Permissions: next}
	permRepo.On("UpdatePermissionsByUserID", ctx, mock.Anything, userID, next).Return(updated, nil).Once()

	svc := NewPermissionService(new(MockDBExecutor), permRepo)

	permission, err := svc.Update(ctx, userID, next)
	require.NoError(t, err)
	assert.Equal(t, next, permission.Permissions)
	permRepo.AssertExpectations(t)
}

func TestDeletePermissions(t *testing.T) {
	ctx := context.Background()
	userID := int64(7)
	permRepo := new(MockPermissionRepository)
	permRepo.On("DeletePermissionByUserID", ctx, mock.Anything, userID).Return(nil).Once()

	svc := NewPermissionService(new(MockDBExecutor), permRepo)

	require.NoError(t, svc.Delete(ctx, userID))
	permRepo.AssertExpectations(t)
}
