// internal/events/permission.go
package events

import (
	"context"
	"fmt"

	"coursehub/internal/domain"
	"coursehub/internal/repository"
	"coursehub/internal/util"

	"coursehub/internal/eventbus"
)

// PermissionListener provisions the default permission set for new accounts
// and serves permission lookups over the bus.
type PermissionListener struct {
	db    repository.DBExecutor
	perms repository.PermissionRepository
}

// NewPermissionListener creates a PermissionListener.
func NewPermissionListener(db repository.DBExecutor, perms repository.PermissionRepository) *PermissionListener {
	return &PermissionListener{db: db, perms: perms}
}

// Register subscribes the listener's handlers on the bus.
func (l *PermissionListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(TopicUserCreated, l.createPermissions)
	bus.SubscribeRequest(TopicGetPermissions, l.getPermissions)
}

func (l *PermissionListener) createPermissions(ctx context.Context, payload any) error {
	event, ok := payload.(UserCreated)
	if !ok {
		return fmt.Errorf("createPermissions: unexpected payload %T", payload)
	}
	perm := domain.NewPermission(event.UserID, event.Email, domain.DefaultPermissions())
	if _, err := l.perms.CreatePermission(ctx, l.db, perm); err != nil {
		return fmt.Errorf("createPermissions: user %d: %w", event.UserID, err)
	}
	return nil
}

func (l *PermissionListener) getPermissions(ctx context.Context, payload any) (any, error) {
	email, ok := payload.(string)
	if !ok {
		return nil, fmt.Errorf("getPermissions: unexpected payload %T", payload)
	}
	perm, err := l.perms.GetPermissionByEmail(ctx, l.db, email)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrPermissionNotFound
		}
		return nil, fmt.Errorf("getPermissions: %w", err)
	}
	return perm, nil
}
