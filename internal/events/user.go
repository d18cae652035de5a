// internal/events/user.go
package events

import (
	"context"
	"fmt"

	"coursehub/internal/eventbus"
	"coursehub/internal/repository"
	"coursehub/internal/util"
)

// UserListener serves user lookups for the auth flow.
type UserListener struct {
	db    repository.DBExecutor
	users repository.UserRepository
}

// NewUserListener creates a UserListener.
func NewUserListener(db repository.DBExecutor, users repository.UserRepository) *UserListener {
	return &UserListener{db: db, users: users}
}

// Register subscribes the listener's handlers on the bus.
func (l *UserListener) Register(bus *eventbus.Bus) {
	bus.SubscribeRequest(TopicGetUserByEmail, l.getUserByEmail)
}

func (l *UserListener) getUserByEmail(ctx context.Context, payload any) (any, error) {
	email, ok := payload.(string)
	if !ok {
		return nil, fmt.Errorf("getUserByEmail: unexpected payload %T", payload)
	}
	user, err := l.users.GetUserByEmail(ctx, l.db, email)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("getUserByEmail: %w", err)
	}
	return user, nil
}
