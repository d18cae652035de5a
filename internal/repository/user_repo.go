// internal/repository/user_repo.go
package repository

import (
	"context"

	"coursehub/internal/domain"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// CreateUser adds a new user. Fails with util.ErrDuplicateEntry when the
	// email is taken.
	CreateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// GetUserByID retrieves a user by their ID.
	GetUserByID(ctx context.Context, q DBExecutor, id int64) (*domain.User, error)
	// GetUserByEmail retrieves a user by their email.
	GetUserByEmail(ctx context.Context, q DBExecutor, email string) (*domain.User, error)
}
