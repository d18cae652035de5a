// internal/service/user_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"coursehub/internal/domain"
	"coursehub/internal/email"
	"coursehub/internal/eventbus"
	"coursehub/internal/events"
	"coursehub/internal/repository"
)

// UserService creates accounts and triggers the provisioning fan-out.
type UserService interface {
	// Create persists the user and publishes userCreated. The downstream
	// side effects (permissions, preference, wallet) run independently and
	// their failures never roll the account back.
	Create(ctx context.Context, name, userEmail string) (*domain.User, error)
	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, userEmail string) (*domain.User, error)
}

type userService struct {
	dbExecutor repository.DBExecutor
	users      repository.UserRepository
	bus        *eventbus.Bus
	mailer     email.Sender
	logger     *slog.Logger
}

// NewUserService creates a new instance of UserService.
func NewUserService(
	dbExecutor repository.DBExecutor,
	users repository.UserRepository,
	bus *eventbus.Bus,
	mailer email.Sender,
	logger *slog.Logger,
) UserService {
	return &userService{
		dbExecutor: dbExecutor,
		users:      users,
		bus:        bus,
		mailer:     mailer,
		logger:     logger,
	}
}

// Create persists the user, sends the welcome email and fans out the
// provisioning event.
func (s *userService) Create(ctx context.Context, name, userEmail string) (*domain.User, error) {
	user := domain.NewUser(name, userEmail)
	if err := s.users.CreateUser(ctx, s.dbExecutor, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Email failure is not the account's problem.
	if err := s.mailer.SendWelcome(ctx, user.Email, user.Name); err != nil {
		s.logger.Warn("welcome email failed", "email", user.Email, "error", err)
	}

	s.bus.Publish(ctx, events.TopicUserCreated, events.NewUserCreated(user))
	return user, nil
}

// GetByEmail retrieves a user by email.
func (s *userService) GetByEmail(ctx context.Context, userEmail string) (*domain.User, error) {
	user, err := s.users.GetUserByEmail(ctx, s.dbExecutor, userEmail)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}
