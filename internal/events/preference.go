// internal/events/preference.go
package events

import (
	"context"
	"fmt"

	"coursehub/internal/domain"
	"coursehub/internal/eventbus"
	"coursehub/internal/repository"
)

// PreferenceListener provisions the default preference document for new
// accounts.
type PreferenceListener struct {
	db    repository.DBExecutor
	prefs repository.PreferenceRepository
}

// NewPreferenceListener creates a PreferenceListener.
func NewPreferenceListener(db repository.DBExecutor, prefs repository.PreferenceRepository) *PreferenceListener {
	return &PreferenceListener{db: db, prefs: prefs}
}

// Register subscribes the listener's handlers on the bus.
func (l *PreferenceListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(TopicUserCreated, l.createPreference)
}

func (l *PreferenceListener) createPreference(ctx context.Context, payload any) error {
	event, ok := payload.(UserCreated)
	if !ok {
		return fmt.Errorf("createPreference: unexpected payload %T", payload)
	}
	pref := domain.NewPreference(event.UserID, domain.DefaultPreferenceDocument())
	if _, err := l.prefs.CreatePreference(ctx, l.db, pref); err != nil {
		return fmt.Errorf("createPreference: user %d: %w", event.UserID, err)
	}
	return nil
}
