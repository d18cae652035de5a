// internal/events/activity.go
package events

import (
	"context"
	"fmt"

	"coursehub/internal/domain"
	"coursehub/internal/eventbus"
	"coursehub/internal/repository"
)

// ActivityListener appends tracked user actions to the activity trail. It
// rides the same bus as the userCreated fan-out; a failed append never
// surfaces to the action that triggered it.
type ActivityListener struct {
	db         repository.DBExecutor
	activities repository.ActivityRepository
}

// NewActivityListener creates an ActivityListener.
func NewActivityListener(db repository.DBExecutor, activities repository.ActivityRepository) *ActivityListener {
	return &ActivityListener{db: db, activities: activities}
}

// Register subscribes the listener's handlers on the bus.
func (l *ActivityListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(TopicCreateActivity, l.createActivity)
}

func (l *ActivityListener) createActivity(ctx context.Context, payload any) error {
	event, ok := payload.(ActivityRecorded)
	if !ok {
		return fmt.Errorf("createActivity: unexpected payload %T", payload)
	}
	activity := domain.NewActivity(event.UserID, event.Event, event.Detail)
	if err := l.activities.CreateActivity(ctx, l.db, activity); err != nil {
		return fmt.Errorf("createActivity: user %d: %w", event.UserID, err)
	}
	return nil
}
