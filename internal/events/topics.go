// internal/events/topics.go
package events

import (
	"time"

	"github.com/google/uuid"

	"coursehub/internal/domain"
)

// Topic names. userCreated fans out to the permission, preference and wallet
// listeners and createActivity to the activity listener; the remaining topics
// are request/reply.
const (
	TopicUserCreated    = "userCreated"
	TopicCreateActivity = "createActivity"
	TopicGetUserByEmail = "getUserByEmail"
	TopicGetCourse      = "getCourse"
	TopicCheckPricing   = "checkPricing"
	TopicGetPermissions = "getPermissions"
)

// UserCreated is the payload published when an account has been persisted.
// EventID correlates the independent side effects in logs.
type UserCreated struct {
	EventID    string    `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
	UserID     int64     `json:"user_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
}

// NewUserCreated builds the fan-out payload for a freshly created user.
func NewUserCreated(user *domain.User) UserCreated {
	return UserCreated{
		EventID:    uuid.NewString(),
		OccurredAt: time.Now().UTC(),
		UserID:     user.ID,
		Email:      user.Email,
		Name:       user.Name,
	}
}

// ActivityRecorded is the payload published when a tracked user action
// completes. Detail carries the request context captured at the edge.
type ActivityRecorded struct {
	EventID    string                `json:"event_id"`
	OccurredAt time.Time             `json:"occurred_at"`
	UserID     int64                 `json:"user_id"`
	Event      string                `json:"event"`
	Detail     domain.ActivityDetail `json:"detail"`
}

// NewActivityRecorded builds the payload for an activity to be appended to
// the user's trail.
func NewActivityRecorded(userID int64, event string, detail domain.ActivityDetail) ActivityRecorded {
	return ActivityRecorded{
		EventID:    uuid.NewString(),
		OccurredAt: time.Now().UTC(),
		UserID:     userID,
		Event:      event,
		Detail:     detail,
	}
}
