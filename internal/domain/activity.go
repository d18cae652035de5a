// internal/domain/activity.go
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ActivityDetail is the free-form request context captured alongside an
// activity record (user agent, accept-language, referrer and the like).
// Stored as JSONB.
type ActivityDetail map[string]string

// Value implements driver.Valuer for JSONB storage.
func (d ActivityDetail) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for JSONB storage.
func (d *ActivityDetail) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	case nil:
		*d = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into ActivityDetail", src)
	}
}

// Activity is one entry in a user's activity trail.
type Activity struct {
	ID        int64          `db:"id" json:"id"`
	UserID    int64          `db:"user_id" json:"user_id"`
	Event     string         `db:"event" json:"event"`
	Detail    ActivityDetail `db:"detail" json:"detail"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

// NewActivity creates a new Activity instance.
func NewActivity(userID int64, event string, detail ActivityDetail) *Activity {
	return &Activity{
		UserID:    userID,
		Event:     event,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
}
