// internal/domain/permission.go
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PermissionSet maps a resource name to the actions a user may perform on it.
// Stored as JSONB.
type PermissionSet map[string][]string

// DefaultPermissions returns the permission set granted to every new account.
func DefaultPermissions() PermissionSet {
	return PermissionSet{
		"course": {"read", "write", "update", "delete"},
	}
}

// Value implements driver.Valuer for JSONB storage.
func (p PermissionSet) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB storage.
func (p *PermissionSet) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into PermissionSet", src)
	}
}

// Permission binds a user's email to their permission set.
type Permission struct {
	ID          int64         `db:"id" json:"id"`
	UserID      int64         `db:"user_id" json:"user_id"`
	Email       string        `db:"email" json:"email"` // Unique
	Permissions PermissionSet `db:"permissions" json:"permissions"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

// NewPermission creates a new Permission instance.
func NewPermission(userID int64, email string, permissions PermissionSet) *Permission {
	now := time.Now().UTC()
	return &Permission{
		UserID:      userID,
		Email:       email,
		Permissions: permissions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
