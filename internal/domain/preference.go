// internal/domain/preference.go
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// GeneralSettings holds display and notification preferences.
type GeneralSettings struct {
	Language      string `json:"language"`
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
}

// PrivacySettings holds tracking consent preferences.
type PrivacySettings struct {
	Analytics   bool `json:"analytics"`
	TargetedAds bool `json:"targetedAds"`
}

// CommunicationSettings holds outbound channel preferences.
type CommunicationSettings struct {
	EmailNotifications bool `json:"emailNotifications"`
	PushNotifications  bool `json:"pushNotifications"`
}

// PreferenceDocument is the nested settings document stored per user as JSONB.
type PreferenceDocument struct {
	General       GeneralSettings       `json:"general"`
	Privacy       PrivacySettings       `json:"privacy"`
	Communication CommunicationSettings `json:"communication"`
}

// DefaultPreferenceDocument returns the document assigned to every new account.
func DefaultPreferenceDocument() PreferenceDocument {
	return PreferenceDocument{
		General: GeneralSettings{
			Language:      "English",
			Theme:         "Light",
			Notifications: true,
		},
		Privacy: PrivacySettings{
			Analytics:   true,
			TargetedAds: true,
		},
		Communication: CommunicationSettings{
			EmailNotifications: true,
			PushNotifications:  true,
		},
	}
}

// Value implements driver.Valuer for JSONB storage.
func (d PreferenceDocument) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for JSONB storage.
func (d *PreferenceDocument) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("cannot scan %T into PreferenceDocument", src)
	}
}

// Preference binds a user to their settings document.
type Preference struct {
	ID        int64              `db:"id" json:"id"`
	UserID    int64              `db:"user_id" json:"user_id"` // Unique owner reference
	Document  PreferenceDocument `db:"document" json:"document"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt time.Time          `db:"updated_at" json:"updated_at"`
}

// NewPreference creates a new Preference instance.
func NewPreference(userID int64, document PreferenceDocument) *Preference {
	now := time.Now().UTC()
	return &Preference{
		UserID:    userID,
		Document:  document,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
