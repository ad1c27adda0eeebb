package models

import (
	"encoding/json"
	"time"
)

// UserProfile holds body measurements and style preferences collected
// during profile setup. Measurements are metric (cm/kg).
type UserProfile struct {
	ID                   int             `json:"id"`
	UserID               int             `json:"user_id"`
	Gender               *string         `json:"gender,omitempty"`
	Height               *float64        `json:"height,omitempty"`
	Weight               *float64        `json:"weight,omitempty"`
	SkinTone             *string         `json:"skin_tone,omitempty"`
	ProfilePictureURL    *string         `json:"profile_picture_url,omitempty"`
	ChestMeasurement     *float64        `json:"chest_measurement,omitempty"`
	WaistMeasurement     *float64        `json:"waist_measurement,omitempty"`
	HipsMeasurement      *float64        `json:"hips_measurement,omitempty"`
	InseamMeasurement    *float64        `json:"inseam_measurement,omitempty"`
	ShoeSize             *float64        `json:"shoe_size,omitempty"`
	ClothingSize         *string         `json:"clothing_size,omitempty"`
	PreferredFit         *string         `json:"preferred_fit,omitempty"`
	StylePreferences     json.RawMessage `json:"style_preferences,omitempty"`
	BodyType             *string         `json:"body_type,omitempty"`
	AdditionalNotes      *string         `json:"additional_notes,omitempty"`
	MeasurementsMetadata json.RawMessage `json:"measurements_metadata,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// IsComplete reports whether the profile has the fields the app requires
// before the setup flow can finish.
func (p *UserProfile) IsComplete() bool {
	return p.Gender != nil && *p.Gender != "" &&
		p.Height != nil && *p.Height > 0 &&
		p.Weight != nil && *p.Weight > 0 &&
		p.SkinTone != nil && *p.SkinTone != ""
}
