package models

import "time"

// Offer is a brand discount shown on the offers tab. Offers are managed
// out of band; this service only reads them.
type Offer struct {
	ID              int       `json:"id"`
	Brand           string    `json:"brand"`
	Discount        string    `json:"discount"`
	Description     string    `json:"description"`
	SpecialOffer    *string   `json:"special_offer"`
	ImageURL        string    `json:"image_url"`
	ValidityTill    time.Time `json:"validity_till"`
	Categories      string    `json:"categories"`
	Terms           string    `json:"terms"`
	RedemptionSteps []string  `json:"redemption_steps"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
