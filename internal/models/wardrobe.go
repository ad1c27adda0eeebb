package models

import "time"

// Wardrobe item categories as used by the mobile client's tabs
const (
	CategoryTops     = "Tops"
	CategoryBottom   = "Bottom"
	CategoryFullBody = "Full Body"
	CategoryLayers   = "Layers"
	CategoryShoes    = "Shoes"
)

type WardrobeItem struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	SubCategory *string   `json:"sub_category"`
	ImageURL    string    `json:"image_url"`
	Color       *string   `json:"color"`
	Brand       *string   `json:"brand"`
	Size        *string   `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Outfit is a saved combination of wardrobe items. Items holds the
// member item IDs; LastTriedAt drives the "recent outfits" carousel.
type Outfit struct {
	ID          int        `json:"id"`
	UserID      int        `json:"user_id"`
	Name        string     `json:"name"`
	ImageURL    string     `json:"image_url"`
	Items       []int      `json:"items"`
	LastTriedAt *time.Time `json:"last_tried_at"`
	Favorite    bool       `json:"favorite"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func ValidCategory(category string) bool {
	switch category {
	case CategoryTops, CategoryBottom, CategoryFullBody, CategoryLayers, CategoryShoes:
		return true
	}
	return false
}
