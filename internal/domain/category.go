package domain

import "time"

// Category is a named bucket that content items reference.
// The Allows* flags are stored and returned but not enforced on content.
type Category struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	AllowsImages bool      `json:"allowsImages"`
	AllowsVideos bool      `json:"allowsVideos"`
	AllowsTexts  bool      `json:"allowsTexts"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
