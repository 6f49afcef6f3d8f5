package models

// Tag is a free-form label attached to photos.
type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
