package models

// Entity is a person (or other named subject) linked to photos.
type Entity struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
