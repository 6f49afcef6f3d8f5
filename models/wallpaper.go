package models

// WallpaperSize is a target resolution a photo can have a wallpaper
// variant for.
type WallpaperSize struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}
