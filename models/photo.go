package models

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Photo is the base photos table row.
type Photo struct {
	ID                     int       `json:"id"`
	FilePath               string    `json:"filePath"`
	Folder                 string    `json:"folder"`
	FileName               string    `json:"fileName"`
	FileHash               string    `json:"fileHash"`
	Rating                 int       `json:"rating"`
	DateCreated            time.Time `json:"dateCreated"`
	DateUpdated            time.Time `json:"dateUpdated"`
	OriginalWidth          int       `json:"originalWidth"`
	OriginalHeight         int       `json:"originalHeight"`
	Rotation               int       `json:"rotation"`
	IneligibleForWallpaper bool      `json:"ineligibleForWallpaper"`
	AnonymousEntities      bool      `json:"anonymousEntities"`
}

// PhotoFull is the denormalized read model behind the photos_all view:
// the photo row plus its aggregated child collections and two derived
// fields (aspect ratio, public media URL) computed in Go.
// The child slices are nil when the photo has no children yet.
type PhotoFull struct {
	ID                     int       `json:"id"`
	FilePath               string    `json:"filePath"`
	Folder                 string    `json:"folder"`
	FileName               string    `json:"fileName"`
	FileHash               string    `json:"fileHash"`
	Rating                 int       `json:"rating"`
	DateCreated            time.Time `json:"dateCreated"`
	DateUpdated            time.Time `json:"dateUpdated"`
	OriginalWidth          int       `json:"originalWidth"`
	OriginalHeight         int       `json:"originalHeight"`
	Orientation            string    `json:"orientation"`
	AspectRatio            string    `json:"aspectRatio"`
	Rotation               int       `json:"rotation"`
	IneligibleForWallpaper bool      `json:"ineligibleForWallpaper"`
	AnonymousEntities      bool      `json:"anonymousEntities"`
	SuggestedEntityName    string    `json:"suggestedEntityName"`
	Entities               []string  `json:"entities"`
	Tags                   []string  `json:"tags"`
	Wallpapers             []string  `json:"wallpapers"`
	MediaURL               string    `json:"mediaUrl"`
}

// AspectRatio reduces width:height to lowest terms, e.g. 1920x1080 -> "16:9".
// Non-positive dimensions yield an empty string.
func AspectRatio(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	d := gcd(width, height)
	return fmt.Sprintf("%d:%d", width/d, height/d)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// mediaDivider marks the library root inside stored file paths. Everything
// up to and including this directory is stripped when building public URLs.
const mediaDivider = "photos"

// MediaURL derives the public URL of a photo file from its stored path.
// The path below the library root is exposed under /media/ on the public
// host, percent-encoded for safe embedding.
func MediaURL(base *url.URL, filePath string) string {
	rel := filePath
	if idx := strings.Index(filePath, mediaDivider); idx >= 0 {
		cut := idx + len(mediaDivider) + 1
		if cut > len(filePath) {
			cut = len(filePath)
		}
		rel = filePath[cut:]
	}

	u := *base
	u.Path = "/media/" + strings.TrimPrefix(rel, "/")
	return u.String()
}
