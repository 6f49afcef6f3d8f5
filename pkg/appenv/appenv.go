// Package appenv distinguishes the two modes this service runs in:
// local development against the compose stack, and production behind
// the reverse proxy.
package appenv

import (
	"os"
	"strings"
)

// IsProduction reports whether APP_ENV selects production behavior.
// Only an explicit development value opts out, so a missing or
// misspelled variable never loosens CORS.
func IsProduction() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))) {
	case "development", "dev", "local", "test":
		return false
	}
	return true
}
