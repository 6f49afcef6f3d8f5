package initializers

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv reads a .env file when one is present. Missing files are fine:
// deployed environments inject configuration directly.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Could not load .env file: %v", err)
		}
	}
}

// MustGetenv returns the value of a required environment variable and
// aborts startup when it is missing. Used for configuration the service
// cannot run without (database URL, public host, library path).
func MustGetenv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("%s is not set", key)
	}
	return value
}
