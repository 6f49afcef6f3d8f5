package initializers

import (
	"database/sql"
)

// InitDefaults is called once on application start to ensure that the
// default wallpaper sizes exist.
func InitDefaults(db *sql.DB) error {
	sizes := []struct {
		name          string
		width, height int
	}{
		{"desktop_hd", 1920, 1080},
		{"desktop_4k", 3840, 2160},
		{"ultrawide", 3440, 1440},
		{"phone", 1080, 2340},
	}
	for _, s := range sizes {
		if err := ensureWallpaperSize(db, s.name, s.width, s.height); err != nil {
			return err
		}
	}
	return nil
}

func ensureWallpaperSize(db *sql.DB, name string, width, height int) error {
	var id int
	err := db.QueryRow(`SELECT id FROM wallpaper_sizes WHERE name = $1`, name).Scan(&id)
	if err == sql.ErrNoRows {
		_, err = db.Exec(`
			INSERT INTO wallpaper_sizes (name, width, height)
			VALUES ($1, $2, $3)`, name, width, height)
	}
	return err
}
