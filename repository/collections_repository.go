package repository

import (
	"database/sql"
	"encoding/json"

	"scarlett-api/models"
)

type CollectionsRepository struct {
	db *sql.DB
}

func NewCollectionsRepository(db *sql.DB) *CollectionsRepository {
	return &CollectionsRepository{db: db}
}

// GetAll returns every collection, ordered by name.
func (r *CollectionsRepository) GetAll() ([]models.Collection, error) {
	rows, err := r.db.Query(`
		SELECT id, name, query FROM collections ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Collection
	for rows.Next() {
		var c models.Collection
		if err := rows.Scan(&c.ID, &c.Name, &c.Query); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByID resolves a collection id to its saved predicate.
// Returns (nil, nil) when the id does not exist.
func (r *CollectionsRepository) GetByID(id int) (*models.Collection, error) {
	var c models.Collection
	err := r.db.QueryRow(`
		SELECT id, name, query FROM collections WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Query)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CollectionsRepository) GetByName(name string) (*models.Collection, error) {
	var c models.Collection
	err := r.db.QueryRow(`
		SELECT id, name, query FROM collections WHERE name = $1`, name).
		Scan(&c.ID, &c.Name, &c.Query)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create stores a new collection, or returns the existing one when the
// name is already taken (creation is idempotent by name). The existing
// row's predicate is left untouched. ON CONFLICT keeps two concurrent
// creates of the same name from surfacing a unique violation.
func (r *CollectionsRepository) Create(name string, query json.RawMessage) (*models.Collection, error) {
	_, err := r.db.Exec(`
		INSERT INTO collections (name, query)
		VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING`, name, query)
	if err != nil {
		return nil, err
	}
	return r.GetByName(name)
}

// Update changes the provided fields of a collection; nil fields keep
// their current values.
func (r *CollectionsRepository) Update(id int, name *string, query *json.RawMessage) (*models.Collection, error) {
	_, err := r.db.Exec(`
		UPDATE collections SET
			name = COALESCE($2, name),
			query = COALESCE($3, query)
		WHERE id = $1`, id, name, query)
	if err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

func (r *CollectionsRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM collections WHERE id = $1`, id)
	return err
}
