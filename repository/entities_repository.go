package repository

import (
	"database/sql"

	"scarlett-api/models"
)

type EntitiesRepository struct {
	db *sql.DB
}

func NewEntitiesRepository(db *sql.DB) *EntitiesRepository {
	return &EntitiesRepository{db: db}
}

func (r *EntitiesRepository) GetAll() ([]models.Entity, error) {
	rows, err := r.db.Query(`SELECT id, name FROM entities ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Entity
	for rows.Next() {
		var e models.Entity
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetByID returns (nil, nil) when the id does not exist.
func (r *EntitiesRepository) GetByID(id int) (*models.Entity, error) {
	var e models.Entity
	err := r.db.QueryRow(`SELECT id, name FROM entities WHERE id = $1`, id).
		Scan(&e.ID, &e.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EntitiesRepository) Create(name string) (*models.Entity, error) {
	var id int
	err := r.db.QueryRow(`
		INSERT INTO entities (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`, name).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

func (r *EntitiesRepository) Update(id int, name string) (*models.Entity, error) {
	res, err := r.db.Exec(`UPDATE entities SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return r.GetByID(id)
}

func (r *EntitiesRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM entities WHERE id = $1`, id)
	return err
}
