package repository

import (
	"database/sql"

	"scarlett-api/models"
)

type TagsRepository struct {
	db *sql.DB
}

func NewTagsRepository(db *sql.DB) *TagsRepository { return &TagsRepository{db: db} }

func (r *TagsRepository) GetAll() ([]models.Tag, error) {
	rows, err := r.db.Query(`SELECT id, name FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetByID returns (nil, nil) when the id does not exist.
func (r *TagsRepository) GetByID(id int) (*models.Tag, error) {
	var t models.Tag
	err := r.db.QueryRow(`SELECT id, name FROM tags WHERE id = $1`, id).
		Scan(&t.ID, &t.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a tag, reusing the existing row on a name collision.
func (r *TagsRepository) Create(name string) (*models.Tag, error) {
	var id int
	err := r.db.QueryRow(`
		INSERT INTO tags (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`, name).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

func (r *TagsRepository) Update(id int, name string) (*models.Tag, error) {
	res, err := r.db.Exec(`UPDATE tags SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return r.GetByID(id)
}

func (r *TagsRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM tags WHERE id = $1`, id)
	return err
}

// Search returns the five tags most similar to q (pg_trgm ranking).
func (r *TagsRepository) Search(q string) ([]models.Tag, error) {
	rows, err := r.db.Query(`
		SELECT id, name
		FROM tags
		ORDER BY similarity(name, $1) DESC
		LIMIT 5`, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
