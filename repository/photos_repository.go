package repository

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strings"

	"scarlett-api/models"
	"scarlett-api/pkg/scanner"
	"scarlett-api/types"

	"github.com/lib/pq"
)

// photoSortAliases maps client-facing sort field names onto columns of the
// positioned subquery. Adding a sortable field is a data change here.
var photoSortAliases = map[string]string{
	"rating":          "t.rating",
	"date_created":    "t.date_created",
	"date_updated":    "t.date_updated",
	"file_name":       "t.file_name",
	"folder":          "t.folder",
	"original_width":  "t.original_width",
	"original_height": "t.original_height",
}

// photoColumns is the read-model projection selected by every photo query,
// in scan order.
const photoColumns = `id,
       file_path,
       folder,
       file_name,
       file_hash,
       rating,
       date_created,
       date_updated,
       original_width,
       original_height,
       orientation,
       rotation,
       ineligible_for_wallpaper,
       anonymous_entities,
       suggested_entity_name,
       entities,
       tags,
       wallpapers`

type PhotosRepository struct {
	db        *sql.DB
	mediaBase *url.URL
}

// NewPhotosRepository creates a repository over the photos read model.
// mediaBase is the public base URL used to derive media links; it is
// injected here so the repository never reads the process environment.
func NewPhotosRepository(db *sql.DB, mediaBase *url.URL) *PhotosRepository {
	return &PhotosRepository{db: db, mediaBase: mediaBase}
}

// buildPhotosListQuery composes the dynamic listing query:
//
//  1. photos_all joined to photo_ordering so every candidate row carries
//     its stable shuffle position;
//  2. the filter clause: the collection's compiled predicate when one is
//     named (it wins over ad-hoc filters), otherwise the folder prefix
//     term; future tag/people terms are appended to conds the same way;
//  3. a positioned subquery ranked by stable position, cut at
//     position > (page-1)*pageSize, at most pageSize rows;
//  4. the final ORDER BY from the parsed sort fields, or stable position
//     when no sort was requested;
//  5. COUNT(*) OVER () inside the subquery, where it still sees every
//     matching row, so the pre-pagination total rides along with each
//     returned row instead of costing a second query. In the outer
//     SELECT it would run after the position cut and count the
//     remainder only.
//
// Pure function of its inputs; returns the SQL and its arguments.
func buildPhotosListQuery(req *types.GetPhotosRequest, collection *models.Collection) (string, []interface{}, error) {
	var conds []string
	var args []interface{}

	if collection != nil {
		// A collection already encodes all needed filtering, so ad-hoc
		// filters are ignored when one is named.
		clause, cargs, err := CompilePredicate(collection.Query, len(args)+1)
		if err != nil {
			return "", nil, err
		}
		if clause != "" {
			conds = append(conds, "("+clause+")")
			args = append(args, cargs...)
		}
	} else if req.Folder != "" {
		args = append(args, escapeLike(req.Folder)+"%")
		conds = append(conds, fmt.Sprintf("pa.folder LIKE $%d", len(args)))
	}

	sortFields, err := types.ParseSortBy(req.SortBy, photoSortAliases)
	if err != nil {
		return "", nil, err
	}

	where := ""
	if len(conds) > 0 {
		where = "\n\t\tWHERE "
		for i, cond := range conds {
			if i > 0 {
				where += " AND "
			}
			where += cond
		}
	}

	orderBy := "t.position"
	if len(sortFields) > 0 {
		orderBy = ""
		for i, f := range sortFields {
			if i > 0 {
				orderBy += ", "
			}
			orderBy += f.Column + " " + f.Direction
		}
	}

	args = append(args, req.Offset())
	offsetIdx := len(args)
	args = append(args, req.PageSize)
	limitIdx := len(args)

	query := fmt.Sprintf(`
	SELECT %s,
	       total
	FROM (
		SELECT row_number() OVER (ORDER BY po.position) AS position,
		       COUNT(*) OVER () AS total,
		       pa.*
		FROM photos_all pa
		INNER JOIN photo_ordering po ON po.photo_id = pa.id%s
	) t
	WHERE t.position > $%d
	ORDER BY %s
	LIMIT $%d`, photoColumns, where, offsetIdx, orderBy, limitIdx)

	return query, args, nil
}

// escapeLike neutralizes LIKE wildcards so folder names containing % or _
// match literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}

// GetPage returns one page of the read model plus the total number of rows
// matching the filter. The collection, when the request names one, must
// already be resolved by the caller (fail fast on unknown ids).
func (r *PhotosRepository) GetPage(req *types.GetPhotosRequest, collection *models.Collection) ([]*models.PhotoFull, int64, error) {
	query, args, err := buildPhotosListQuery(req, collection)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var photos []*models.PhotoFull
	var total int64
	for rows.Next() {
		photo, count, err := r.scanPhotoRow(rows)
		if err != nil {
			return nil, 0, err
		}
		photos = append(photos, photo)
		total = count
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return photos, total, nil
}

func (r *PhotosRepository) scanPhotoRow(rows *sql.Rows) (*models.PhotoFull, int64, error) {
	var p models.PhotoFull
	var total int64
	err := rows.Scan(
		&p.ID, &p.FilePath, &p.Folder, &p.FileName, &p.FileHash, &p.Rating,
		&p.DateCreated, &p.DateUpdated, &p.OriginalWidth, &p.OriginalHeight,
		&p.Orientation, &p.Rotation, &p.IneligibleForWallpaper,
		&p.AnonymousEntities, &p.SuggestedEntityName,
		pq.Array(&p.Entities), pq.Array(&p.Tags), pq.Array(&p.Wallpapers),
		&total,
	)
	if err != nil {
		return nil, 0, err
	}
	p.AspectRatio = models.AspectRatio(p.OriginalWidth, p.OriginalHeight)
	p.MediaURL = models.MediaURL(r.mediaBase, p.FilePath)
	return &p, total, nil
}

// GetByID fetches a single photo from the read model. Returns (nil, nil)
// when the id does not exist.
func (r *PhotosRepository) GetByID(id int) (*models.PhotoFull, error) {
	var p models.PhotoFull
	err := r.db.QueryRow(`
		SELECT `+photoColumns+`
		FROM photos_all
		WHERE id = $1`, id).Scan(
		&p.ID, &p.FilePath, &p.Folder, &p.FileName, &p.FileHash, &p.Rating,
		&p.DateCreated, &p.DateUpdated, &p.OriginalWidth, &p.OriginalHeight,
		&p.Orientation, &p.Rotation, &p.IneligibleForWallpaper,
		&p.AnonymousEntities, &p.SuggestedEntityName,
		pq.Array(&p.Entities), pq.Array(&p.Tags), pq.Array(&p.Wallpapers),
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.AspectRatio = models.AspectRatio(p.OriginalWidth, p.OriginalHeight)
	p.MediaURL = models.MediaURL(r.mediaBase, p.FilePath)
	return &p, nil
}

// UpdateRating sets a photo's rating and returns the refreshed read model.
// Returns (nil, nil) when the photo does not exist.
func (r *PhotosRepository) UpdateRating(id, rating int) (*models.PhotoFull, error) {
	res, err := r.db.Exec(`
		UPDATE photos SET rating = $1, date_updated = NOW()
		WHERE id = $2`, rating, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return r.GetByID(id)
}

// UpdateLastViewed stamps a photo as just viewed.
func (r *PhotosRepository) UpdateLastViewed(id int) (*models.PhotoFull, error) {
	res, err := r.db.Exec(`
		UPDATE photos SET last_viewed = NOW()
		WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return r.GetByID(id)
}

// Delete removes the photo's file from disk, then its row. A file that is
// already gone is not an error; the catalog row still has to go.
func (r *PhotosRepository) Delete(photo *models.PhotoFull) error {
	if err := os.Remove(photo.FilePath); err != nil && !os.IsNotExist(err) {
		return err
	}
	_, err := r.db.Exec(`DELETE FROM photos WHERE id = $1`, photo.ID)
	return err
}

// AddTag links a tag to a photo. Linking twice is a no-op.
func (r *PhotosRepository) AddTag(photoID, tagID int) error {
	_, err := r.db.Exec(`
		INSERT INTO photo_to_tag (photo_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, photoID, tagID)
	return err
}

func (r *PhotosRepository) RemoveTag(photoID, tagID int) error {
	_, err := r.db.Exec(`
		DELETE FROM photo_to_tag WHERE photo_id = $1 AND tag_id = $2`, photoID, tagID)
	return err
}

// AddEntity links an entity (person) to a photo. Linking twice is a no-op.
func (r *PhotosRepository) AddEntity(photoID, entityID int) error {
	_, err := r.db.Exec(`
		INSERT INTO photo_to_entity (photo_id, entity_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, photoID, entityID)
	return err
}

func (r *PhotosRepository) RemoveEntity(photoID, entityID int) error {
	_, err := r.db.Exec(`
		DELETE FROM photo_to_entity WHERE photo_id = $1 AND entity_id = $2`, photoID, entityID)
	return err
}

// AddWallpaper records a wallpaper variant of a photo for a target size.
func (r *PhotosRepository) AddWallpaper(photoID, sizeID int, filePath string) error {
	_, err := r.db.Exec(`
		INSERT INTO photo_wallpaper (photo_id, wallpaper_size_id, file_path)
		VALUES ($1, $2, $3)
		ON CONFLICT (photo_id, wallpaper_size_id) DO UPDATE SET file_path = EXCLUDED.file_path`,
		photoID, sizeID, filePath)
	return err
}

func (r *PhotosRepository) RemoveWallpaper(photoID, sizeID int) error {
	_, err := r.db.Exec(`
		DELETE FROM photo_wallpaper WHERE photo_id = $1 AND wallpaper_size_id = $2`,
		photoID, sizeID)
	return err
}

// ResetOrdering rebuilds the photo_ordering side table with a fresh random
// ranking. The delete and reinsert happen in one transaction, so any
// concurrent listing query sees either the old or the new ordering in
// full, never a mix.
func (r *PhotosRepository) ResetOrdering() error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM photo_ordering`); err != nil {
		return err
	}
	if _, err := tx.Exec(`
		INSERT INTO photo_ordering (photo_id, position)
		SELECT id, row_number() OVER (ORDER BY random())
		FROM photos`); err != nil {
		return err
	}

	return tx.Commit()
}

// EnsureOrdering appends positions for photos that have none yet, after
// the highest existing position. Existing positions are left alone so the
// current shuffle stays stable.
func (r *PhotosRepository) EnsureOrdering() error {
	_, err := r.db.Exec(`
		INSERT INTO photo_ordering (photo_id, position)
		SELECT p.id,
		       COALESCE((SELECT MAX(position) FROM photo_ordering), 0)
		           + row_number() OVER (ORDER BY random())
		FROM photos p
		WHERE NOT EXISTS (
			SELECT 1 FROM photo_ordering po WHERE po.photo_id = p.id
		)`)
	return err
}

// FileIndex returns the catalog's file_path -> file_hash map, used by the
// scanner to classify files on disk as new, updated or already known.
func (r *PhotosRepository) FileIndex() (map[string]string, error) {
	rows, err := r.db.Query(`SELECT file_path, file_hash FROM photos`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	index := make(map[string]string)
	for rows.Next() {
		var path, hash string
		if err := rows.Scan(&path, &hash); err != nil {
			return nil, err
		}
		index[path] = hash
	}
	return index, rows.Err()
}

// BulkInsert persists newly discovered files as photos and assigns them
// shuffle positions. Files already present (by path) are skipped.
func (r *PhotosRepository) BulkInsert(files []scanner.FileInfo) (int, error) {
	if len(files) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO photos (file_path, folder, file_name, file_hash,
		                    original_width, original_height,
		                    date_created, date_updated)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (file_path) DO NOTHING`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, f := range files {
		res, err := stmt.Exec(f.FilePath, f.Folder, f.FileName, f.FileHash, f.Width, f.Height)
		if err != nil {
			return 0, err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return inserted, r.EnsureOrdering()
}
