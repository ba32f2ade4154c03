package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/monohq/mono/internal/model"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrFileExists   = errors.New("file already exists")
)

type FileRepository interface {
	Create(file *model.File) error
	// Visible returns public files plus, when callerID is non-nil, the
	// caller's own files.
	Visible(callerID *string) ([]*model.File, error)
	VisibleByID(id string, callerID *string) (*model.File, error)
	// OwnedByID scopes the lookup to the author. A file that exists but
	// belongs to someone else is reported as not found.
	OwnedByID(id, authorID string) (*model.File, error)
	ByPathAndAuthor(path, authorID string) (*model.File, error)
	ByPathsAndAuthor(paths []string, authorID string) ([]*model.File, error)
	ListingBySection(sectionID string) ([]*model.FileListing, error)
	Update(id, authorID string, patch *model.FilePatch) (*model.File, error)
	SetPublic(id string, public bool) (*model.File, error)
	PublishByIDs(ids []string) error
	Delete(id, authorID string) (*model.File, error)
}

type fileRepository struct {
	db *sqlx.DB
}

func NewFileRepository(db *sqlx.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(file *model.File) error {
	query := `INSERT INTO files (id, author_id, filename, path, section, section_id, text, metadata, raw, "default", type, public)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(query,
		file.ID,
		file.AuthorID,
		file.Filename,
		file.Path,
		file.Section,
		file.SectionID,
		file.Text,
		file.Metadata,
		file.Raw,
		file.Default,
		file.Type,
		file.Public,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrFileExists
		}
		return err
	}

	return nil
}

func (r *fileRepository) Visible(callerID *string) ([]*model.File, error) {
	files := []*model.File{}

	if callerID == nil {
		query := `SELECT * FROM files WHERE public = $1`
		err := r.db.Select(&files, query, true)
		return files, err
	}

	query := `SELECT * FROM files WHERE public = $1 OR author_id = $2`
	err := r.db.Select(&files, query, true, *callerID)
	return files, err
}

func (r *fileRepository) VisibleByID(id string, callerID *string) (*model.File, error) {
	file := &model.File{}

	var err error
	if callerID == nil {
		query := `SELECT * FROM files WHERE id = $1 AND public = $2`
		err = r.db.Get(file, query, id, true)
	} else {
		query := `SELECT * FROM files WHERE id = $1 AND (public = $2 OR author_id = $3)`
		err = r.db.Get(file, query, id, true, *callerID)
	}
	if err == sql.ErrNoRows {
		return nil, ErrFileNotFound
	}

	return file, err
}

func (r *fileRepository) OwnedByID(id, authorID string) (*model.File, error) {
	file := &model.File{}
	query := `SELECT * FROM files WHERE id = $1 AND author_id = $2`

	err := r.db.Get(file, query, id, authorID)
	if err == sql.ErrNoRows {
		return nil, ErrFileNotFound
	}

	return file, err
}

func (r *fileRepository) ByPathAndAuthor(path, authorID string) (*model.File, error) {
	file := &model.File{}
	query := `SELECT * FROM files WHERE path = $1 AND author_id = $2`

	err := r.db.Get(file, query, path, authorID)
	if err == sql.ErrNoRows {
		return nil, ErrFileNotFound
	}

	return file, err
}

func (r *fileRepository) ByPathsAndAuthor(paths []string, authorID string) ([]*model.File, error) {
	files := []*model.File{}
	if len(paths) == 0 {
		return files, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM files WHERE path IN (?) AND author_id = ?`, paths, authorID)
	if err != nil {
		return nil, err
	}

	err = r.db.Select(&files, r.db.Rebind(query), args...)
	return files, err
}

func (r *fileRepository) ListingBySection(sectionID string) ([]*model.FileListing, error) {
	listings := []*model.FileListing{}
	query := `SELECT id, author_id, filename, section, path, type, "default" FROM files WHERE section_id = $1`

	err := r.db.Select(&listings, query, sectionID)
	return listings, err
}

func (r *fileRepository) Update(id, authorID string, patch *model.FilePatch) (*model.File, error) {
	file, err := r.OwnedByID(id, authorID)
	if err != nil {
		return nil, err
	}

	set := []string{}
	args := []any{}

	if patch.Filename != nil {
		set = append(set, "filename")
		args = append(args, *patch.Filename)
	}
	if patch.Path != nil {
		set = append(set, "path")
		args = append(args, *patch.Path)
	}
	if patch.Section != nil {
		set = append(set, "section")
		args = append(args, *patch.Section)
	}
	if patch.Text != nil {
		set = append(set, "text")
		args = append(args, *patch.Text)
	}
	if patch.Metadata != nil {
		set = append(set, "metadata")
		args = append(args, *patch.Metadata)
	}
	if patch.Raw != nil {
		set = append(set, "raw")
		args = append(args, *patch.Raw)
	}
	if patch.Default != nil {
		set = append(set, "default")
		args = append(args, *patch.Default)
	}
	if patch.Type != nil {
		set = append(set, "type")
		args = append(args, *patch.Type)
	}
	if patch.Public != nil {
		set = append(set, "public")
		args = append(args, *patch.Public)
	}

	if len(set) == 0 {
		return file, nil
	}

	query, args := buildUpdate("files", set, args, "id = ? AND author_id = ?", id, authorID)
	_, err = r.db.Exec(r.db.Rebind(query), args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrFileExists
		}
		return nil, err
	}

	return r.OwnedByID(id, authorID)
}

func (r *fileRepository) SetPublic(id string, public bool) (*model.File, error) {
	_, err := r.db.Exec(`UPDATE files SET public = $1 WHERE id = $2`, public, id)
	if err != nil {
		return nil, err
	}

	file := &model.File{}
	err = r.db.Get(file, `SELECT * FROM files WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrFileNotFound
	}

	return file, err
}

func (r *fileRepository) PublishByIDs(ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`UPDATE files SET public = ? WHERE id IN (?) AND public != ?`, true, ids, true)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(r.db.Rebind(query), args...)
	return err
}

func (r *fileRepository) Delete(id, authorID string) (*model.File, error) {
	file, err := r.OwnedByID(id, authorID)
	if err != nil {
		return nil, err
	}

	_, err = r.db.Exec(`DELETE FROM files WHERE id = $1 AND author_id = $2`, id, authorID)
	if err != nil {
		return nil, err
	}

	return file, nil
}
