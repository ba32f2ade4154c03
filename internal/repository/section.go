package repository

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/monohq/mono/internal/model"
)

var (
	ErrSectionNotFound = errors.New("section not found")
	ErrSectionExists   = errors.New("section already exists")
)

type SectionRepository interface {
	Create(section *model.Section) error
	ByNameAndAuthor(name, authorID string) (*model.Section, error)
	// Visible returns public sections plus, when callerID is non-nil, the
	// caller's own sections.
	Visible(callerID *string) ([]*model.Section, error)
	ByAuthor(authorID string) ([]*model.Section, error)
	// VisibleByID returns the section only when it is public or owned by the
	// caller; anything else is reported as not found.
	VisibleByID(id string, callerID *string) (*model.Section, error)
	UpdateByName(name, authorID string, patch *model.SectionPatch) (*model.Section, error)
	DeleteByName(name, authorID string) (*model.Section, error)
	// GetOrCreate resolves the section named name for authorID, creating it
	// lazily when absent. Used by file create and share flows.
	GetOrCreate(name, authorID string) (*model.Section, error)
}

type sectionRepository struct {
	db *sqlx.DB
}

func NewSectionRepository(db *sqlx.DB) SectionRepository {
	return &sectionRepository{db: db}
}

func (r *sectionRepository) Create(section *model.Section) error {
	query := `INSERT INTO sections (id, name, author_id, public) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query, section.ID, section.Name, section.AuthorID, section.Public)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSectionExists
		}
		return err
	}

	return nil
}

func (r *sectionRepository) ByNameAndAuthor(name, authorID string) (*model.Section, error) {
	section := &model.Section{}
	query := `SELECT * FROM sections WHERE name = $1 AND author_id = $2`

	err := r.db.Get(section, query, name, authorID)
	if err == sql.ErrNoRows {
		return nil, ErrSectionNotFound
	}

	return section, err
}

func (r *sectionRepository) Visible(callerID *string) ([]*model.Section, error) {
	sections := []*model.Section{}

	if callerID == nil {
		query := `SELECT * FROM sections WHERE public = $1`
		err := r.db.Select(&sections, query, true)
		return sections, err
	}

	query := `SELECT * FROM sections WHERE public = $1 OR author_id = $2`
	err := r.db.Select(&sections, query, true, *callerID)
	return sections, err
}

func (r *sectionRepository) ByAuthor(authorID string) ([]*model.Section, error) {
	sections := []*model.Section{}
	query := `SELECT * FROM sections WHERE author_id = $1`

	err := r.db.Select(&sections, query, authorID)
	return sections, err
}

func (r *sectionRepository) VisibleByID(id string, callerID *string) (*model.Section, error) {
	section := &model.Section{}

	var err error
	if callerID == nil {
		query := `SELECT * FROM sections WHERE id = $1 AND public = $2`
		err = r.db.Get(section, query, id, true)
	} else {
		query := `SELECT * FROM sections WHERE id = $1 AND (public = $2 OR author_id = $3)`
		err = r.db.Get(section, query, id, true, *callerID)
	}
	if err == sql.ErrNoRows {
		return nil, ErrSectionNotFound
	}

	return section, err
}

func (r *sectionRepository) UpdateByName(name, authorID string, patch *model.SectionPatch) (*model.Section, error) {
	section, err := r.ByNameAndAuthor(name, authorID)
	if err != nil {
		return nil, err
	}

	set := []string{}
	args := []any{}

	if patch.Name != nil {
		set = append(set, "name")
		args = append(args, *patch.Name)
	}
	if patch.Public != nil {
		set = append(set, "public")
		args = append(args, *patch.Public)
	}

	if len(set) == 0 {
		return section, nil
	}

	query, args := buildUpdate("sections", set, args, "id = ?", section.ID)
	_, err = r.db.Exec(r.db.Rebind(query), args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSectionExists
		}
		return nil, err
	}

	updated := &model.Section{}
	err = r.db.Get(updated, `SELECT * FROM sections WHERE id = $1`, section.ID)
	return updated, err
}

func (r *sectionRepository) DeleteByName(name, authorID string) (*model.Section, error) {
	section, err := r.ByNameAndAuthor(name, authorID)
	if err != nil {
		return nil, err
	}

	// Files in the section are left in place; deletes do not cascade.
	_, err = r.db.Exec(`DELETE FROM sections WHERE id = $1`, section.ID)
	if err != nil {
		return nil, err
	}

	return section, nil
}

func (r *sectionRepository) GetOrCreate(name, authorID string) (*model.Section, error) {
	section, err := r.ByNameAndAuthor(name, authorID)
	if err == nil {
		return section, nil
	}
	if !errors.Is(err, ErrSectionNotFound) {
		return nil, err
	}

	section = &model.Section{
		ID:       uuid.New().String(),
		Name:     name,
		AuthorID: authorID,
	}
	err = r.Create(section)
	if errors.Is(err, ErrSectionExists) {
		// Lost a create race; the row now exists.
		return r.ByNameAndAuthor(name, authorID)
	}
	if err != nil {
		return nil, err
	}

	return section, nil
}
