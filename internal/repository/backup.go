package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/monohq/mono/internal/model"
)

var ErrBackupNotFound = errors.New("backup not found")

type BackupRepository interface {
	Create(backup *model.Backup) error
	ByID(id int64) (*model.Backup, error)
	ByAuthor(authorID string) ([]*model.Backup, error)
	Delete(id int64) error
}

type backupRepository struct {
	db *sqlx.DB
}

func NewBackupRepository(db *sqlx.DB) BackupRepository {
	return &backupRepository{db: db}
}

func (r *backupRepository) Create(backup *model.Backup) error {
	query := `INSERT INTO backups (author_id, data, created_at) VALUES ($1, $2, $3) RETURNING id`

	return r.db.QueryRow(query, backup.AuthorID, []byte(backup.Data), backup.CreatedAt).Scan(&backup.ID)
}

func (r *backupRepository) ByID(id int64) (*model.Backup, error) {
	backup := &model.Backup{}
	query := `SELECT * FROM backups WHERE id = $1`

	err := r.db.Get(backup, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrBackupNotFound
	}

	return backup, err
}

func (r *backupRepository) ByAuthor(authorID string) ([]*model.Backup, error) {
	backups := []*model.Backup{}
	query := `SELECT * FROM backups WHERE author_id = $1 ORDER BY id`

	err := r.db.Select(&backups, query, authorID)
	return backups, err
}

func (r *backupRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM backups WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBackupNotFound
	}

	return nil
}
