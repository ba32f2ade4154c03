package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/monohq/mono/internal/model"
	"github.com/monohq/mono/internal/repository"
	"github.com/monohq/mono/internal/storage"
)

var ErrBackupForbidden = errors.New("backup belongs to another user")

type BackupService struct {
	backupRepository repository.BackupRepository
	archive          storage.Storage // optional; nil disables archiving
}

func NewBackupService(backupRepository repository.BackupRepository, archive storage.Storage) *BackupService {
	return &BackupService{
		backupRepository: backupRepository,
		archive:          archive,
	}
}

func (s *BackupService) ListOwn(authorID string) ([]*model.Backup, error) {
	return s.backupRepository.ByAuthor(authorID)
}

// ListByUser returns another user's backups, reporting an empty set as not
// found.
func (s *BackupService) ListByUser(userID string) ([]*model.Backup, error) {
	backups, err := s.backupRepository.ByAuthor(userID)
	if err != nil {
		return nil, err
	}
	if len(backups) == 0 {
		return nil, repository.ErrBackupNotFound
	}
	return backups, nil
}

func (s *BackupService) Get(id int64) (*model.Backup, error) {
	return s.backupRepository.ByID(id)
}

// Create stores an opaque JSON payload owned by authorID. When an archive
// store is configured the payload is also uploaded there; archive failures
// are logged and do not fail the request.
func (s *BackupService) Create(authorID string, data json.RawMessage) (*model.Backup, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: data is required", ErrValidation)
	}

	backup := &model.Backup{
		AuthorID:  authorID,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}

	err := s.backupRepository.Create(backup)
	if err != nil {
		return nil, err
	}

	if s.archive != nil {
		err = s.archive.Save(archivePath(backup), bytes.NewReader(data))
		if err != nil {
			slog.Warn("failed to archive backup", "error", err, "backup_id", backup.ID, "user_id", authorID)
		}
	}

	return backup, nil
}

// Delete removes a backup and returns the deleted row. Requesters who do not
// own the backup get ErrBackupForbidden, distinct from not-found.
func (s *BackupService) Delete(id int64, requesterID string) (*model.Backup, error) {
	backup, err := s.backupRepository.ByID(id)
	if err != nil {
		return nil, err
	}

	if backup.AuthorID != requesterID {
		return nil, ErrBackupForbidden
	}

	err = s.backupRepository.Delete(id)
	if err != nil {
		return nil, err
	}

	if s.archive != nil {
		err = s.archive.Delete(archivePath(backup))
		if err != nil {
			slog.Warn("failed to delete archived backup", "error", err, "backup_id", backup.ID)
		}
	}

	return backup, nil
}

func archivePath(backup *model.Backup) string {
	return fmt.Sprintf("backups/%s/%d.json", backup.AuthorID, backup.ID)
}
