package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/monohq/mono/internal/ctxkeys"
	"github.com/monohq/mono/internal/repository"
	"github.com/monohq/mono/internal/service"
)

type BackupHandler struct {
	backupService *service.BackupService
}

func NewBackupHandler(backupService *service.BackupService) *BackupHandler {
	return &BackupHandler{
		backupService: backupService,
	}
}

func (h *BackupHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	backups, err := h.backupService.ListOwn(user.ID)
	if err != nil {
		respondInternal(w, err, "failed to list backups")
		return
	}

	respondSuccess(w, "Backups found", backups)
}

func (h *BackupHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	backups, err := h.backupService.ListByUser(userID)
	if err != nil {
		if errors.Is(err, repository.ErrBackupNotFound) {
			respondError(w, http.StatusNotFound, "No backups found for this user")
			return
		}
		respondInternal(w, err, "failed to list backups")
		return
	}

	respondSuccess(w, "Backups found", backups)
}

func (h *BackupHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "Backup not found")
		return
	}

	backup, err := h.backupService.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrBackupNotFound) {
			respondError(w, http.StatusNotFound, "Backup not found")
			return
		}
		respondInternal(w, err, "failed to get backup")
		return
	}

	respondSuccess(w, "Backup found", backup)
}

func (h *BackupHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	// The payload lives under the body's data key; the wrapper itself is not
	// stored.
	var body struct {
		Data json.RawMessage `json:"data"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	backup, err := h.backupService.Create(user.ID, body.Data)
	if err != nil {
		if isValidation(err) {
			respondValidation(w, err)
			return
		}
		respondInternal(w, err, "failed to create backup")
		return
	}

	respondSuccess(w, "Backup created", backup)
}

func (h *BackupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "Backup not found")
		return
	}

	backup, err := h.backupService.Delete(id, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBackupNotFound):
			respondError(w, http.StatusNotFound, "Backup not found")
		case errors.Is(err, service.ErrBackupForbidden):
			respondError(w, http.StatusForbidden, "You don't have permission to delete this backup")
		default:
			respondInternal(w, err, "failed to delete backup")
		}
		return
	}

	respondSuccess(w, "Backup deleted", backup)
}
