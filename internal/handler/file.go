package handler

import (
	"errors"
	"net/http"

	"github.com/monohq/mono/internal/ctxkeys"
	"github.com/monohq/mono/internal/model"
	"github.com/monohq/mono/internal/repository"
	"github.com/monohq/mono/internal/service"
)

type FileHandler struct {
	fileService *service.FileService
}

func NewFileHandler(fileService *service.FileService) *FileHandler {
	return &FileHandler{
		fileService: fileService,
	}
}

func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	caller := ctxkeys.User(r.Context())

	files, err := h.fileService.List(caller)
	if err != nil {
		respondInternal(w, err, "failed to list files")
		return
	}

	respondSuccess(w, "Files found", files)
}

func (h *FileHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller := ctxkeys.User(r.Context())
	id := r.PathValue("id")

	file, err := h.fileService.Get(id, caller)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			respondError(w, http.StatusNotFound, "File not found")
			return
		}
		respondInternal(w, err, "failed to get file")
		return
	}

	respondSuccess(w, "File found", file)
}

func (h *FileHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	in := &service.FileInput{}
	if err := decodeJSON(r, in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	file, err := h.fileService.Create(user.ID, in)
	if err != nil {
		switch {
		case isValidation(err):
			respondValidation(w, err)
		case errors.Is(err, repository.ErrFileExists):
			// The existing row rides along in the conflict body.
			respond(w, http.StatusConflict, Response{
				Success: false,
				Message: "File already exists",
				Data:    file,
			})
		default:
			respondInternal(w, err, "failed to create file")
		}
		return
	}

	respondSuccess(w, "File created", file)
}

// Update applies a partial update, scoped to files the caller owns. A file
// owned by someone else answers 404, masking its existence.
func (h *FileHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	id := r.PathValue("id")

	patch := &model.FilePatch{}
	if err := decodeJSON(r, patch); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	file, err := h.fileService.Update(id, user.ID, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrFileNotFound):
			respondError(w, http.StatusNotFound, "File not found")
		case errors.Is(err, repository.ErrFileExists):
			respondError(w, http.StatusConflict, "File already exists")
		default:
			respondInternal(w, err, "failed to update file")
		}
		return
	}

	respondSuccess(w, "File updated", file)
}

func (h *FileHandler) Unshare(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	id := r.PathValue("id")

	file, changed, err := h.fileService.Unshare(id, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			respondError(w, http.StatusNotFound, "File not found")
			return
		}
		respondInternal(w, err, "failed to unshare file")
		return
	}

	if !changed {
		respondSuccess(w, "File already unshared", file)
		return
	}
	respondSuccess(w, "File unshared", file)
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	id := r.PathValue("id")

	file, err := h.fileService.Delete(id, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			respondError(w, http.StatusNotFound, "File not found")
			return
		}
		respondInternal(w, err, "failed to delete file")
		return
	}

	respondSuccess(w, "File deleted", file)
}

// Render serves a visible markdown file as HTML plus its frontmatter
// metadata.
func (h *FileHandler) Render(w http.ResponseWriter, r *http.Request) {
	caller := ctxkeys.User(r.Context())
	id := r.PathValue("id")

	rendered, err := h.fileService.Render(id, caller)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrFileNotFound):
			respondError(w, http.StatusNotFound, "File not found")
		case errors.Is(err, service.ErrNotMarkdown):
			respondError(w, http.StatusBadRequest, "File is not markdown")
		default:
			respondInternal(w, err, "failed to render file")
		}
		return
	}

	respondSuccess(w, "File rendered", rendered)
}
