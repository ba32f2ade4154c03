package handler

import (
	"errors"
	"net/http"

	"github.com/monohq/mono/internal/ctxkeys"
	"github.com/monohq/mono/internal/model"
	"github.com/monohq/mono/internal/repository"
	"github.com/monohq/mono/internal/service"
)

type SectionHandler struct {
	sectionService *service.SectionService
}

func NewSectionHandler(sectionService *service.SectionService) *SectionHandler {
	return &SectionHandler{
		sectionService: sectionService,
	}
}

// List blends public sections with the caller's own; anonymous callers see
// public only.
func (h *SectionHandler) List(w http.ResponseWriter, r *http.Request) {
	caller := ctxkeys.User(r.Context())

	sections, err := h.sectionService.List(caller)
	if err != nil {
		respondInternal(w, err, "failed to list sections")
		return
	}

	respondSuccess(w, "Sections found", sections)
}

func (h *SectionHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	sections, err := h.sectionService.ListOwn(user.ID)
	if err != nil {
		respondInternal(w, err, "failed to list own sections")
		return
	}

	respondSuccess(w, "Sections found", sections)
}

// Files returns the restricted projection of a visible section's files.
func (h *SectionHandler) Files(w http.ResponseWriter, r *http.Request) {
	caller := ctxkeys.User(r.Context())
	id := r.PathValue("id")

	files, err := h.sectionService.Files(id, caller)
	if err != nil {
		if errors.Is(err, repository.ErrSectionNotFound) {
			respondError(w, http.StatusNotFound, "Section not found")
			return
		}
		respondInternal(w, err, "failed to list section files")
		return
	}

	respondSuccess(w, "Files found", files)
}

func (h *SectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var body struct {
		Name   string `json:"name"`
		Public bool   `json:"public"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	section, err := h.sectionService.Create(user.ID, body.Name, body.Public)
	if err != nil {
		switch {
		case isValidation(err):
			respondValidation(w, err)
		case errors.Is(err, repository.ErrSectionExists):
			respondError(w, http.StatusConflict, "Section already exists")
		default:
			respondInternal(w, err, "failed to create section")
		}
		return
	}

	respondSuccess(w, "Section created", section)
}

func (h *SectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	name := r.PathValue("name")

	patch := &model.SectionPatch{}
	if err := decodeJSON(r, patch); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	section, err := h.sectionService.Update(user.ID, name, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSectionNotFound):
			respondError(w, http.StatusNotFound, "Section not found")
		case errors.Is(err, repository.ErrSectionExists):
			respondError(w, http.StatusConflict, "Section already exists")
		default:
			respondInternal(w, err, "failed to update section")
		}
		return
	}

	respondSuccess(w, "Section updated", section)
}

func (h *SectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	name := r.PathValue("name")

	section, err := h.sectionService.Delete(user.ID, name)
	if err != nil {
		if errors.Is(err, repository.ErrSectionNotFound) {
			respondError(w, http.StatusNotFound, "Section not found")
			return
		}
		respondInternal(w, err, "failed to delete section")
		return
	}

	respondSuccess(w, "Section deleted", section)
}
