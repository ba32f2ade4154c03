package handler

import (
	"net/http"

	"github.com/monohq/mono/internal/ctxkeys"
	"github.com/monohq/mono/internal/service"
)

type ShareHandler struct {
	shareService *service.ShareService
}

func NewShareHandler(shareService *service.ShareService) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
	}
}

func (h *ShareHandler) Single(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	in := &service.FileInput{}
	if err := decodeJSON(r, in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	file, alreadyShared, err := h.shareService.Single(user.ID, in)
	if err != nil {
		if isValidation(err) {
			respondValidation(w, err)
			return
		}
		respondInternal(w, err, "failed to share file")
		return
	}

	if alreadyShared {
		respondSuccess(w, "File already shared", file)
		return
	}
	respondSuccess(w, "File shared", file)
}

func (h *ShareHandler) Multiple(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var inputs []*service.FileInput
	if err := decodeJSON(r, &inputs); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.shareService.Multiple(user.ID, inputs)
	if err != nil {
		if isValidation(err) {
			respondValidation(w, err)
			return
		}
		respondInternal(w, err, "failed to share files")
		return
	}

	respondSuccess(w, "Files shared", result)
}
