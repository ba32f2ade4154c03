package handler

import (
	"errors"
	"net/http"

	"github.com/monohq/mono/internal/model"
	"github.com/monohq/mono/internal/repository"
	"github.com/monohq/mono/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.All()
	if err != nil {
		respondInternal(w, err, "failed to list users")
		return
	}

	respondSuccess(w, "Users found", map[string]any{"users": users})
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	user, err := h.userService.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		respondInternal(w, err, "failed to get user")
		return
	}

	respondSuccess(w, "User found", map[string]any{"user": user})
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	patch := &model.UserPatch{}
	if err := decodeJSON(r, patch); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err := h.userService.Update(id, patch)
	if err != nil {
		switch {
		case isValidation(err):
			respondValidation(w, err)
		case errors.Is(err, repository.ErrUserNotFound):
			respondError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, repository.ErrDuplicateEmail):
			respondError(w, http.StatusConflict, "User already exists")
		default:
			respondInternal(w, err, "failed to update user")
		}
		return
	}

	respondSuccess(w, "User updated", nil)
}
