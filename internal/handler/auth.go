package handler

import (
	"errors"
	"net/http"

	"github.com/monohq/mono/internal/ctxkeys"
	"github.com/monohq/mono/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Me returns the current identity together with the session cookie values.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	accessToken := ""
	if cookie, err := r.Cookie(service.CookieAccessToken); err == nil {
		accessToken = cookie.Value
	}
	refreshToken := ""
	if cookie, err := r.Cookie(service.CookieRefreshToken); err == nil {
		refreshToken = cookie.Value
	}

	respondSuccess(w, "User found", map[string]any{
		"user":         user,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, pair, err := h.authService.SignUp(body.Email, body.Username, body.Password)
	if err != nil {
		switch {
		case isValidation(err):
			respondValidation(w, err)
		case errors.Is(err, service.ErrEmailAlreadyExists):
			respondError(w, http.StatusConflict, "User already exists")
		default:
			respondInternal(w, err, "sign-up failed")
		}
		return
	}

	h.authService.SetSessionCookies(w, pair)
	respondSuccess(w, "User signed up", map[string]any{
		"user":        user,
		"accessToken": pair.AccessToken,
	})
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if body.Email == "" || body.Password == "" {
		respondError(w, http.StatusBadRequest, "Missing email or password")
		return
	}

	user, pair, err := h.authService.SignIn(body.Email, body.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		respondInternal(w, err, "sign-in failed")
		return
	}

	h.authService.SetSessionCookies(w, pair)
	respondSuccess(w, "User signed in", map[string]any{
		"user":        user,
		"accessToken": pair.AccessToken,
	})
}

// Refresh rotates the session from the refresh-token cookie. Both session
// cookies must be present, mirroring the pair issued at sign-in.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	_, accessErr := r.Cookie(service.CookieAccessToken)
	refreshCookie, refreshErr := r.Cookie(service.CookieRefreshToken)
	if accessErr != nil || refreshErr != nil || refreshCookie.Value == "" {
		respondError(w, http.StatusBadRequest, "Missing tokens")
		return
	}

	_, pair, err := h.authService.Refresh(refreshCookie.Value)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			respondError(w, http.StatusUnauthorized, "Invalid refresh token")
			return
		}
		respondInternal(w, err, "refresh failed")
		return
	}

	h.authService.SetSessionCookies(w, pair)
	respondSuccess(w, "Refreshed", map[string]any{
		"accessToken": pair.AccessToken,
	})
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.authService.SignOut(user.ID)
	if err != nil {
		respondInternal(w, err, "sign-out failed")
		return
	}

	h.authService.ClearSessionCookies(w)
	respondSuccess(w, "User signed out", nil)
}
