package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/rumahkos/kos-bff/internal/domain"
	"github.com/rumahkos/kos-bff/internal/session"
)

type AuthClient interface {
	Register(ctx context.Context, form domain.RegisterForm) (string, error)
	Login(ctx context.Context, form domain.LoginForm) (string, domain.Profile, error)
}

type AuthHandler struct {
	client AuthClient
	store  *session.Store
}

func NewAuthHandler(client AuthClient, store *session.Store) *AuthHandler {
	return &AuthHandler{client: client, store: store}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var form domain.RegisterForm
	if !decodeBody(w, r, &form) {
		return
	}
	if form.Role == "" {
		form.Role = domain.RoleSociety
	}
	if errs := form.Validate(); len(errs) > 0 {
		sendValidation(w, r, errs)
		return
	}

	msg, err := h.client.Register(r.Context(), form)
	if err != nil {
		handleUpstreamError(w, r, err, "Gagal mendaftar.")
		return
	}

	sendJSON(w, http.StatusCreated, map[string]any{
		"message":  msg,
		"redirect": "/login",
	})
}

// Login exchanges credentials upstream and persists the four credential
// cookies for one day.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var form domain.LoginForm
	if !decodeBody(w, r, &form) {
		return
	}
	if errs := form.Validate(); len(errs) > 0 {
		sendValidation(w, r, errs)
		return
	}

	token, profile, err := h.client.Login(r.Context(), form)
	if err != nil {
		handleUpstreamError(w, r, err, "Terjadi kesalahan saat login.")
		return
	}

	h.store.Set(w, session.CookieToken, token)
	h.store.Set(w, session.CookieUserID, strconv.Itoa(profile.ID))
	h.store.Set(w, session.CookieUserRole, profile.Role)
	h.store.SetUser(w, profile)

	redirect := "/society"
	if profile.Role == domain.RoleOwner {
		redirect = "/owner"
	}

	sendJSON(w, http.StatusOK, map[string]any{
		"user":     profile,
		"redirect": redirect,
	})
}

// Logout clears every credential cookie; the upstream holds no session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.store.Clear(w)
	sendJSON(w, http.StatusOK, map[string]any{"redirect": "/login"})
}
