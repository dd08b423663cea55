package handlers

import (
	"context"
	"net/http"

	"github.com/rumahkos/kos-bff/internal/domain"
	"github.com/rumahkos/kos-bff/internal/session"
	"github.com/rumahkos/kos-bff/middleware"
)

type ProfileClient interface {
	UpdateProfile(ctx context.Context, token, role string, form domain.ProfileForm) (domain.Profile, error)
}

type ProfileHandler struct {
	client ProfileClient
	store  *session.Store
}

func NewProfileHandler(client ProfileClient, store *session.Store) *ProfileHandler {
	return &ProfileHandler{client: client, store: store}
}

// Get serves the profile from the session cookie; no upstream call.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile := h.store.User(r)
	if profile.ID == 0 {
		profile.ID = middleware.GetUserID(r.Context())
		profile.Role = middleware.GetRole(r.Context())
	}
	sendJSON(w, http.StatusOK, map[string]any{"data": profile})
}

type profileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Update pushes the edited profile upstream and refreshes the user cookie
// so the header shows the new name immediately.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	form := domain.ProfileForm{Name: req.Name, Email: req.Email, Phone: req.Phone}
	if errs := form.Validate(); len(errs) > 0 {
		sendValidation(w, r, errs)
		return
	}

	ctx := r.Context()
	role := middleware.GetRole(ctx)
	profile, err := h.client.UpdateProfile(ctx, middleware.GetToken(ctx), role, form)
	if err != nil {
		handleUpstreamError(w, r, err, "Gagal update profil: Silakan coba lagi.")
		return
	}

	// The upstream may echo a partial object; backfill from the session.
	current := h.store.User(r)
	if profile.ID == 0 {
		profile.ID = current.ID
	}
	if profile.Name == "" {
		profile.Name = form.Name
	}
	if profile.Email == "" {
		profile.Email = form.Email
	}
	if profile.Phone == "" {
		profile.Phone = form.Phone
	}
	if profile.Role == "" {
		profile.Role = role
	}
	h.store.SetUser(w, profile)

	sendJSON(w, http.StatusOK, map[string]any{
		"message": "Profil berhasil diupdate!",
		"data":    profile,
	})
}
