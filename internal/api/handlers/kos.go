package handlers

import (
	"context"
	"net/http"

	"github.com/rumahkos/kos-bff/internal/domain"
	"github.com/rumahkos/kos-bff/middleware"
)

type OwnerKosClient interface {
	ListOwnerKos(ctx context.Context, token string) ([]domain.Kos, error)
	GetOwnerKos(ctx context.Context, token string, id int) (domain.Kos, error)
	CreateKos(ctx context.Context, token string, ownerID int, form domain.KosForm) error
	UpdateKos(ctx context.Context, token string, id, ownerID int, form domain.KosForm) error
	DeleteKos(ctx context.Context, token string, id int) error
}

type SocietyKosClient interface {
	SearchKos(ctx context.Context, token, search string) ([]domain.Kos, error)
	KosDetail(ctx context.Context, token string, id int) (domain.Kos, error)
}

type KosHandler struct {
	owner   OwnerKosClient
	society SocietyKosClient
}

func NewKosHandler(owner OwnerKosClient, society SocietyKosClient) *KosHandler {
	return &KosHandler{owner: owner, society: society}
}

func (h *KosHandler) ListOwner(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetToken(r.Context())
	respondList(w, r, "Gagal mengambil data kos.", func() ([]domain.Kos, error) {
		return h.owner.ListOwnerKos(r.Context(), token)
	})
}

func (h *KosHandler) GetOwner(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid kos id", http.StatusBadRequest)
		return
	}

	token := middleware.GetToken(r.Context())
	kos, err := h.owner.GetOwnerKos(r.Context(), token, id)
	if err != nil {
		handleUpstreamError(w, r, err, "Gagal memuat data kos. Silakan coba lagi.")
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{"data": kos})
}

// Create validates the form before any upstream call is made; a failing form
// never issues a request.
func (h *KosHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form domain.KosForm
	if !decodeBody(w, r, &form) {
		return
	}
	if errs := form.Validate(); len(errs) > 0 {
		sendValidation(w, r, errs)
		return
	}

	ctx := r.Context()
	if err := h.owner.CreateKos(ctx, middleware.GetToken(ctx), middleware.GetUserID(ctx), form); err != nil {
		handleUpstreamError(w, r, err, "Gagal menambahkan kos")
		return
	}

	sendJSON(w, http.StatusCreated, map[string]any{
		"message":  "Kos berhasil ditambahkan!",
		"redirect": "/owner/kos",
	})
}

func (h *KosHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid kos id", http.StatusBadRequest)
		return
	}

	var form domain.KosForm
	if !decodeBody(w, r, &form) {
		return
	}
	if errs := form.Validate(); len(errs) > 0 {
		sendValidation(w, r, errs)
		return
	}

	ctx := r.Context()
	if err := h.owner.UpdateKos(ctx, middleware.GetToken(ctx), id, middleware.GetUserID(ctx), form); err != nil {
		handleUpstreamError(w, r, err, "Gagal mengupdate kos")
		return
	}

	sendJSON(w, http.StatusOK, map[string]any{
		"message":  "Kos berhasil diupdate!",
		"redirect": "/owner/kos",
	})
}

// Delete removes the kos and answers with the re-fetched list, so the UI
// replaces its rows in the same round trip.
func (h *KosHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid kos id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	token := middleware.GetToken(ctx)
	if err := h.owner.DeleteKos(ctx, token, id); err != nil {
		handleUpstreamError(w, r, err, "Gagal menghapus kos")
		return
	}

	respondList(w, r, "Gagal mengambil data kos.", func() ([]domain.Kos, error) {
		return h.owner.ListOwnerKos(ctx, token)
	})
}

func (h *KosHandler) Search(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetToken(r.Context())
	search := r.URL.Query().Get("search")
	respondList(w, r, "Gagal mengambil data kos.", func() ([]domain.Kos, error) {
		return h.society.SearchKos(r.Context(), token, search)
	})
}

// Detail composes the kos record with its gallery, facility list, and the
// booking actions available to the caller.
func (h *KosHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid kos id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	kos, err := h.society.KosDetail(ctx, middleware.GetToken(ctx), id)
	if err != nil {
		handleUpstreamError(w, r, err, "Gagal mengambil detail kos. Periksa koneksi atau server API.")
		return
	}

	role := middleware.GetRole(ctx)
	sendJSON(w, http.StatusOK, map[string]any{
		"data": kos,
		"actions": map[string]any{
			"can_book": role == domain.RoleSociety,
		},
	})
}
