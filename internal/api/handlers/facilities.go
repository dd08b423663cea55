package handlers

import (
	"context"
	"net/http"

	"github.com/rumahkos/kos-bff/internal/domain"
	"github.com/rumahkos/kos-bff/middleware"
)

type FacilityClient interface {
	ListFacilities(ctx context.Context, token string, kosID int) ([]domain.Facility, error)
	CreateFacility(ctx context.Context, token string, kosID int, name string) error
	GetFacility(ctx context.Context, token string, id int) (domain.Facility, error)
	UpdateFacility(ctx context.Context, token string, id int, name string) error
	DeleteFacility(ctx context.Context, token string, id int) error
}

type FacilityHandler struct {
	client FacilityClient
}

func NewFacilityHandler(client FacilityClient) *FacilityHandler {
	return &FacilityHandler{client: client}
}

func (h *FacilityHandler) List(w http.ResponseWriter, r *http.Request) {
	kosID, ok := urlID(r, "kosID")
	if !ok {
		sendError(w, r, "validation_failed", "invalid kos id", http.StatusBadRequest)
		return
	}

	token := middleware.GetToken(r.Context())
	respondList(w, r, "Gagal mengambil data fasilitas.", func() ([]domain.Facility, error) {
		return h.client.ListFacilities(r.Context(), token, kosID)
	})
}

func (h *FacilityHandler) Create(w http.ResponseWriter, r *http.Request) {
	kosID, ok := urlID(r, "kosID")
	if !ok {
		sendError(w, r, "validation_failed", "invalid kos id", http.StatusBadRequest)
		return
	}

	var form domain.FacilityForm
	if !decodeBody(w, r, &form) {
		return
	}
	if errs := form.Validate(); len(errs) > 0 {
		sendValidation(w, r, errs)
		return
	}

	if err := h.client.CreateFacility(r.Context(), middleware.GetToken(r.Context()), kosID, form.Name); err != nil {
		handleUpstreamError(w, r, err, "Gagal menambahkan fasilitas")
		return
	}

	sendJSON(w, http.StatusCreated, map[string]any{
		"message":  "Fasilitas berhasil ditambahkan!",
		"redirect": "/owner/fasilitas",
	})
}

func (h *FacilityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid facility id", http.StatusBadRequest)
		return
	}

	facility, err := h.client.GetFacility(r.Context(), middleware.GetToken(r.Context()), id)
	if err != nil {
		handleUpstreamError(w, r, err, "Gagal memuat data fasilitas. Silakan coba lagi.")
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{"data": facility})
}

func (h *FacilityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid facility id", http.StatusBadRequest)
		return
	}

	var form domain.FacilityForm
	if !decodeBody(w, r, &form) {
		return
	}
	if errs := form.Validate(); len(errs) > 0 {
		sendValidation(w, r, errs)
		return
	}

	if err := h.client.UpdateFacility(r.Context(), middleware.GetToken(r.Context()), id, form.Name); err != nil {
		handleUpstreamError(w, r, err, "Gagal mengupdate fasilitas")
		return
	}

	sendJSON(w, http.StatusOK, map[string]any{
		"message":  "Fasilitas berhasil diupdate!",
		"redirect": "/owner/fasilitas",
	})
}

// Delete removes the facility and returns the re-fetched list for its kos.
func (h *FacilityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid facility id", http.StatusBadRequest)
		return
	}
	kosID, ok := urlID(r, "kosID")
	if !ok {
		sendError(w, r, "validation_failed", "invalid kos id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	token := middleware.GetToken(ctx)
	if err := h.client.DeleteFacility(ctx, token, id); err != nil {
		handleUpstreamError(w, r, err, "Gagal menghapus fasilitas")
		return
	}

	respondList(w, r, "Gagal mengambil data fasilitas.", func() ([]domain.Facility, error) {
		return h.client.ListFacilities(ctx, token, kosID)
	})
}
