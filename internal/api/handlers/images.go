package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/rumahkos/kos-bff/internal/domain"
	"github.com/rumahkos/kos-bff/middleware"
)

type ImageClient interface {
	ListImages(ctx context.Context, token string, kosID int) ([]domain.Image, error)
	GetImage(ctx context.Context, token string, id int) (domain.Image, error)
	UploadImage(ctx context.Context, token string, kosID int, filename string, file io.Reader) error
	UpdateImage(ctx context.Context, token string, id int, filename string, file io.Reader) error
	DeleteImage(ctx context.Context, token string, id int) error
}

type ImageHandler struct {
	client ImageClient
}

func NewImageHandler(client ImageClient) *ImageHandler {
	return &ImageHandler{client: client}
}

func (h *ImageHandler) List(w http.ResponseWriter, r *http.Request) {
	kosID, ok := urlID(r, "kosID")
	if !ok {
		sendError(w, r, "validation_failed", "invalid kos id", http.StatusBadRequest)
		return
	}

	token := middleware.GetToken(r.Context())
	respondList(w, r, "Gagal mengambil data gambar.", func() ([]domain.Image, error) {
		return h.client.ListImages(r.Context(), token, kosID)
	})
}

func (h *ImageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid image id", http.StatusBadRequest)
		return
	}

	img, err := h.client.GetImage(r.Context(), middleware.GetToken(r.Context()), id)
	if err != nil {
		handleUpstreamError(w, r, err, "Gagal memuat data gambar. Silakan coba lagi.")
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{"data": img})
}

// Upload accepts a multipart form with the photo in the "file" field. The
// 5MB ceiling and image/* MIME gate run before anything goes upstream.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	kosID, ok := urlID(r, "kosID")
	if !ok {
		sendError(w, r, "validation_failed", "invalid kos id", http.StatusBadRequest)
		return
	}

	file, header, ok := h.formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	if err := h.client.UploadImage(r.Context(), middleware.GetToken(r.Context()), kosID, header.Filename, file); err != nil {
		handleUpstreamError(w, r, err, "Gagal mengupload gambar.")
		return
	}

	sendJSON(w, http.StatusCreated, map[string]any{
		"message":  "Gambar berhasil diupload!",
		"redirect": "/owner/imagekos",
	})
}

func (h *ImageHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid image id", http.StatusBadRequest)
		return
	}

	file, header, ok := h.formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	if err := h.client.UpdateImage(r.Context(), middleware.GetToken(r.Context()), id, header.Filename, file); err != nil {
		handleUpstreamError(w, r, err, "Gagal mengupdate gambar.")
		return
	}

	sendJSON(w, http.StatusOK, map[string]any{
		"message":  "Gambar berhasil diupdate!",
		"redirect": "/owner/imagekos",
	})
}

// Delete removes the image and answers with the re-fetched gallery.
func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid image id", http.StatusBadRequest)
		return
	}
	kosID, ok := urlID(r, "kosID")
	if !ok {
		sendError(w, r, "validation_failed", "invalid kos id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	token := middleware.GetToken(ctx)
	if err := h.client.DeleteImage(ctx, token, id); err != nil {
		handleUpstreamError(w, r, err, "Gagal menghapus gambar.")
		return
	}

	respondList(w, r, "Gagal mengambil data gambar.", func() ([]domain.Image, error) {
		return h.client.ListImages(ctx, token, kosID)
	})
}

func (h *ImageHandler) formFile(w http.ResponseWriter, r *http.Request) (io.ReadCloser, *multipartHeader, bool) {
	if err := r.ParseMultipartForm(domain.MaxImageSize + 1024); err != nil {
		sendError(w, r, "validation_failed", "Pilih gambar terlebih dahulu!", http.StatusBadRequest)
		return nil, nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		sendError(w, r, "validation_failed", "Pilih gambar terlebih dahulu!", http.StatusBadRequest)
		return nil, nil, false
	}

	if errs := domain.ValidateImageUpload(header.Size, header.Header.Get("Content-Type")); len(errs) > 0 {
		file.Close()
		sendValidation(w, r, errs)
		return nil, nil, false
	}

	return file, &multipartHeader{Filename: header.Filename, Size: header.Size}, true
}

type multipartHeader struct {
	Filename string
	Size     int64
}
