package handlers

import (
	"context"
	"net/http"
	"sort"
	"sync"

	"github.com/rumahkos/kos-bff/internal/domain"
	"github.com/rumahkos/kos-bff/internal/logger"
	"github.com/rumahkos/kos-bff/middleware"
)

type ReviewClient interface {
	ListOwnerKos(ctx context.Context, token string) ([]domain.Kos, error)
	KosReviews(ctx context.Context, token string, kosID int) (int, []domain.Review, error)
	CreateReview(ctx context.Context, token string, kosID int, comment string, rating int) error
	DeleteReview(ctx context.Context, token string, reviewID int) error
}

type ReviewHandler struct {
	client ReviewClient
}

func NewReviewHandler(client ReviewClient) *ReviewHandler {
	return &ReviewHandler{client: client}
}

type kosReviews struct {
	KosID   int             `json:"kos_id"`
	KosName string          `json:"kos_name"`
	Threads []domain.Thread `json:"threads"`
}

// ListOwner aggregates review threads across every kos the owner manages.
// Per-kos fetches run concurrently; a failing kos degrades to an empty
// thread list rather than failing the whole page.
func (h *ReviewHandler) ListOwner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := middleware.GetToken(ctx)

	respondList(w, r, "Gagal mengambil data review.", func() ([]kosReviews, error) {
		kosList, err := h.client.ListOwnerKos(ctx, token)
		if err != nil {
			return nil, err
		}

		results := make([]kosReviews, len(kosList))
		var wg sync.WaitGroup
		for i, kos := range kosList {
			wg.Add(1)
			go func(i int, kos domain.Kos) {
				defer wg.Done()
				entry := kosReviews{KosID: kos.ID, KosName: kos.Name, Threads: []domain.Thread{}}
				ownerID, reviews, err := h.client.KosReviews(ctx, token, kos.ID)
				if err != nil {
					logger.Ctx(ctx).Warn().Err(err).Int("kos_id", kos.ID).Msg("reviews fetch failed")
					results[i] = entry
					return
				}
				entry.Threads = domain.ThreadReviews(ownerID, reviews)
				results[i] = entry
			}(i, kos)
		}
		wg.Wait()

		sort.SliceStable(results, func(a, b int) bool { return results[a].KosID < results[b].KosID })
		return results, nil
	})
}

func (h *ReviewHandler) ListForKos(w http.ResponseWriter, r *http.Request) {
	kosID, ok := urlID(r, "kosID")
	if !ok {
		sendError(w, r, "validation_failed", "invalid kos id", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	token := middleware.GetToken(ctx)

	respondList(w, r, "Gagal mengambil data review.", func() ([]domain.Thread, error) {
		ownerID, reviews, err := h.client.KosReviews(ctx, token, kosID)
		if err != nil {
			return nil, err
		}
		return domain.ThreadReviews(ownerID, reviews), nil
	})
}

type reviewRequest struct {
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

// Reply posts an owner reply onto a kos review thread.
func (h *ReviewHandler) Reply(w http.ResponseWriter, r *http.Request) {
	kosID, ok := urlID(r, "kosID")
	if !ok {
		sendError(w, r, "validation_failed", "invalid kos id", http.StatusBadRequest)
		return
	}
	var req reviewRequest
	if !decodeBody(w, r, &req) {
		return
	}
	form := domain.ReviewForm{Comment: req.Comment}
	if errs := form.Validate(); len(errs) > 0 {
		sendValidation(w, r, errs)
		return
	}

	ctx := r.Context()
	if err := h.client.CreateReview(ctx, middleware.GetToken(ctx), kosID, req.Comment, 0); err != nil {
		handleUpstreamError(w, r, err, "Gagal mengirim balasan: Silakan coba lagi.")
		return
	}
	sendJSON(w, http.StatusCreated, map[string]any{"message": "Balasan berhasil dikirim!"})
}

// Create posts a society review for a kos.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	kosID, ok := urlID(r, "kosID")
	if !ok {
		sendError(w, r, "validation_failed", "invalid kos id", http.StatusBadRequest)
		return
	}
	var req reviewRequest
	if !decodeBody(w, r, &req) {
		return
	}
	form := domain.ReviewForm{Comment: req.Comment}
	if errs := form.Validate(); len(errs) > 0 {
		sendValidation(w, r, errs)
		return
	}

	ctx := r.Context()
	if err := h.client.CreateReview(ctx, middleware.GetToken(ctx), kosID, req.Comment, req.Rating); err != nil {
		handleUpstreamError(w, r, err, "Gagal mengirim review: Silakan coba lagi.")
		return
	}
	sendJSON(w, http.StatusCreated, map[string]any{"message": "Review berhasil dikirim!"})
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid review id", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	if err := h.client.DeleteReview(ctx, middleware.GetToken(ctx), id); err != nil {
		handleUpstreamError(w, r, err, "Gagal menghapus review: Silakan coba lagi.")
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{"message": "Review berhasil dihapus!"})
}
