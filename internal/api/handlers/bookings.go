package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rumahkos/kos-bff/internal/domain"
	"github.com/rumahkos/kos-bff/internal/view"
	"github.com/rumahkos/kos-bff/middleware"
)

type BookingClient interface {
	OwnerBookings(ctx context.Context, token, status, date string) ([]domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, token string, id int, status domain.BookingStatus) error
	SocietyBookings(ctx context.Context, token, status string) ([]domain.Booking, error)
	CreateBooking(ctx context.Context, token string, kosID int, startDate, endDate string) error
	Receipt(ctx context.Context, token string, bookingID int) (domain.Booking, error)
}

type BookingHandler struct {
	client   BookingClient
	updating *view.InFlight
	now      func() time.Time
}

func NewBookingHandler(client BookingClient) *BookingHandler {
	return &BookingHandler{
		client:   client,
		updating: view.NewInFlight(),
		now:      time.Now,
	}
}

// ListOwner serves the owner booking table. Each row carries its action
// policy and whether a status update for it is already in flight.
func (h *BookingHandler) ListOwner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := middleware.GetToken(ctx)
	status := r.URL.Query().Get("status")
	date := r.URL.Query().Get("tgl")

	h.respondOwnerList(w, r, token, status, date)
}

type bookingRow struct {
	domain.Booking
	Actions  domain.BookingActions `json:"actions"`
	Updating bool                  `json:"updating"`
}

func (h *BookingHandler) respondOwnerList(w http.ResponseWriter, r *http.Request, token, status, date string) {
	respondList(w, r, "Gagal mengambil data booking.", func() ([]bookingRow, error) {
		bookings, err := h.client.OwnerBookings(r.Context(), token, status, date)
		if err != nil {
			return nil, err
		}
		rows := make([]bookingRow, 0, len(bookings))
		for _, b := range bookings {
			rows = append(rows, bookingRow{
				Booking:  b,
				Actions:  domain.ActionsFor(b, domain.RoleOwner),
				Updating: h.updating.Active(b.ID),
			})
		}
		return rows, nil
	})
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

// UpdateStatus performs the pending → accept|reject transition. The acting
// row is held in the in-flight set for the duration, and the response
// carries the re-fetched list under the caller's current filters.
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid booking id", http.StatusBadRequest)
		return
	}

	var req statusUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	newStatus := domain.BookingStatus(req.Status)
	if !domain.CanTransition(domain.StatusPending, newStatus) {
		sendError(w, r, "validation_failed", "status harus accept atau reject", http.StatusBadRequest)
		return
	}

	if !h.updating.Begin(id) {
		sendError(w, r, "conflict_state", "booking sedang diproses", http.StatusConflict)
		return
	}
	defer h.updating.End(id)

	ctx := r.Context()
	token := middleware.GetToken(ctx)
	if err := h.client.UpdateBookingStatus(ctx, token, id, newStatus); err != nil {
		handleUpstreamError(w, r, err, "Gagal update status: Silakan coba lagi.")
		return
	}

	// Re-fetch with whatever filters the page currently shows.
	h.respondOwnerList(w, r, token, r.URL.Query().Get("status"), r.URL.Query().Get("tgl"))
}

func (h *BookingHandler) ListSociety(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := middleware.GetToken(ctx)
	status := r.URL.Query().Get("status")

	respondList(w, r, "Gagal mengambil data booking.", func() ([]bookingRow, error) {
		bookings, err := h.client.SocietyBookings(ctx, token, status)
		if err != nil {
			return nil, err
		}
		rows := make([]bookingRow, 0, len(bookings))
		for _, b := range bookings {
			rows = append(rows, bookingRow{
				Booking: b,
				Actions: domain.ActionsFor(b, domain.RoleSociety),
			})
		}
		return rows, nil
	})
}

type createBookingRequest struct {
	KosID     int    `json:"kos_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Create posts a booking request after the date rules pass; invalid dates
// never reach the upstream.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.KosID <= 0 {
		sendError(w, r, "validation_failed", "invalid kos id", http.StatusBadRequest)
		return
	}
	if errs := domain.ValidateBookingDates(req.StartDate, req.EndDate, h.now()); len(errs) > 0 {
		sendValidation(w, r, errs)
		return
	}

	ctx := r.Context()
	if err := h.client.CreateBooking(ctx, middleware.GetToken(ctx), req.KosID, req.StartDate, req.EndDate); err != nil {
		handleUpstreamError(w, r, err, "Gagal melakukan booking: Silakan coba lagi.")
		return
	}

	sendJSON(w, http.StatusCreated, map[string]any{
		"message":  "Booking berhasil! Menunggu konfirmasi dari pemilik kos.",
		"redirect": "/society/booking",
	})
}

// Receipt renders the printable booking receipt. Only accepted bookings
// have one.
func (h *BookingHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid booking id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	booking, err := h.client.Receipt(ctx, middleware.GetToken(ctx), id)
	if err != nil {
		handleUpstreamError(w, r, err, "Gagal mencetak nota: Silakan coba lagi.")
		return
	}

	if !domain.ActionsFor(booking, domain.RoleSociety).CanPrintReceipt {
		sendError(w, r, "conflict_state", "Nota hanya tersedia untuk booking yang diterima", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := receiptTmpl.Execute(w, booking); err != nil {
		sendError(w, r, "internal_error", "Gagal mencetak nota", http.StatusInternalServerError)
	}
}
