package domain

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	StatusPending BookingStatus = "pending"
	StatusAccept  BookingStatus = "accept"
	StatusReject  BookingStatus = "reject"
)

// ParseBookingStatus folds the spellings seen in upstream responses onto the
// three canonical states. Anything unrecognized counts as pending, matching
// how the UI badges render.
func ParseBookingStatus(s string) BookingStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accept", "approved", "confirmed":
		return StatusAccept
	case "reject", "rejected", "cancelled":
		return StatusReject
	default:
		return StatusPending
	}
}

// BookingActions describes which actions the UI may offer on one booking row.
type BookingActions struct {
	CanAccept       bool   `json:"can_accept"`
	CanReject       bool   `json:"can_reject"`
	CanPrintReceipt bool   `json:"can_print_receipt"`
	Reason          string `json:"reason,omitempty"`
}

// ActionsFor computes the per-row policy. Owners may only resolve pending
// bookings; tenants may only print a receipt once the booking was accepted.
func ActionsFor(b Booking, role string) BookingActions {
	switch role {
	case RoleOwner:
		if b.Status == StatusPending {
			return BookingActions{CanAccept: true, CanReject: true}
		}
		return BookingActions{Reason: "already_processed"}
	case RoleSociety:
		if b.Status == StatusAccept {
			return BookingActions{CanPrintReceipt: true}
		}
		return BookingActions{Reason: "awaiting_confirmation"}
	default:
		return BookingActions{Reason: "auth_required"}
	}
}

// CanTransition reports whether an owner status update is legal. Only
// pending bookings move, and only to accept or reject.
func CanTransition(from, to BookingStatus) bool {
	if from != StatusPending {
		return false
	}
	return to == StatusAccept || to == StatusReject
}

const dateLayout = "2006-01-02"

// ValidateBookingDates enforces the booking-modal rules: both dates present,
// start strictly before end, and start not in the past relative to today.
func ValidateBookingDates(startDate, endDate string, today time.Time) map[string]string {
	errs := map[string]string{}

	if startDate == "" || endDate == "" {
		errs["dates"] = "Mohon isi tanggal mulai dan selesai!"
		return errs
	}

	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		errs["start_date"] = "Format tanggal tidak valid"
		return errs
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		errs["end_date"] = "Format tanggal tidak valid"
		return errs
	}

	if !start.Before(end) {
		errs["end_date"] = "Tanggal selesai harus setelah tanggal mulai!"
	}

	floor := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if start.Before(floor) {
		errs["start_date"] = "Tanggal mulai tidak boleh di masa lalu"
	}

	return errs
}
