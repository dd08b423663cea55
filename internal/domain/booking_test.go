package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseBookingStatus_FoldsSpellings(t *testing.T) {
	cases := []struct {
		in   string
		want BookingStatus
	}{
		{"accept", StatusAccept},
		{"APPROVED", StatusAccept},
		{"confirmed", StatusAccept},
		{"reject", StatusReject},
		{"Rejected", StatusReject},
		{"cancelled", StatusReject},
		{"pending", StatusPending},
		{"", StatusPending},
		{"whatever", StatusPending},
		{"  accept  ", StatusAccept},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ParseBookingStatus(c.in), "input %q", c.in)
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusAccept))
	assert.True(t, CanTransition(StatusPending, StatusReject))
	assert.False(t, CanTransition(StatusPending, StatusPending))
	assert.False(t, CanTransition(StatusAccept, StatusReject))
	assert.False(t, CanTransition(StatusReject, StatusAccept))
	assert.False(t, CanTransition(StatusPending, BookingStatus("bogus")))
}

func TestActionsFor_OwnerOnlyResolvesPending(t *testing.T) {
	pending := Booking{Status: StatusPending}
	accepted := Booking{Status: StatusAccept}

	a := ActionsFor(pending, RoleOwner)
	assert.True(t, a.CanAccept)
	assert.True(t, a.CanReject)
	assert.False(t, a.CanPrintReceipt)

	a = ActionsFor(accepted, RoleOwner)
	assert.False(t, a.CanAccept)
	assert.False(t, a.CanReject)
	assert.Equal(t, "already_processed", a.Reason)
}

func TestActionsFor_SocietyReceiptOnlyWhenAccepted(t *testing.T) {
	a := ActionsFor(Booking{Status: StatusAccept}, RoleSociety)
	assert.True(t, a.CanPrintReceipt)

	a = ActionsFor(Booking{Status: StatusPending}, RoleSociety)
	assert.False(t, a.CanPrintReceipt)
	assert.Equal(t, "awaiting_confirmation", a.Reason)
}

func TestValidateBookingDates(t *testing.T) {
	today := time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC)

	errs := ValidateBookingDates("", "2026-09-01", today)
	assert.Equal(t, "Mohon isi tanggal mulai dan selesai!", errs["dates"])

	errs = ValidateBookingDates("2026-09-01", "", today)
	assert.Equal(t, "Mohon isi tanggal mulai dan selesai!", errs["dates"])

	errs = ValidateBookingDates("2026-09-10", "2026-09-01", today)
	assert.Equal(t, "Tanggal selesai harus setelah tanggal mulai!", errs["end_date"])

	errs = ValidateBookingDates("2026-09-01", "2026-09-01", today)
	assert.Equal(t, "Tanggal selesai harus setelah tanggal mulai!", errs["end_date"])

	errs = ValidateBookingDates("2026-08-01", "2026-09-01", today)
	assert.Contains(t, errs, "start_date")

	// Today itself is allowed; only strictly past dates fail.
	errs = ValidateBookingDates("2026-08-30", "2026-09-30", today)
	assert.Empty(t, errs)

	errs = ValidateBookingDates("2026-09-01", "2026-10-01", today)
	assert.Empty(t, errs)

	errs = ValidateBookingDates("01-09-2026", "2026-10-01", today)
	assert.Contains(t, errs, "start_date")
}
