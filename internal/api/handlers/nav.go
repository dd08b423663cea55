package handlers

import (
	"net/http"

	"github.com/rumahkos/kos-bff/internal/domain"
	"github.com/rumahkos/kos-bff/middleware"
)

type navItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

var ownerNav = []navItem{
	{Label: "Dashboard", Path: "/owner/dashboard"},
	{Label: "Kos Saya", Path: "/owner/kos"},
	{Label: "Booking", Path: "/owner/kos/booking"},
	{Label: "Review", Path: "/owner/kos/review"},
	{Label: "Gambar Kos", Path: "/owner/kos/image"},
	{Label: "Profil", Path: "/owner/profile"},
}

var societyNav = []navItem{
	{Label: "Dashboard", Path: "/society"},
	{Label: "Cari Kos", Path: "/society/search"},
	{Label: "Booking Saya", Path: "/society/booking"},
	{Label: "Review Saya", Path: "/society/review"},
	{Label: "Favorit", Path: "/society/favorite"},
	{Label: "Profile", Path: "/society/profile"},
}

// Nav returns the sidebar items for the caller's role.
func Nav(w http.ResponseWriter, r *http.Request) {
	items := societyNav
	if middleware.GetRole(r.Context()) == domain.RoleOwner {
		items = ownerNav
	}
	sendJSON(w, http.StatusOK, map[string]any{"data": items})
}
