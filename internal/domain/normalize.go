package domain

import (
	"encoding/json"
	"strconv"
)

// pick returns the first non-nil value among the candidate keys.
func pick(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// asInt coerces numbers, numeric strings and json.Number to int, defaulting
// missing or malformed values to 0.
func asInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return int(f)
		}
	}
	return 0
}

// asString coerces to string, defaulting to "".
func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	}
	return ""
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

// NormalizeKos maps a loose kos payload onto the canonical shape.
func NormalizeKos(m map[string]any) Kos {
	if m == nil {
		return Kos{Images: []Image{}, Facilities: []Facility{}}
	}

	k := Kos{
		ID:            asInt(pick(m, "id", "id_kos", "kos_id")),
		OwnerID:       asInt(pick(m, "user_id", "id_user", "owner_id")),
		Name:          asString(pick(m, "name", "nama_kos")),
		Address:       asString(pick(m, "address", "lokasi_kos")),
		PricePerMonth: asInt(pick(m, "price_per_month", "harga_kos", "price")),
		Gender:        asString(pick(m, "gender", "jenis_kelamin")),
		Description:   asString(pick(m, "description", "deskripsi_kos")),
		CreatedAt:     asString(m["created_at"]),
		Images:        []Image{},
		Facilities:    []Facility{},
	}

	for _, raw := range asSlice(pick(m, "kos_image", "images")) {
		k.Images = append(k.Images, NormalizeImage(asMap(raw)))
	}
	for _, raw := range asSlice(pick(m, "kos_facilities", "facilities")) {
		k.Facilities = append(k.Facilities, NormalizeFacility(asMap(raw)))
	}

	return k
}

func NormalizeKosList(items []any) []Kos {
	out := make([]Kos, 0, len(items))
	for _, raw := range items {
		out = append(out, NormalizeKos(asMap(raw)))
	}
	return out
}

func NormalizeFacility(m map[string]any) Facility {
	if m == nil {
		return Facility{}
	}
	return Facility{
		ID:    asInt(pick(m, "id", "id_fasilitas", "facility_id")),
		KosID: asInt(pick(m, "kos_id", "id_kos")),
		Name:  asString(pick(m, "facility_name", "nama_fasilitas", "name")),
	}
}

func NormalizeFacilityList(items []any) []Facility {
	out := make([]Facility, 0, len(items))
	for _, raw := range items {
		out = append(out, NormalizeFacility(asMap(raw)))
	}
	return out
}

func NormalizeImage(m map[string]any) Image {
	if m == nil {
		return Image{}
	}
	return Image{
		ID:    asInt(pick(m, "id", "id_image", "image_id")),
		KosID: asInt(pick(m, "kos_id", "id_kos")),
		File:  asString(pick(m, "file", "image_url", "url")),
	}
}

func NormalizeImageList(items []any) []Image {
	out := make([]Image, 0, len(items))
	for _, raw := range items {
		out = append(out, NormalizeImage(asMap(raw)))
	}
	return out
}

// NormalizeBooking flattens a booking payload, including joined kos and user
// records when present. The booking id is resolved with the priority
// id_booking > booking_id > id.
func NormalizeBooking(m map[string]any) Booking {
	if m == nil {
		return Booking{Status: StatusPending}
	}

	b := Booking{
		ID:        asInt(pick(m, "id_booking", "booking_id", "id")),
		KosID:     asInt(pick(m, "kos_id", "id_kos")),
		UserID:    asInt(pick(m, "user_id", "id_user")),
		StartDate: asString(m["start_date"]),
		EndDate:   asString(m["end_date"]),
		Status:    ParseBookingStatus(asString(m["status"])),
		CreatedAt: asString(m["created_at"]),
	}

	kos := asMap(m["kos"])
	b.KosName = asString(pick(m, "name", "nama_kos"))
	if b.KosName == "" && kos != nil {
		b.KosName = asString(pick(kos, "name", "nama_kos"))
	}
	b.KosAddress = asString(pick(m, "address", "lokasi_kos"))
	if b.KosAddress == "" && kos != nil {
		b.KosAddress = asString(pick(kos, "address", "lokasi_kos"))
	}
	b.PricePerMonth = asInt(pick(m, "price_per_month", "harga_kos"))
	if b.PricePerMonth == 0 && kos != nil {
		b.PricePerMonth = asInt(pick(kos, "price_per_month", "harga_kos"))
	}
	b.Gender = asString(m["gender"])
	if b.Gender == "" && kos != nil {
		b.Gender = asString(kos["gender"])
	}

	if user := asMap(m["user"]); user != nil {
		b.UserName = asString(user["name"])
		b.UserEmail = asString(user["email"])
	}

	return b
}

// NormalizeBookingList normalizes and deduplicates: the upstream join can
// repeat one booking under different id spellings, so rows sharing a
// resolved id collapse to the first occurrence.
func NormalizeBookingList(items []any) []Booking {
	out := make([]Booking, 0, len(items))
	seen := make(map[int]bool, len(items))
	for _, raw := range items {
		b := NormalizeBooking(asMap(raw))
		if seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		out = append(out, b)
	}
	return out
}

func NormalizeReview(m map[string]any) Review {
	if m == nil {
		return Review{}
	}
	r := Review{
		ID:        asInt(pick(m, "id", "id_review", "review_id")),
		KosID:     asInt(pick(m, "kos_id", "id_kos")),
		UserID:    asInt(pick(m, "user_id", "id_user")),
		Comment:   asString(pick(m, "comment", "komentar")),
		CreatedAt: asString(m["created_at"]),
	}
	if user := asMap(m["user"]); user != nil {
		r.UserName = asString(user["name"])
		r.UserEmail = asString(user["email"])
	}
	return r
}

func NormalizeReviewList(items []any) []Review {
	out := make([]Review, 0, len(items))
	for _, raw := range items {
		out = append(out, NormalizeReview(asMap(raw)))
	}
	return out
}

func NormalizeProfile(m map[string]any) Profile {
	if m == nil {
		return Profile{}
	}
	return Profile{
		ID:    asInt(pick(m, "id", "id_user", "user_id")),
		Name:  asString(pick(m, "name", "nama")),
		Email: asString(m["email"]),
		Phone: asString(pick(m, "phone", "no_hp")),
		Role:  asString(m["role"]),
	}
}
