package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	assert.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func decodeList(t *testing.T, raw string) []any {
	t.Helper()
	var s []any
	assert.NoError(t, json.Unmarshal([]byte(raw), &s))
	return s
}

func TestNormalizeKos_LegacyFieldNames(t *testing.T) {
	m := decode(t, `{
		"id_kos": "7",
		"nama_kos": "Kos Melati",
		"lokasi_kos": "Jl. Mawar 12",
		"harga_kos": "750000",
		"user_id": 3
	}`)

	k := NormalizeKos(m)

	assert.Equal(t, 7, k.ID)
	assert.Equal(t, 3, k.OwnerID)
	assert.Equal(t, "Kos Melati", k.Name)
	assert.Equal(t, "Jl. Mawar 12", k.Address)
	assert.Equal(t, 750000, k.PricePerMonth)
}

func TestNormalizeKos_ModernFieldsWinOverLegacy(t *testing.T) {
	m := decode(t, `{
		"id": 1,
		"id_kos": 99,
		"name": "Kos Anggrek",
		"nama_kos": "stale",
		"price_per_month": 500000,
		"harga_kos": 1
	}`)

	k := NormalizeKos(m)

	assert.Equal(t, 1, k.ID)
	assert.Equal(t, "Kos Anggrek", k.Name)
	assert.Equal(t, 500000, k.PricePerMonth)
}

func TestNormalizeKos_NestedImagesAndFacilities(t *testing.T) {
	m := decode(t, `{
		"id": 2,
		"name": "Kos Dahlia",
		"kos_image": [{"id": 10, "file": "a.jpg"}, {"id": 11, "image_url": "b.jpg"}],
		"kos_facilities": [{"id": 5, "nama_fasilitas": "WiFi"}]
	}`)

	k := NormalizeKos(m)

	assert.Len(t, k.Images, 2)
	assert.Equal(t, "a.jpg", k.Images[0].File)
	assert.Equal(t, "b.jpg", k.Images[1].File)
	assert.Len(t, k.Facilities, 1)
	assert.Equal(t, "WiFi", k.Facilities[0].Name)
}

func TestNormalizeKos_MissingFieldsDefaultToZero(t *testing.T) {
	k := NormalizeKos(map[string]any{})

	assert.Equal(t, 0, k.ID)
	assert.Equal(t, "", k.Name)
	assert.Equal(t, 0, k.PricePerMonth)
	assert.NotNil(t, k.Images)
	assert.NotNil(t, k.Facilities)
}

func TestNormalizeKos_NilMap(t *testing.T) {
	k := NormalizeKos(nil)
	assert.NotNil(t, k.Images)
	assert.NotNil(t, k.Facilities)
}

func TestAsInt_Coercions(t *testing.T) {
	cases := []struct {
		in   any
		want int
	}{
		{float64(42), 42},
		{"42", 42},
		{"750000.0", 750000},
		{"abc", 0},
		{nil, 0},
		{json.Number("13"), 13},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, asInt(c.in), "input %v", c.in)
	}
}

func TestNormalizeBooking_IDPriority(t *testing.T) {
	m := decode(t, `{"id": 1, "booking_id": 2, "id_booking": 3}`)
	assert.Equal(t, 3, NormalizeBooking(m).ID)

	m = decode(t, `{"id": 1, "booking_id": 2}`)
	assert.Equal(t, 2, NormalizeBooking(m).ID)

	m = decode(t, `{"id": 1}`)
	assert.Equal(t, 1, NormalizeBooking(m).ID)
}

func TestNormalizeBooking_JoinedKosAndUser(t *testing.T) {
	m := decode(t, `{
		"id_booking": 4,
		"status": "APPROVED",
		"start_date": "2026-09-01",
		"end_date": "2026-10-01",
		"kos": {"nama_kos": "Kos Melati", "lokasi_kos": "Jl. Mawar", "harga_kos": 600000, "gender": "putri"},
		"user": {"name": "Siti", "email": "siti@example.com"}
	}`)

	b := NormalizeBooking(m)

	assert.Equal(t, 4, b.ID)
	assert.Equal(t, StatusAccept, b.Status)
	assert.Equal(t, "Kos Melati", b.KosName)
	assert.Equal(t, "Jl. Mawar", b.KosAddress)
	assert.Equal(t, 600000, b.PricePerMonth)
	assert.Equal(t, "putri", b.Gender)
	assert.Equal(t, "Siti", b.UserName)
	assert.Equal(t, "siti@example.com", b.UserEmail)
}

func TestNormalizeBooking_TopLevelFieldsWinOverJoin(t *testing.T) {
	m := decode(t, `{
		"id": 5,
		"nama_kos": "Top",
		"kos": {"nama_kos": "Nested"}
	}`)
	assert.Equal(t, "Top", NormalizeBooking(m).KosName)
}

func TestNormalizeBookingList_DedupesByResolvedID(t *testing.T) {
	items := decodeList(t, `[
		{"id_booking": 1, "status": "pending"},
		{"booking_id": 1, "status": "accept"},
		{"id": 2}
	]`)

	out := NormalizeBookingList(items)

	assert.Len(t, out, 2)
	assert.Equal(t, 1, out[0].ID)
	assert.Equal(t, StatusPending, out[0].Status, "first occurrence wins")
	assert.Equal(t, 2, out[1].ID)
}

func TestNormalizeReview_UserAttribution(t *testing.T) {
	m := decode(t, `{
		"id_review": 8,
		"komentar": "Bagus",
		"user_id": "12",
		"user": {"name": "Andi", "email": "andi@example.com"}
	}`)

	r := NormalizeReview(m)

	assert.Equal(t, 8, r.ID)
	assert.Equal(t, "Bagus", r.Comment)
	assert.Equal(t, 12, r.UserID)
	assert.Equal(t, "Andi", r.UserName)
}

func TestNormalizeProfile(t *testing.T) {
	m := decode(t, `{"id_user": 3, "nama": "Budi", "email": "b@x.id", "no_hp": "0812", "role": "owner"}`)

	p := NormalizeProfile(m)

	assert.Equal(t, 3, p.ID)
	assert.Equal(t, "Budi", p.Name)
	assert.Equal(t, "0812", p.Phone)
	assert.Equal(t, RoleOwner, p.Role)
}

func TestNormalizeFacility_NameFallbacks(t *testing.T) {
	assert.Equal(t, "AC", NormalizeFacility(decode(t, `{"facility_name": "AC", "name": "x"}`)).Name)
	assert.Equal(t, "Kamar Mandi", NormalizeFacility(decode(t, `{"nama_fasilitas": "Kamar Mandi"}`)).Name)
	assert.Equal(t, "Dapur", NormalizeFacility(decode(t, `{"name": "Dapur"}`)).Name)
}
