package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKosFormValidate(t *testing.T) {
	form := KosForm{Name: "Kos Melati", Address: "Jl. Mawar", PricePerMonth: 500000}
	assert.Empty(t, form.Validate())

	form = KosForm{Name: "  ", Address: "Jl. Mawar", PricePerMonth: 500000}
	assert.Equal(t, "Nama kos wajib diisi", form.Validate()["name"])

	form = KosForm{Name: "Kos", Address: "", PricePerMonth: 500000}
	assert.Equal(t, "Alamat wajib diisi", form.Validate()["address"])

	form = KosForm{Name: "Kos", Address: "Jl.", PricePerMonth: 0}
	assert.Equal(t, "Harga harus lebih dari 0", form.Validate()["price_per_month"])

	form = KosForm{Name: "Kos", Address: "Jl.", PricePerMonth: -100}
	assert.Equal(t, "Harga harus lebih dari 0", form.Validate()["price_per_month"])
}

func TestFacilityFormValidate(t *testing.T) {
	assert.Empty(t, FacilityForm{Name: "WiFi"}.Validate())
	assert.Equal(t, "Nama fasilitas wajib diisi", FacilityForm{Name: " "}.Validate()["facility_name"])
}

func TestProfileFormValidate(t *testing.T) {
	assert.Empty(t, ProfileForm{Name: "Budi", Email: "b@x.id"}.Validate())
	assert.Equal(t, "Nama dan email wajib diisi!", ProfileForm{Name: "", Email: "b@x.id"}.Validate()["profile"])
	assert.Equal(t, "Nama dan email wajib diisi!", ProfileForm{Name: "Budi", Email: " "}.Validate()["profile"])
}

func TestReviewFormValidate(t *testing.T) {
	assert.Empty(t, ReviewForm{Comment: "Bagus"}.Validate())
	assert.Equal(t, "Mohon isi balasan Anda!", ReviewForm{Comment: "  "}.Validate()["comment"])
}

func TestRegisterFormValidate(t *testing.T) {
	form := RegisterForm{Name: "Budi", Email: "b@x.id", Password: "secret", Role: RoleSociety}
	assert.Empty(t, form.Validate())

	form.Role = "admin"
	assert.Equal(t, "Role tidak dikenal", form.Validate()["role"])

	errs := RegisterForm{}.Validate()
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestLoginFormValidate(t *testing.T) {
	assert.Empty(t, LoginForm{Email: "b@x.id", Password: "secret"}.Validate())
	assert.Equal(t, "Email dan password harus diisi!", LoginForm{Email: "b@x.id"}.Validate()["login"])
	assert.Equal(t, "Email dan password harus diisi!", LoginForm{Password: "x"}.Validate()["login"])
}

func TestValidateImageUpload(t *testing.T) {
	assert.Empty(t, ValidateImageUpload(1024, "image/jpeg"))
	assert.Empty(t, ValidateImageUpload(MaxImageSize, "image/png"))

	errs := ValidateImageUpload(MaxImageSize+1, "image/jpeg")
	assert.Equal(t, "Ukuran file terlalu besar! Maksimal 5MB", errs["file"])

	errs = ValidateImageUpload(1024, "application/pdf")
	assert.Equal(t, "File harus berupa gambar!", errs["file"])

	// Oversize wins over type; the client checks size first.
	errs = ValidateImageUpload(MaxImageSize+1, "application/pdf")
	assert.Equal(t, "Ukuran file terlalu besar! Maksimal 5MB", errs["file"])
}
