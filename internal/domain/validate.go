package domain

import "strings"

// Form validation mirrors the client-side checks: required fields and
// positive numbers only, producing a field→message map. An empty map means
// the submit may proceed; a non-empty map must block the upstream call.

const MaxImageSize = 5 * 1024 * 1024

type KosForm struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	PricePerMonth int    `json:"price_per_month"`
	Gender        string `json:"gender"`
	Description   string `json:"description,omitempty"`
}

func (f KosForm) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Nama kos wajib diisi"
	}
	if strings.TrimSpace(f.Address) == "" {
		errs["address"] = "Alamat wajib diisi"
	}
	if f.PricePerMonth <= 0 {
		errs["price_per_month"] = "Harga harus lebih dari 0"
	}
	return errs
}

type FacilityForm struct {
	Name string `json:"facility_name"`
}

func (f FacilityForm) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(f.Name) == "" {
		errs["facility_name"] = "Nama fasilitas wajib diisi"
	}
	return errs
}

type ProfileForm struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (f ProfileForm) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Email) == "" {
		errs["profile"] = "Nama dan email wajib diisi!"
	}
	return errs
}

type ReviewForm struct {
	Comment string `json:"comment"`
}

func (f ReviewForm) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(f.Comment) == "" {
		errs["comment"] = "Mohon isi balasan Anda!"
	}
	return errs
}

// ValidateImageUpload applies the client-side upload gate: a 5MB ceiling and
// an image/* MIME prefix.
func ValidateImageUpload(size int64, contentType string) map[string]string {
	errs := map[string]string{}
	if size > MaxImageSize {
		errs["file"] = "Ukuran file terlalu besar! Maksimal 5MB"
		return errs
	}
	if !strings.HasPrefix(contentType, "image/") {
		errs["file"] = "File harus berupa gambar!"
	}
	return errs
}

type RegisterForm struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

func (f RegisterForm) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Nama wajib diisi"
	}
	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "Email wajib diisi"
	}
	if f.Password == "" {
		errs["password"] = "Password wajib diisi"
	}
	if f.Role != RoleOwner && f.Role != RoleSociety {
		errs["role"] = "Role tidak dikenal"
	}
	return errs
}

type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f LoginForm) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(f.Email) == "" || f.Password == "" {
		errs["login"] = "Email dan password harus diisi!"
	}
	return errs
}
