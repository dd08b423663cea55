package domain

// Canonical entity shapes. The upstream API spells field names
// inconsistently across endpoints (Indonesian vs English, id vs id_kos vs
// kos_id); normalization happens once, in this package, and the rest of the
// service only sees these structs.

type Kos struct {
	ID            int        `json:"id"`
	OwnerID       int        `json:"user_id"`
	Name          string     `json:"name"`
	Address       string     `json:"address"`
	PricePerMonth int        `json:"price_per_month"`
	Gender        string     `json:"gender"`
	Description   string     `json:"description"`
	CreatedAt     string     `json:"created_at,omitempty"`
	Images        []Image    `json:"kos_image"`
	Facilities    []Facility `json:"kos_facilities"`
}

type Facility struct {
	ID    int    `json:"id"`
	KosID int    `json:"kos_id"`
	Name  string `json:"facility_name"`
}

type Image struct {
	ID    int    `json:"id"`
	KosID int    `json:"kos_id"`
	File  string `json:"file"`
}

type Booking struct {
	ID        int           `json:"id"`
	KosID     int           `json:"kos_id"`
	UserID    int           `json:"user_id"`
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Status    BookingStatus `json:"status"`
	CreatedAt string        `json:"created_at,omitempty"`

	// Joined kos and tenant fields, flattened from whichever shape the
	// endpoint returned them in.
	KosName       string `json:"kos_name"`
	KosAddress    string `json:"kos_address"`
	PricePerMonth int    `json:"price_per_month"`
	Gender        string `json:"gender,omitempty"`
	UserName      string `json:"user_name"`
	UserEmail     string `json:"user_email,omitempty"`
}

type Review struct {
	ID        int    `json:"id"`
	KosID     int    `json:"kos_id"`
	UserID    int    `json:"user_id"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
	UserName  string `json:"user_name,omitempty"`
	UserEmail string `json:"user_email,omitempty"`
}

// Thread pairs a society review with the owner replies attached to it.
type Thread struct {
	Review
	Replies []Review `json:"replies"`
}

type Profile struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

const (
	RoleOwner   = "owner"
	RoleSociety = "society"
)
