package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rumahkos/kos-bff/internal/domain"
)

func TestKosClient_SendsTenantAndBearerHeaders(t *testing.T) {
	var gotMaker, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMaker = r.Header.Get("MakerID")
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer srv.Close()

	client := NewKosClient(srv.URL, "1")
	_, err := client.ListOwnerKos(context.Background(), "tok123")

	assert.NoError(t, err)
	assert.Equal(t, "1", gotMaker)
	assert.Equal(t, "Bearer tok123", gotAuth)
}

func TestKosClient_AnonymousRoutesOmitBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"message": "ok"})
	}))
	defer srv.Close()

	client := NewKosClient(srv.URL, "1")
	_, err := client.Register(context.Background(), domain.RegisterForm{
		Name: "Budi", Email: "b@x.id", Password: "secret", Role: domain.RoleSociety,
	})

	assert.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestKosClient_ListOwnerKos_UnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/show_kos", r.URL.Path)
		io.WriteString(w, `{"data": [{"id_kos": 1, "nama_kos": "Kos Melati"}]}`)
	}))
	defer srv.Close()

	client := NewKosClient(srv.URL, "1")
	kos, err := client.ListOwnerKos(context.Background(), "tok")

	assert.NoError(t, err)
	assert.Len(t, kos, 1)
	assert.Equal(t, "Kos Melati", kos[0].Name)
}

// Bodies far larger than the socket buffer must still decode; the wrapper
// reads them before the per-request timeout context is cancelled.
func TestKosClient_ListOwnerKos_LargeBody(t *testing.T) {
	const n = 20000
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		items := make([]map[string]any, n)
		for i := range items {
			items[i] = map[string]any{
				"id":              i + 1,
				"name":            "Kos Mawar",
				"address":         "Jl. Melati No. 1",
				"price_per_month": 750000,
			}
		}
		json.NewEncoder(w).Encode(map[string]any{"data": items})
	}))
	defer srv.Close()

	client := NewKosClient(srv.URL, "1")
	kos, err := client.ListOwnerKos(context.Background(), "tok")

	assert.NoError(t, err)
	assert.Len(t, kos, n)
	assert.Equal(t, n, kos[n-1].ID)
}

func TestKosClient_ListOwnerKos_BareArrayBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id": 2, "name": "Kos Anggrek"}]`)
	}))
	defer srv.Close()

	client := NewKosClient(srv.URL, "1")
	kos, err := client.ListOwnerKos(context.Background(), "tok")

	assert.NoError(t, err)
	assert.Len(t, kos, 1)
	assert.Equal(t, 2, kos[0].ID)
}

func TestKosClient_Login_FindsTokenAcrossShapes(t *testing.T) {
	cases := []string{
		`{"token": "t1", "user": {"id": 3, "name": "Budi", "role": "owner"}}`,
		`{"access_token": "t1", "user": {"id": 3, "name": "Budi", "role": "owner"}}`,
		`{"data": {"token": "t1", "user": {"id": 3, "name": "Budi", "role": "owner"}}}`,
	}
	for _, body := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, body)
		}))

		client := NewKosClient(srv.URL, "1")
		token, profile, err := client.Login(context.Background(), domain.LoginForm{Email: "b@x.id", Password: "p"})
		srv.Close()

		assert.NoError(t, err, "body %s", body)
		assert.Equal(t, "t1", token)
		assert.Equal(t, 3, profile.ID)
		assert.Equal(t, domain.RoleOwner, profile.Role)
	}
}

func TestKosClient_Login_MissingTokenFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"message": "ok but no token"}`)
	}))
	defer srv.Close()

	client := NewKosClient(srv.URL, "1")
	_, _, err := client.Login(context.Background(), domain.LoginForm{Email: "b@x.id", Password: "p"})

	var se *StatusError
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
}

func TestKosClient_UnauthorizedMapsToSentinel(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			io.WriteString(w, `{"message": "Unauthenticated."}`)
		}))

		client := NewKosClient(srv.URL, "1")
		_, err := client.ListOwnerKos(context.Background(), "expired")
		srv.Close()

		assert.ErrorIs(t, err, ErrUnauthorized, "status %d", status)
	}
}

func TestKosClient_NotFoundMapsToSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewKosClient(srv.URL, "1")
	_, err := client.GetOwnerKos(context.Background(), "tok", 99)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKosClient_ErrorMessageExtraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"message": {"name": ["The name field is required."]}}`)
	}))
	defer srv.Close()

	client := NewKosClient(srv.URL, "1")
	err := client.CreateKos(context.Background(), "tok", 1, domain.KosForm{})

	var se *StatusError
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnprocessableEntity, se.StatusCode)
	assert.Contains(t, se.Message, "The name field is required.")
}

func TestKosClient_CreateKos_PayloadShape(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/store_kos", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewKosClient(srv.URL, "1")
	err := client.CreateKos(context.Background(), "tok", 7, domain.KosForm{
		Name: "Kos Melati", Address: "Jl. Mawar", PricePerMonth: 500000, Gender: "putra",
	})

	assert.NoError(t, err)
	assert.Equal(t, float64(7), got["user_id"])
	assert.Equal(t, "Kos Melati", got["name"])
	assert.Equal(t, float64(500000), got["price_per_month"])
}

func TestKosClient_OwnerBookings_QueryFilters(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/show_bookings", r.URL.Path)
		gotQuery = r.URL.RawQuery
		io.WriteString(w, `{"data": []}`)
	}))
	defer srv.Close()

	client := NewKosClient(srv.URL, "1")

	_, err := client.OwnerBookings(context.Background(), "tok", "pending", "2026-09-01")
	assert.NoError(t, err)
	assert.Contains(t, gotQuery, "status=pending")
	assert.Contains(t, gotQuery, "tgl=2026-09-01")

	// "all" means no status filter at the upstream.
	_, err = client.OwnerBookings(context.Background(), "tok", "all", "")
	assert.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestKosClient_UpdateBookingStatus(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/admin/update_status_booking/4", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	client := NewKosClient(srv.URL, "1")
	err := client.UpdateBookingStatus(context.Background(), "tok", 4, domain.StatusAccept)

	assert.NoError(t, err)
	assert.Equal(t, "accept", got["status"])
}

func TestKosClient_UploadImage_MultipartFileField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/store_image/3", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		assert.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "kamar.jpg", header.Filename)
		content, _ := io.ReadAll(file)
		assert.Equal(t, "fake-image-bytes", string(content))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewKosClient(srv.URL, "1")
	err := client.UploadImage(context.Background(), "tok", 3, "kamar.jpg", strings.NewReader("fake-image-bytes"))

	assert.NoError(t, err)
}

func TestKosClient_KosReviews_ReadsReviewsKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/show_reviews/5", r.URL.Path)
		io.WriteString(w, `{"data": {"id": 5, "user_id": 3, "reviews": [{"id": 1, "comment": "Bagus", "user_id": 101}]}}`)
	}))
	defer srv.Close()

	client := NewKosClient(srv.URL, "1")
	ownerID, reviews, err := client.KosReviews(context.Background(), "tok", 5)

	assert.NoError(t, err)
	assert.Equal(t, 3, ownerID)
	assert.Len(t, reviews, 1)
	assert.Equal(t, "Bagus", reviews[0].Comment)
}

func TestKosClient_UpdateProfile_RoleSpecificPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		io.WriteString(w, `{"data": {"id": 3, "name": "Budi"}}`)
	}))
	defer srv.Close()

	client := NewKosClient(srv.URL, "1")
	form := domain.ProfileForm{Name: "Budi", Email: "b@x.id"}

	_, err := client.UpdateProfile(context.Background(), "tok", domain.RoleOwner, form)
	assert.NoError(t, err)
	assert.Equal(t, "/admin/update_profile", gotPath)

	_, err = client.UpdateProfile(context.Background(), "tok", domain.RoleSociety, form)
	assert.NoError(t, err)
	assert.Equal(t, "/society/update_profile", gotPath)
}

func TestKosClient_EmptyBodyIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewKosClient(srv.URL, "1")
	assert.NoError(t, client.DeleteKos(context.Background(), "tok", 1))
}

func TestKosClient_ConnectionRefusedMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewKosClient(srv.URL, "1")
	_, err := client.ListOwnerKos(context.Background(), "tok")

	assert.ErrorIs(t, err, ErrUnavailable)
}
