package session

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rumahkos/kos-bff/internal/domain"
)

func TestStore_SetWritesBrowserReadableCookie(t *testing.T) {
	store := &Store{}
	rec := httptest.NewRecorder()

	store.Set(rec, CookieToken, "abc123")

	cookies := rec.Result().Cookies()
	assert.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, CookieToken, c.Name)
	assert.Equal(t, "abc123", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 86400, c.MaxAge)
	assert.False(t, c.HttpOnly, "the UI reads credentials from document.cookie")
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.False(t, c.Secure)
}

func TestStore_SecureFlagFollowsConfig(t *testing.T) {
	store := &Store{Secure: true, Domain: "kos.example.com"}
	rec := httptest.NewRecorder()

	store.Set(rec, CookieToken, "abc")

	c := rec.Result().Cookies()[0]
	assert.True(t, c.Secure)
	assert.Equal(t, "kos.example.com", c.Domain)
}

func TestStore_GetMissingCookie(t *testing.T) {
	store := &Store{}
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := store.Get(r, CookieToken)
	assert.False(t, ok)
}

func TestStore_GetEmptyValueCountsAsMissing(t *testing.T) {
	store := &Store{}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieToken, Value: ""})

	_, ok := store.Get(r, CookieToken)
	assert.False(t, ok)
}

func TestStore_UserRoundTrip(t *testing.T) {
	store := &Store{}
	rec := httptest.NewRecorder()
	profile := domain.Profile{ID: 3, Name: "Budi Santoso", Email: "budi@example.com", Role: domain.RoleOwner}

	store.SetUser(rec, profile)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}

	assert.Equal(t, profile, store.User(r))
}

func TestStore_UserCorruptJSONYieldsZeroProfile(t *testing.T) {
	store := &Store{}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieUser, Value: url.QueryEscape(`{"id": broken`)})

	assert.Equal(t, domain.Profile{}, store.User(r))
}

func TestStore_UserBadEncodingYieldsZeroProfile(t *testing.T) {
	store := &Store{}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieUser, Value: "%zz"})

	assert.Equal(t, domain.Profile{}, store.User(r))
}

func TestStore_ClearExpiresAllCredentialCookies(t *testing.T) {
	store := &Store{}
	rec := httptest.NewRecorder()

	store.Clear(rec)

	cookies := rec.Result().Cookies()
	assert.Len(t, cookies, 4)
	names := map[string]bool{}
	for _, c := range cookies {
		names[c.Name] = true
		assert.Equal(t, -1, c.MaxAge, "cookie %s must expire", c.Name)
	}
	for _, want := range []string{CookieToken, CookieUserID, CookieUserRole, CookieUser} {
		assert.True(t, names[want], "missing %s", want)
	}
}
