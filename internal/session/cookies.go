package session

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/rumahkos/kos-bff/internal/domain"
)

// Cookie names holding the browser-side credentials. The upstream API is the
// source of truth for the profile; the "user" cookie is a serialized snapshot.
const (
	CookieToken    = "token"
	CookieUserID   = "user_id"
	CookieUserRole = "user_role"
	CookieUser     = "user"
)

const maxAge = int(24 * time.Hour / time.Second)

// Store writes cookies readable by the browser UI. Values live for one day
// and are never renewed.
type Store struct {
	Domain string
	Secure bool
}

func (s *Store) Set(w http.ResponseWriter, key, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		Domain:   s.Domain,
		MaxAge:   maxAge,
		Secure:   s.Secure,
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Store) Get(r *http.Request, key string) (string, bool) {
	c, err := r.Cookie(key)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func (s *Store) Remove(w http.ResponseWriter, key string) {
	http.SetCookie(w, &http.Cookie{
		Name:     key,
		Value:    "",
		Path:     "/",
		Domain:   s.Domain,
		MaxAge:   -1,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetUser serializes the profile into the "user" cookie alongside the id and
// role cookies. The JSON is URL-encoded; quotes and commas are not legal
// cookie octets.
func (s *Store) SetUser(w http.ResponseWriter, p domain.Profile) {
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	s.Set(w, CookieUser, url.QueryEscape(string(raw)))
}

// User returns the cookie-persisted profile. A missing or corrupt cookie
// yields the zero profile rather than an error; callers render the
// empty-profile state.
func (s *Store) User(r *http.Request) domain.Profile {
	raw, ok := s.Get(r, CookieUser)
	if !ok {
		return domain.Profile{}
	}
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return domain.Profile{}
	}
	var p domain.Profile
	if err := json.Unmarshal([]byte(decoded), &p); err != nil {
		return domain.Profile{}
	}
	return p
}

// Clear removes every credential cookie.
func (s *Store) Clear(w http.ResponseWriter) {
	s.Remove(w, CookieToken)
	s.Remove(w, CookieUserID)
	s.Remove(w, CookieUserRole)
	s.Remove(w, CookieUser)
}
