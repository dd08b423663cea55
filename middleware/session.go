package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rumahkos/kos-bff/internal/session"
)

type contextKey string

const (
	TokenKey  contextKey = "token"
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "user_role"
)

// Session lifts the credential cookies into request context. The upstream
// API validates the token on every call; here the claims are only peeked at
// to recover the user id and role, with the plain cookies as fallback.
func Session(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := store.Get(r, session.CookieToken)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), TokenKey, token)

			userID := peekUserID(token)
			if userID == 0 {
				if raw, ok := store.Get(r, session.CookieUserID); ok {
					userID, _ = strconv.Atoi(raw)
				}
			}
			if userID != 0 {
				ctx = context.WithValue(ctx, UserIDKey, userID)
			}

			role := peekRole(token)
			if role == "" {
				role, _ = store.Get(r, session.CookieUserRole)
			}
			if role != "" {
				ctx = context.WithValue(ctx, RoleKey, role)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests without a token. The UI treats the redirect
// field as a navigation target.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetToken(r.Context()) == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{
					"code":       "unauthorized",
					"message":    "Token tidak ditemukan. Silakan login ulang.",
					"request_id": GetRequestID(r.Context()),
				},
				"redirect": "/login",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// peekUserID extracts a numeric user id claim without verifying the
// signature; the signing key belongs to the upstream API.
func peekUserID(tokenStr string) int {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return 0
	}
	for _, key := range []string{"id", "uid", "sub", "user_id"} {
		switch v := claims[key].(type) {
		case float64:
			return int(v)
		case string:
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
	}
	return 0
}

func peekRole(tokenStr string) string {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}

func GetToken(ctx context.Context) string {
	token, ok := ctx.Value(TokenKey).(string)
	if !ok {
		return ""
	}
	return token
}

func GetUserID(ctx context.Context) int {
	id, ok := ctx.Value(UserIDKey).(int)
	if !ok {
		return 0
	}
	return id
}

func GetRole(ctx context.Context) string {
	role, ok := ctx.Value(RoleKey).(string)
	if !ok {
		return ""
	}
	return role
}
