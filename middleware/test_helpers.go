package middleware

import "context"

// SetRequestIDForTest injects a request ID into the context, bypassing the
// HTTP middleware.
func SetRequestIDForTest(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID{}, id)
}

// SetSessionForTest injects session values into the context, bypassing the
// cookie parsing.
func SetSessionForTest(ctx context.Context, token string, userID int, role string) context.Context {
	ctx = context.WithValue(ctx, TokenKey, token)
	if userID != 0 {
		ctx = context.WithValue(ctx, UserIDKey, userID)
	}
	if role != "" {
		ctx = context.WithValue(ctx, RoleKey, role)
	}
	return ctx
}
