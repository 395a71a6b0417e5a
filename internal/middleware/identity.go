package middleware

import (
	"context"
	"net/http"
	"strings"
)

type userIDKey struct{}

// Identity resolves the authenticated user for a request. Authentication
// itself is owned by an upstream collaborator; this app trusts the
// X-User-ID header (set by the auth proxy) or, failing that, the user_id
// cookie. Requests without either simply carry no identity and page
// handlers decide what to do about it.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := strings.TrimSpace(r.Header.Get("X-User-ID"))
		if uid == "" {
			if c, err := r.Cookie("user_id"); err == nil {
				uid = strings.TrimSpace(c.Value)
			}
		}
		if uid != "" {
			r = r.WithContext(context.WithValue(r.Context(), userIDKey{}, uid))
		}
		next.ServeHTTP(w, r)
	})
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(userIDKey{}).(string)
	return uid, ok && uid != ""
}

// WithUserID injects a user id into the context. Intended for tests.
func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, userIDKey{}, uid)
}
