// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"net/http"

	"github.com/angelamos/bookclub-api/internal/core"
	"github.com/angelamos/bookclub-api/internal/session"
)

const (
	UserIDKey       contextKey = "user_id"
	SessionTokenKey contextKey = "session_token"
)

// SessionAuth resolves the session cookie if one is present and stores the
// user id and raw token in the request context. An absent or expired
// session passes through untouched; handlers that require identity stack
// RequireUser on top.
func SessionAuth(
	sessions session.Store,
	cookieName string,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, ok, err := sessions.Resolve(r.Context(), cookie.Value)
			if err != nil {
				core.InternalServerError(w, err)
				return
			}
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, UserIDKey, userID)
			ctx = context.WithValue(ctx, SessionTokenKey, cookie.Value)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects requests that SessionAuth left anonymous.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserID(r.Context()) == 0 {
			core.Unauthorized(w, "Not authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetUserID(ctx context.Context) int64 {
	if id, ok := ctx.Value(UserIDKey).(int64); ok {
		return id
	}
	return 0
}

func GetSessionToken(ctx context.Context) string {
	if token, ok := ctx.Value(SessionTokenKey).(string); ok {
		return token
	}
	return ""
}
