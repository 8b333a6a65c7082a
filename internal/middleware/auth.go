package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tripforge/backend/internal/domain"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

// principalKey stores the authenticated domain.Principal in the request context.
const principalKey contextKey = "principal"

// TokenValidator validates a bearer token and returns the principal it names.
// Satisfied by *auth.JWTManager.
type TokenValidator interface {
	ValidateAccessToken(token string) (domain.Principal, error)
}

// NewAuthenticator returns a middleware that requires a valid
// "Authorization: Bearer <token>" header. On success the principal is placed
// in the request context for handlers to read via PrincipalFromContext;
// otherwise the request is rejected with 401.
func NewAuthenticator(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeAuthError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeAuthError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			principal, err := tokens.ValidateAccessToken(parts[1])
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests whose principal does not hold the admin role.
// Wire it after NewAuthenticator.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if !principal.IsAdmin() {
			writeAuthError(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithPrincipal returns a context carrying the given principal.
// Exported so handler tests can inject a principal without a real token.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext retrieves the authenticated principal, if any.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	return p, ok
}

// writeAuthError writes the same structured error body the handlers use,
// so clients see one error shape regardless of which layer rejected them.
func writeAuthError(w http.ResponseWriter, status int, message string) {
	code := "unauthorized"
	if status == http.StatusForbidden {
		code = "forbidden"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// A failed response write leaves nothing useful to report.
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
