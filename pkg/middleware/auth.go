package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/rasoi/pkg/auth"
	"github.com/shashiranjanraj/rasoi/pkg/response"
)

// Principal is the authenticated caller attached to the request context.
// It is a projection of the account record — never the password hash.
type Principal struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// Resolver loads the account a validated token asserts. It runs on every
// authenticated request: authorization decisions are never cached, so role
// changes and deleted accounts take effect immediately.
type Resolver func(ctx context.Context, accountID string) (Principal, error)

type principalKey struct{}

// Auth authenticates the request before any business logic runs: it extracts
// the bearer token, validates the signature and expiry, resolves the asserted
// account, and stores the resulting Principal in the request context.
// Every failure is a 401; role checks (403) are rbac's job.
func Auth(resolve Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				response.Unauthorized(w, "Access denied! No token provided.")
				return
			}

			claims, err := auth.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				response.Unauthorized(w, "Invalid or expired token!")
				return
			}

			principal, err := resolve(r.Context(), claims.AccountID)
			if err != nil {
				// The token was valid but the account is gone.
				response.Unauthorized(w, "User not found!")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromCtx returns the authenticated caller, if any.
func PrincipalFromCtx(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// RoleFromCtx returns the caller's role, if authenticated.
func RoleFromCtx(ctx context.Context) (string, bool) {
	p, ok := PrincipalFromCtx(ctx)
	return p.Role, ok
}

// UserIDFromCtx returns the caller's account id, if authenticated.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	p, ok := PrincipalFromCtx(ctx)
	return p.ID, ok
}

// WithPrincipal returns a context carrying the given principal.
// Exposed for handler tests; production code relies on Auth.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}
