// Package rbac provides the static role checks of the authorization gate.
// Each route declares the roles allowed to call it; a mismatch is rejected
// with a 403 naming both the caller's role and the required roles, before
// the handler runs. Ownership checks are dynamic and live in app/policy.
package rbac

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/rasoi/pkg/middleware"
	"github.com/shashiranjanraj/rasoi/pkg/response"
)

// HasRole returns middleware that allows access only to callers with one of
// the given roles. Requires middleware.Auth to have already run.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	required := strings.Join(roles, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r.Context())
			if !ok {
				response.Unauthorized(w, "Not authorized!")
				return
			}
			if !allowed[role] {
				response.Forbidden(w, fmt.Sprintf(
					"Access denied! User role: %s, Required roles: %s", role, required))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
