package middleware

import (
	"net/http"

	"medpractice-backend/pkg/response"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// RequireRole checks that the authenticated caller holds at least one of the
// allowed roles. Roles come from the token claims set by AuthMiddleware.
func RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roles, ok := GetRolesFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			if !HasAnyRole(roles, allowedRoles...) {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(RoleAdmin)(next)
}

// RequireUser is a convenience middleware for endpoints open to any
// authenticated role
func RequireUser(next http.Handler) http.Handler {
	return RequireRole(RoleAdmin, RoleUser)(next)
}

func HasAnyRole(granted []string, allowed ...string) bool {
	for _, a := range allowed {
		for _, g := range granted {
			if g == a {
				return true
			}
		}
	}
	return false
}
