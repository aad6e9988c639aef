package middleware

import (
	"net/http"

	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
)

// RequirePermission allows the request through only when the JWT role's
// static permission set contains perm.
func RequirePermission(perm domain.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !domain.HasPermission(domain.Role(claims.Role), perm) {
				writeJSONError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRoleLevel allows roles at or above the given role's level. Used for
// surfaces gated by seniority rather than a single permission.
func RequireRoleLevel(min domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !domain.HasRoleLevel(domain.Role(claims.Role), domain.Level(min)) {
				writeJSONError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
