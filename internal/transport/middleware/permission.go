package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hospital-careers/internal"
)

// RequireIdentity rejects anonymous requests.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := internal.IdentityFromContext(r.Context()); !ok {
			writeAppError(w, internal.ErrInvalidToken)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRoles admits callers holding any of roles.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := internal.IdentityFromContext(r.Context())
			if !ok {
				writeAppError(w, internal.ErrInvalidToken)
				return
			}

			for _, role := range roles {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			slog.Warn("Access denied: role not permitted",
				"user_id", identity.UserID,
				"role", identity.Role,
				"required_roles", roles)
			writeAppError(w, internal.ErrForbidden)
		})
	}
}

// RequireStaff guards the back office.
func RequireStaff(next http.Handler) http.Handler {
	return RequireRoles("HOSPITAL_STAFF", "ADMIN")(next)
}

func writeAppError(w http.ResponseWriter, appErr *internal.AppError) {
	status, body := appErr.ToHTTPResponse()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
