package middleware

import (
	"net/http"
	"strings"

	"github.com/frahmantamala/hospital-careers/internal"
	"github.com/frahmantamala/hospital-careers/pkg/logger"
)

// TokenVerifier turns a bearer token into the caller's identity.
type TokenVerifier interface {
	Verify(tokenString string) (*internal.Identity, error)
}

// Identify attaches the bearer token's identity to the request context.
// Requests without a token pass through anonymously; a token that fails
// verification is answered with 401.
func Identify(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				appErr, ok := internal.IsAppError(err)
				if !ok {
					appErr = internal.ErrInvalidToken
				}
				logger.From(r.Context()).Warn("identity token rejected", "code", appErr.Code)
				writeAppError(w, appErr)
				return
			}

			ctx := internal.ContextWithIdentity(r.Context(), identity)
			ctx = logger.With(ctx, "userID", identity.UserID, "role", identity.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
