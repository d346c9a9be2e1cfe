package middleware

import (
	"errors"
	"net/http"

	"github.com/syneepse/ResumeFix/internal/auth"
	"github.com/syneepse/ResumeFix/internal/utils"
)

// RequireIdentity resolves the caller once and stores the identity in the request context.
// A missing credential is 401; a credential that does not verify is 403.
func RequireIdentity(resolver auth.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			id, err := resolver.Resolve(r)
			switch {
			case err == nil:
			case errors.Is(err, auth.ErrMissingCredential):
				utils.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
				return
			case errors.Is(err, auth.ErrTokenExpired):
				utils.ErrorResponse(w, http.StatusForbidden, "Token expired")
				return
			default:
				utils.ErrorResponse(w, http.StatusForbidden, "Invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}
