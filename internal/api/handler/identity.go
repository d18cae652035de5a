// internal/api/handler/identity.go
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"coursehub/internal/util"
)

// Identity is the caller extracted from the gateway headers. Token
// verification happens upstream; by the time a request reaches this
// service the headers are trusted.
type Identity struct {
	UserID int64
	Email  string
}

type identityContextKey struct{}

// IdentityFromContext returns the caller identity set by RequireIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityContextKey{}).(Identity)
	return identity, ok
}

// RequireIdentity rejects requests missing the X-User-ID / X-User-Email
// headers and stores the parsed identity in the request context.
func RequireIdentity(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userIDStr := r.Header.Get("X-User-ID")
			email := r.Header.Get("X-User-Email")
			if userIDStr == "" || email == "" {
				respondWithError(w, logger, util.ErrUnauthenticated)
				return
			}
			userID, err := strconv.ParseInt(userIDStr, 10, 64)
			if err != nil || userID <= 0 {
				respondWithError(w, logger, util.ErrUnauthenticated)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey{}, Identity{UserID: userID, Email: email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
