package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/ladanze/auth-api/internal/token"
)

// TokenVerifier checks an access token and returns its claims.
type TokenVerifier interface {
	Verify(tokenString string) (*token.Claims, error)
}

type claimsContextKey struct{}

// ClaimsFromContext returns the verified access token claims stored by
// the auth middleware.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*token.Claims)
	return claims, ok
}

// requireAccessToken verifies the bearer token and injects its claims
// into the request context. Requests without a valid token are
// rejected before the handler runs.
func requireAccessToken(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				respondError(w, ErrMissingAccessToken)
				return
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				respondError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}
