package auth

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// Identity is the verified principal extracted from a bearer token. The
// Subject is the identity provider's user id claim; access decisions
// compare it, never a client-supplied value.
type Identity struct {
	Subject string
}

type contextKey struct{}

// FromContext returns the authenticated identity, if any.
func FromContext(ctx context.Context) (*Identity, bool) {
	ident, ok := ctx.Value(contextKey{}).(*Identity)
	return ident, ok
}

// WithIdentity is exported for handler tests.
func WithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, ident)
}

// Middleware verifies an optional HS256 bearer token and attaches the
// identity to the request context. Requests without a token, or with one
// that fails verification, proceed anonymously; each route decides whether
// anonymous access is acceptable. Token issuance belongs to the identity
// provider, not this service.
func Middleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			raw := strings.TrimPrefix(header, "Bearer ")
			token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				log.Debug().Err(err).Msg("rejected bearer token")
				next.ServeHTTP(w, r)
				return
			}

			sub, err := token.Claims.GetSubject()
			if err != nil || sub == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithIdentity(r.Context(), &Identity{Subject: sub})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Decision is the outcome of an access-policy check.
type Decision int

const (
	Allow Decision = iota
	// Unauthorized means no verified identity was present; the client
	// should prompt a login rather than show a permissions error.
	Unauthorized
	Forbidden
)

// Decide evaluates a request for userID's personalized data. A caller
// whose verified subject matches the requested id is allowed; an
// anonymous caller is unauthorized; an authenticated caller with a
// different identity is forbidden. There are no per-user exceptions.
func Decide(ident *Identity, userID int64) Decision {
	if ident != nil && ident.Subject == strconv.FormatInt(userID, 10) {
		return Allow
	}
	if ident == nil {
		return Unauthorized
	}
	return Forbidden
}
