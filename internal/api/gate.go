package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"

	"github.com/tendant/simple-cms/internal/auth"
	"github.com/tendant/simple-cms/internal/domain"
)

// Gate verifies session tokens and restricts routes to a set of roles
type Gate struct {
	issuer *auth.TokenIssuer
}

// NewGate creates a gate verifying tokens signed by issuer
func NewGate(issuer *auth.TokenIssuer) *Gate {
	return &Gate{issuer: issuer}
}

// Require returns the middleware chain for a route open to roles:
// token verification from the Authorization header or jwt cookie, then
// the role check. The verified principal is stored in the request context.
func (g *Gate) Require(roles ...domain.Role) chi.Middlewares {
	return chi.Middlewares{
		jwtauth.Verifier(g.issuer.JWTAuth()),
		g.authorize(roles),
	}
}

func (g *Gate) authorize(roles []domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if errors.Is(err, jwtauth.ErrNoTokenFound) || (err == nil && token == nil) {
				writeError(w, r, http.StatusUnauthorized, msgAccessDenied)
				return
			}
			if err != nil {
				writeError(w, r, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			p, err := auth.PrincipalFromToken(token)
			if err != nil {
				writeError(w, r, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			if err := auth.Authorize(p, roles, nil); err != nil {
				writeError(w, r, http.StatusForbidden, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.NewContext(r.Context(), p)))
		})
	}
}

// principal returns the caller placed in the context by Require
func principal(r *http.Request) auth.Principal {
	p, _ := auth.FromContext(r.Context())
	return p
}
