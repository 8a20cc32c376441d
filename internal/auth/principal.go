package auth

import (
	"context"

	"github.com/tendant/simple-cms/internal/domain"
)

// Principal is the verified identity of a caller
type Principal struct {
	UserID string
	Role   domain.Role
}

type principalKey struct{}

// NewContext returns a copy of ctx carrying p
func NewContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored by NewContext
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
