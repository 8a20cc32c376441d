package auth

import (
	"slices"

	"github.com/tendant/simple-cms/internal/domain"
)

// Authorize decides whether p may act. The role check runs first and
// fails with domain.ErrForbidden; a non-nil owns predicate is then
// consulted and fails with domain.ErrUnauthorized.
func Authorize(p Principal, roles []domain.Role, owns func(Principal) bool) error {
	if len(roles) > 0 && !slices.Contains(roles, p.Role) {
		return domain.ErrForbidden
	}
	if owns != nil && !owns(p) {
		return domain.ErrUnauthorized
	}
	return nil
}

// OwnedBy is an ownership predicate matching the creator of a record
func OwnedBy(creatorID string) func(Principal) bool {
	return func(p Principal) bool {
		return p.UserID != "" && p.UserID == creatorID
	}
}
