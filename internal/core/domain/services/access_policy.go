package services

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
)

// ErrAccessDenied reports that the caller may not act on the resource.
// It is evaluated before any state mutation.
var ErrAccessDenied = errors.New("access denied")

// Role is a coarse authorization role resolved by the identity collaborator.
// The core never inspects credentials; it only consumes resolved roles.
type Role string

const (
	// RoleAdmin may act on any resource.
	RoleAdmin Role = "ADMIN"

	// RoleSeller may drive fulfillment on paid orders.
	RoleSeller Role = "SELLER"

	// RoleCustomer may act on resources they own.
	RoleCustomer Role = "CUSTOMER"
)

// Principal is the resolved identity of the caller: who they are and which
// roles the identity collaborator granted them.
type Principal struct {
	userID kernel.UUID
	roles  map[Role]struct{}
}

// NewPrincipal creates a resolved principal.
func NewPrincipal(userID kernel.UUID, roles ...Role) (Principal, error) {
	if err := userID.Validate(); err != nil {
		return Principal{}, err
	}

	roleSet := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return Principal{userID: userID, roles: roleSet}, nil
}

// UserID returns the caller's identifier.
func (p Principal) UserID() kernel.UUID {
	return p.userID
}

// HasRole reports whether the principal carries the given role.
func (p Principal) HasRole(role Role) bool {
	_, ok := p.roles[role]
	return ok
}

// AccessPolicy is the single authorization decision point for mutating
// operations. Every command handler calls it at the top, before touching
// any aggregate.
type AccessPolicy struct{}

// NewAccessPolicy creates the policy.
func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// CanAct reports whether the principal may act on a resource owned by
// resourceOwnerID: either they own it or they hold the admin role.
func (AccessPolicy) CanAct(principal Principal, resourceOwnerID kernel.UUID) bool {
	if principal.HasRole(RoleAdmin) {
		return true
	}
	return principal.UserID().IsEqual(resourceOwnerID)
}

// CanOperate reports whether the principal may drive operator-only actions
// (fulfillment stages, COD confirmation): admins and sellers.
func (AccessPolicy) CanOperate(principal Principal) bool {
	return principal.HasRole(RoleAdmin) || principal.HasRole(RoleSeller)
}

// Authorize converts a CanAct denial into ErrAccessDenied.
func (ap AccessPolicy) Authorize(principal Principal, resourceOwnerID kernel.UUID) error {
	if !ap.CanAct(principal, resourceOwnerID) {
		return ErrAccessDenied
	}
	return nil
}

// AuthorizeOperator converts a CanOperate denial into ErrAccessDenied.
func (ap AccessPolicy) AuthorizeOperator(principal Principal) error {
	if !ap.CanOperate(principal) {
		return ErrAccessDenied
	}
	return nil
}
