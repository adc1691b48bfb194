package registry

import (
	"context"
	"strings"
)

// AccessControl resolves caller identities to power levels and applies the
// role rules for mutating operations.
type AccessControl struct {
	roles RoleRepository
}

func NewAccessControl(roles RoleRepository) *AccessControl {
	return &AccessControl{roles: roles}
}

func (a *AccessControl) PowerOf(ctx context.Context, identity string) (PowerLevel, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return PowerUnregistered, nil
	}
	return a.roles.PowerOf(ctx, identity)
}

// RequireEducator gates Educator-only mutations.
func (a *AccessControl) RequireEducator(ctx context.Context, identity string) error {
	power, err := a.PowerOf(ctx, identity)
	if err != nil {
		return err
	}
	if power != PowerEducator {
		return ErrUnauthorized
	}
	return nil
}

// GrantEducator promotes target to Educator. Only an existing Educator may
// grant; a target that is already an Educator is left unchanged.
func (a *AccessControl) GrantEducator(ctx context.Context, requester, target string) error {
	if err := a.RequireEducator(ctx, requester); err != nil {
		return err
	}

	target = strings.TrimSpace(target)
	if target == "" {
		return ErrInvalidIdentity
	}

	power, err := a.roles.PowerOf(ctx, target)
	if err != nil {
		return err
	}
	if power == PowerEducator {
		return nil
	}
	return a.roles.SetRole(ctx, target, PowerEducator)
}

// RegisterUser is self-service and idempotent. Identities that already
// hold a role keep it: registration must never demote an Educator.
func (a *AccessControl) RegisterUser(ctx context.Context, identity string) error {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return ErrInvalidIdentity
	}

	power, err := a.roles.PowerOf(ctx, identity)
	if err != nil {
		return err
	}
	if power != PowerUnregistered {
		return nil
	}
	return a.roles.SetRole(ctx, identity, PowerUser)
}
