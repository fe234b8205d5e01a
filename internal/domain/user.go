package domain

import (
	"context"
	"errors"
)

// Role is the access level of an authenticated actor.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleStaff      Role = "STAFF"
	RoleSuperAdmin Role = "SUPERADMIN"
)

var validRoles = map[Role]bool{
	RoleAdmin:      true,
	RoleStaff:      true,
	RoleSuperAdmin: true,
}

// IsValid checks if the role is known.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanValidateHandover checks if the role may validate or reject deposits
// and cash refills.
func (r Role) CanValidateHandover() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Actor is the authenticated identity resolved by the auth collaborator.
// Ledger components trust it as correct.
type Actor struct {
	ID     string
	Role   Role
	ShopID string
}

// Authentication errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)

type actorContextKey struct{}

// ContextWithActor attaches the resolved actor to the context.
func ContextWithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext extracts the resolved actor from the context.
func ActorFromContext(ctx context.Context) (*Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(*Actor)
	return actor, ok
}
