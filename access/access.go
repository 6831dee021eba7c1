// Package access provides role membership for the token ledger.
//
// The role set is closed: OWNER manages roles, ADMIN changes parameters,
// UNPAUSED bypasses the pause gate. Roles are represented as bits so a
// principal's whole grant fits in one byte and checks are a single mask.
package access

import "github.com/xraph/tokenledger/account"

// Role is a bit flag identifying a single capability.
type Role uint8

const (
	// RoleOwner may grant and revoke any role, including itself, and run
	// administrative supply operations.
	RoleOwner Role = 1 << iota
	// RoleAdmin may change fee parameters, exemptions and the pause state.
	RoleAdmin
	// RoleUnpaused may mutate balances while the ledger is paused.
	RoleUnpaused
)

// AllRoles is the union of every defined role.
const AllRoles = RoleOwner | RoleAdmin | RoleUnpaused

// String returns the canonical role name.
func (r Role) String() string {
	switch r {
	case RoleOwner:
		return "OWNER"
	case RoleAdmin:
		return "ADMIN"
	case RoleUnpaused:
		return "UNPAUSED"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether r is exactly one defined role.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleAdmin || r == RoleUnpaused
}

// Grants maps principals to their role sets.
// It is a plain data structure: callers are responsible for serializing
// access (the ledger engine holds the lock).
type Grants struct {
	roles map[account.Address]Role
}

// NewGrants creates an empty grant table.
func NewGrants() *Grants {
	return &Grants{roles: make(map[account.Address]Role)}
}

// Grant adds role to the principal's role set.
func (g *Grants) Grant(a account.Address, role Role) {
	g.roles[a] |= role
}

// Revoke removes role from the principal's role set.
func (g *Grants) Revoke(a account.Address, role Role) {
	rest := g.roles[a] &^ role
	if rest == 0 {
		delete(g.roles, a)
		return
	}
	g.roles[a] = rest
}

// Has reports whether the principal holds role.
func (g *Grants) Has(a account.Address, role Role) bool {
	return g.roles[a]&role != 0
}

// Roles returns the principal's full role set.
func (g *Grants) Roles(a account.Address) Role {
	return g.roles[a]
}
