package tokenledger

import (
	"github.com/xraph/tokenledger/access"
	"github.com/xraph/tokenledger/account"
	"github.com/xraph/tokenledger/types"
)

// Re-export common types for convenience so users don't have to import the
// leaf packages.

// Amount is re-exported from the types package.
type Amount = types.Amount

// Address is re-exported from the account package.
type Address = account.Address

// Role is re-exported from the access package.
type Role = access.Role

// Re-export the role set.
const (
	RoleOwner    = access.RoleOwner
	RoleAdmin    = access.RoleAdmin
	RoleUnpaused = access.RoleUnpaused
)

// Re-export Amount constructors
var (
	Units      = types.Units
	Parse      = types.Parse
	ParseUnits = types.ParseUnits
	Sum        = types.Sum
)

// Re-export Address constructors
var (
	ParseAddress     = account.Parse
	MustParseAddress = account.MustParse
	BytesToAddress   = account.BytesToAddress
)
