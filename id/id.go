// Package id defines TypeID-based identifiers for ledger operations.
//
// Every mutating ledger call is stamped with an operation ID carrying a
// prefix that names the operation kind. IDs are K-sortable (UUIDv7-based),
// globally unique, and URL-safe in the format "prefix_suffix". They flow
// into structured logs and audit events so a single operation can be
// traced across both.
package id

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

// Prefix identifies the operation kind encoded in a TypeID.
type Prefix string

// Prefix constants for all ledger operation kinds.
const (
	PrefixTransfer     Prefix = "xfer"   // Transfer, TransferAll, TransferFrom
	PrefixBurn         Prefix = "burn"   // Burn, BurnFrom, BurnBatch
	PrefixDistribute   Prefix = "dist"   // Distribute, DistributeFrom, DistributeBatch
	PrefixSeed         Prefix = "seed"   // Multisend
	PrefixDenomination Prefix = "denom"  // Denominate
	PrefixRole         Prefix = "role"   // GrantRole, RevokeRole
	PrefixPause        Prefix = "pause"  // PauseTrigger
	PrefixFeeChange    Prefix = "fee"    // SetBurnPercent, SetDistributionPercent
	PrefixExemption    Prefix = "xmpt"   // GrantNoIncomeFee, RevokeNoIncomeFee
	PrefixRescue       Prefix = "rescue" // StuckFundsTransfer
)

// ID is an operation identifier in the format "prefix_suffix".
//
//nolint:recvcheck // Value receivers for read-only methods, pointer receiver for UnmarshalText.
type ID struct {
	inner typeid.TypeID
	valid bool
}

// Nil is the zero-value ID.
var Nil ID

// New generates a new globally unique ID with the given prefix.
// It panics if prefix is not a valid TypeID prefix (programming error).
func New(prefix Prefix) ID {
	tid, err := typeid.Generate(string(prefix))
	if err != nil {
		panic(fmt.Sprintf("id: invalid prefix %q: %v", prefix, err))
	}

	return ID{inner: tid, valid: true}
}

// Parse parses a TypeID string (e.g., "xfer_01h2xcejqtf2nbrexx3vqjhp41")
// into an ID. Returns an error if the string is not valid.
func Parse(s string) (ID, error) {
	if s == "" {
		return Nil, fmt.Errorf("id: parse %q: empty string", s)
	}

	tid, err := typeid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("id: parse %q: %w", s, err)
	}

	return ID{inner: tid, valid: true}, nil
}

// MustParse is like Parse but panics on error. Use for hardcoded ID values.
func MustParse(s string) ID {
	parsed, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("id: must parse %q: %v", s, err))
	}

	return parsed
}

// String returns the full TypeID string representation (prefix_suffix).
// Returns an empty string for the Nil ID.
func (i ID) String() string {
	if !i.valid {
		return ""
	}

	return i.inner.String()
}

// Prefix returns the prefix component of this ID.
func (i ID) Prefix() Prefix {
	if !i.valid {
		return ""
	}

	return Prefix(i.inner.Prefix())
}

// IsNil reports whether this ID is the zero value.
func (i ID) IsNil() bool {
	return !i.valid
}

// MarshalText implements encoding.TextMarshaler.
func (i ID) MarshalText() ([]byte, error) {
	if !i.valid {
		return []byte{}, nil
	}

	return []byte(i.inner.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *ID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*i = Nil

		return nil
	}

	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}

	*i = parsed

	return nil
}
