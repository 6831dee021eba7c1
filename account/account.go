// Package account defines the principal identity type for the token ledger.
//
// Every balance holder, role grantee and allowance party is keyed by an
// Address: a fixed 20-byte opaque identifier rendered as 0x-prefixed hex.
// Addresses have no lifecycle of their own: an account exists implicitly
// from the first moment it holds a nonzero balance or an allowance.
package account

import (
	"database/sql/driver"
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressLength is the fixed byte width of an Address.
const AddressLength = 20

// Address is an opaque 20-byte principal identifier.
//
//nolint:recvcheck // Value receivers for read-only methods, pointer receivers for UnmarshalText/Scan.
type Address [AddressLength]byte

// Zero is the zero-value Address. It is a valid map key but is never
// granted roles or balances by the ledger itself.
var Zero Address

// BytesToAddress creates an Address from a byte slice. Slices longer than
// AddressLength keep their trailing bytes; shorter slices are left-padded
// with zeros.
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

// Parse parses a hex string (with or without 0x prefix) into an Address.
func Parse(s string) (Address, error) {
	h := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(h) != AddressLength*2 {
		return Zero, fmt.Errorf("account: parse %q: want %d hex chars, got %d", s, AddressLength*2, len(h))
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return Zero, fmt.Errorf("account: parse %q: %w", s, err)
	}
	return BytesToAddress(b), nil
}

// MustParse is like Parse but panics on error. Use for hardcoded addresses.
func MustParse(s string) Address {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String returns the 0x-prefixed lowercase hex representation.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Bytes returns a copy of the address bytes.
func (a Address) Bytes() []byte {
	b := make([]byte, AddressLength)
	copy(b, a[:])
	return b
}

// IsZero reports whether this Address is the zero value.
func (a Address) IsZero() bool {
	return a == Zero
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*a = Zero
		return nil
	}
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Value implements driver.Valuer for database storage.
func (a Address) Value() (driver.Value, error) {
	return a.String(), nil
}

// Scan implements sql.Scanner for database retrieval.
func (a *Address) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = Zero
		return nil
	case string:
		return a.UnmarshalText([]byte(v))
	case []byte:
		return a.UnmarshalText(v)
	default:
		return fmt.Errorf("account: cannot scan %T into Address", src)
	}
}
