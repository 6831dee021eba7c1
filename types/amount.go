// Package types provides common value types used across the token ledger.
package types

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Amount represents an unsigned quantity of token units.
// It is an immutable 256-bit value: every arithmetic method returns a new
// Amount and never mutates the receiver. All arithmetic is integer-only:
// no floating point.
//
// Examples:
//   - Units(1500) = 1500 base units
//   - MustParse("15000000000000000000") = 1.5e19 base units
type Amount struct {
	v uint256.Int
}

// Units creates an Amount from a uint64 count of base units.
func Units(u uint64) Amount {
	var a Amount
	a.v.SetUint64(u)
	return a
}

// FromUint256 creates an Amount from a 256-bit integer. The value is copied.
func FromUint256(v *uint256.Int) Amount {
	var a Amount
	if v != nil {
		a.v.Set(v)
	}
	return a
}

// Parse parses a non-negative decimal string into an Amount.
func Parse(s string) (Amount, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Amount{}, fmt.Errorf("amount: parse %q: %w", s, err)
	}
	return FromUint256(v), nil
}

// MustParse is like Parse but panics on error. Use for hardcoded values.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// ParseUnits parses a human-readable decimal quantity (e.g. "1.5") at the
// given number of decimal places into base units. Fractions finer than the
// precision and negative values are rejected.
func ParseUnits(s string, decimals int) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("amount: parse units %q: %w", s, err)
	}
	d = d.Shift(int32(decimals))
	if d.IsNegative() {
		return Amount{}, fmt.Errorf("amount: parse units %q: negative", s)
	}
	if !d.IsInteger() {
		return Amount{}, fmt.Errorf("amount: parse units %q: more than %d decimal places", s, decimals)
	}
	v, overflow := uint256.FromBig(d.BigInt())
	if overflow {
		return Amount{}, fmt.Errorf("amount: parse units %q: overflows 256 bits", s)
	}
	return FromUint256(v), nil
}

// MaxAmount returns the largest representable Amount (2^256 - 1).
func MaxAmount() Amount {
	var a Amount
	a.v.SetAllOne()
	return a
}

// Arithmetic operations

// Add returns a + other. Panics on 256-bit overflow.
func (a Amount) Add(other Amount) Amount {
	var r Amount
	if _, carry := r.v.AddOverflow(&a.v, &other.v); carry {
		panic("amount: addition overflow")
	}
	return r
}

// Sub returns a - other. Panics if other exceeds a.
func (a Amount) Sub(other Amount) Amount {
	var r Amount
	if _, borrow := r.v.SubOverflow(&a.v, &other.v); borrow {
		panic("amount: subtraction underflow")
	}
	return r
}

// Mul returns a * other. Panics on 256-bit overflow.
func (a Amount) Mul(other Amount) Amount {
	var r Amount
	if _, overflow := r.v.MulOverflow(&a.v, &other.v); overflow {
		panic("amount: multiplication overflow")
	}
	return r
}

// Div returns a / other using integer division. Panics if other is zero.
func (a Amount) Div(other Amount) Amount {
	if other.v.IsZero() {
		panic("amount: division by zero")
	}
	var r Amount
	r.v.Div(&a.v, &other.v)
	return r
}

// Mod returns a mod other. Panics if other is zero.
func (a Amount) Mod(other Amount) Amount {
	if other.v.IsZero() {
		panic("amount: division by zero")
	}
	var r Amount
	r.v.Mod(&a.v, &other.v)
	return r
}

// Comparison methods

// IsZero returns true if the amount is zero.
func (a Amount) IsZero() bool { return a.v.IsZero() }

// Cmp returns -1, 0 or +1 comparing a against other.
func (a Amount) Cmp(other Amount) int { return a.v.Cmp(&other.v) }

// Equal returns true if both amounts are equal.
func (a Amount) Equal(other Amount) bool { return a.v.Eq(&other.v) }

// LessThan returns true if a is strictly less than other.
func (a Amount) LessThan(other Amount) bool { return a.v.Lt(&other.v) }

// GreaterThan returns true if a is strictly greater than other.
func (a Amount) GreaterThan(other Amount) bool { return a.v.Gt(&other.v) }

// Min returns the smaller of two amounts.
func (a Amount) Min(other Amount) Amount {
	if a.v.Lt(&other.v) {
		return a
	}
	return other
}

// Max returns the larger of two amounts.
func (a Amount) Max(other Amount) Amount {
	if a.v.Gt(&other.v) {
		return a
	}
	return other
}

// Accessors and formatting

// Uint256 returns a copy of the underlying 256-bit value.
func (a Amount) Uint256() *uint256.Int {
	return new(uint256.Int).Set(&a.v)
}

// Uint64 returns the amount as a uint64 and whether it fits.
func (a Amount) Uint64() (uint64, bool) {
	if !a.v.IsUint64() {
		return 0, false
	}
	return a.v.Uint64(), true
}

// String returns the decimal representation in base units.
func (a Amount) String() string { return a.v.Dec() }

// Format renders the amount as a human-readable decimal quantity at the
// given number of decimal places: Units(15000).Format(3) = "15".
func (a Amount) Format(decimals int) string {
	d := decimal.NewFromBigInt(a.v.ToBig(), -int32(decimals))
	return d.String()
}

// MarshalText implements encoding.TextMarshaler (decimal base units).
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.v.Dec()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Amount) UnmarshalText(data []byte) error {
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalJSON implements json.Marshaler. Amounts are encoded as decimal
// strings to survive JSON number precision limits.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.v.Dec() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Sum calculates the sum of multiple amounts. Panics on overflow.
func Sum(values ...Amount) Amount {
	var result Amount
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// BigInt returns the amount as a math/big integer copy.
func (a Amount) BigInt() *big.Int { return a.v.ToBig() }

// Float64 returns the nearest float64 representation. Large amounts lose
// precision; use for metrics and display only.
func (a Amount) Float64() float64 { return a.v.Float64() }
