// Package reflection implements the scaled-balance store at the heart of
// the token ledger.
//
// Non-exempt balances are held in "reflection" units: a huge scaled
// representation whose exchange rate against true token units shrinks as
// fees accrue. Shrinking the rate raises every non-exempt holder's true
// balance at once, which is how fee redistribution reaches all holders
// without touching any individual balance. A transfer is O(1) regardless
// of the holder count.
//
// Fee-exempt accounts sit outside the pool: their balances are stored in
// true units and neither gain nor lose value passively. The pool keeps a
// single running sum of exempt holdings so the circulating supply — and
// therefore the rate — stays an O(1) computation.
package reflection

import (
	"errors"

	"github.com/xraph/tokenledger/account"
	"github.com/xraph/tokenledger/types"
)

// ErrInsufficientBalance is returned when a debit exceeds the account's
// true balance at the current rate.
var ErrInsufficientBalance = errors.New("tokenledger: insufficient balance")

// Pool is the balance store. It is a plain data structure with no
// internal locking: the ledger engine serializes all access.
type Pool struct {
	tTotal    types.Amount // total supply, true units
	rSupply   types.Amount // reflection supply of the non-exempt pool
	tExcluded types.Amount // sum of exempt accounts' raw balances

	rOwned map[account.Address]types.Amount // non-exempt, reflection units
	tOwned map[account.Address]types.Amount // exempt, true units
	exempt map[account.Address]bool
}

// New creates a pool holding the whole initial supply on the genesis
// account. The reflection supply starts at the largest multiple of the
// supply below 2^256, so the genesis rate divides exactly.
func New(genesis account.Address, supply types.Amount) *Pool {
	if supply.IsZero() {
		panic("reflection: zero initial supply")
	}
	max := types.MaxAmount()
	r0 := max.Sub(max.Mod(supply))

	p := &Pool{
		tTotal:  supply,
		rSupply: r0,
		rOwned:  make(map[account.Address]types.Amount),
		tOwned:  make(map[account.Address]types.Amount),
		exempt:  make(map[account.Address]bool),
	}
	p.rOwned[genesis] = r0
	return p
}

// TotalSupply returns the total circulating units, exempt holdings included.
func (p *Pool) TotalSupply() types.Amount { return p.tTotal }

// Circulating returns the supply held by non-exempt accounts.
func (p *Pool) Circulating() types.Amount { return p.tTotal.Sub(p.tExcluded) }

// Rate returns the current reflection-to-token exchange rate.
// Both conversion directions use this same floored integer, which is what
// makes token→reflection→token round trips exact.
func (p *Pool) Rate() types.Amount {
	circ := p.Circulating()
	if circ.IsZero() {
		// Empty pool: any rate converts the (necessarily zero) scaled
		// balances to zero. Avoid dividing by zero.
		return p.rSupply.Max(types.Units(1))
	}
	return p.rSupply.Div(circ)
}

// IsExempt reports whether the account is outside the redistribution pool.
func (p *Pool) IsExempt(a account.Address) bool { return p.exempt[a] }

// BalanceOf returns the account's true balance at the current rate.
func (p *Pool) BalanceOf(a account.Address) types.Amount {
	if p.exempt[a] {
		return p.tOwned[a]
	}
	r := p.rOwned[a]
	if r.IsZero() {
		return types.Amount{}
	}
	return r.Div(p.Rate())
}

// ToReflection converts true units to reflection units at rate.
func (p *Pool) ToReflection(t, rate types.Amount) types.Amount { return t.Mul(rate) }

// FromReflection converts reflection units to true units at rate.
func (p *Pool) FromReflection(r, rate types.Amount) types.Amount { return r.Div(rate) }

// Credit adds t true units to the account. Exempt credits leave the pool:
// the equivalent reflection slice is removed from the reflection supply
// and the raw holding joins the excluded sum.
func (p *Pool) Credit(a account.Address, t, rate types.Amount) {
	if t.IsZero() {
		return
	}
	if p.exempt[a] {
		p.tOwned[a] = p.tOwned[a].Add(t)
		p.tExcluded = p.tExcluded.Add(t)
		p.rSupply = p.rSupply.Sub(t.Mul(rate))
		return
	}
	p.rOwned[a] = p.rOwned[a].Add(t.Mul(rate))
}

// Debit removes t true units from the account, failing with
// ErrInsufficientBalance if the true balance at rate is too small.
// Exempt debits re-enter the pool: the freed slice is added back to the
// reflection supply so the rate is unaffected.
func (p *Pool) Debit(a account.Address, t, rate types.Amount) error {
	if t.IsZero() {
		return nil
	}
	if p.exempt[a] {
		raw := p.tOwned[a]
		if raw.LessThan(t) {
			return ErrInsufficientBalance
		}
		rest := raw.Sub(t)
		if rest.IsZero() {
			delete(p.tOwned, a)
		} else {
			p.tOwned[a] = rest
		}
		p.tExcluded = p.tExcluded.Sub(t)
		p.rSupply = p.rSupply.Add(t.Mul(rate))
		return nil
	}

	r := p.rOwned[a]
	need := t.Mul(rate)
	// floor(r/rate) >= t exactly when r >= t*rate.
	if r.LessThan(need) {
		return ErrInsufficientBalance
	}
	rest := r.Sub(need)
	if rest.IsZero() {
		delete(p.rOwned, a)
	} else {
		p.rOwned[a] = rest
	}
	return nil
}

// Burn removes t true units from circulation entirely. The caller must
// already have debited the holder. Supply and reflection supply shrink
// together, so no balance moves as a side effect.
func (p *Pool) Burn(t, rate types.Amount) {
	if t.IsZero() {
		return
	}
	p.tTotal = p.tTotal.Sub(t)
	p.rSupply = p.rSupply.Sub(t.Mul(rate))
}

// Reflect redistributes t true units to all non-exempt holders by
// shrinking the reflection supply alone. Every non-exempt balance rises
// proportionally on its next read; no account is touched.
func (p *Pool) Reflect(t, rate types.Amount) {
	if t.IsZero() {
		return
	}
	p.rSupply = p.rSupply.Sub(t.Mul(rate))
}

// SetExempt moves the account out of the redistribution pool, converting
// its scaled balance to raw units at the current rate.
func (p *Pool) SetExempt(a account.Address) {
	if p.exempt[a] {
		return
	}
	rate := p.Rate()
	p.exempt[a] = true
	r := p.rOwned[a]
	if r.IsZero() {
		return
	}
	raw := r.Div(rate)
	delete(p.rOwned, a)
	if !raw.IsZero() {
		p.tOwned[a] = raw
		p.tExcluded = p.tExcluded.Add(raw)
	}
	p.rSupply = p.rSupply.Sub(r)
}

// ClearExempt moves the account back into the pool, re-entering its raw
// balance at the current rate.
func (p *Pool) ClearExempt(a account.Address) {
	if !p.exempt[a] {
		return
	}
	rate := p.Rate()
	raw := p.tOwned[a]
	delete(p.exempt, a)
	if raw.IsZero() {
		return
	}
	delete(p.tOwned, a)
	p.tExcluded = p.tExcluded.Sub(raw)
	r := raw.Mul(rate)
	p.rOwned[a] = p.rOwned[a].Add(r)
	p.rSupply = p.rSupply.Add(r)
}

// Denominate divides the total supply and every exempt raw balance by
// factor, truncating. Scaled balances and the reflection supply are left
// untouched: the rate grows by the same factor, which divides every
// non-exempt true balance in O(1).
func (p *Pool) Denominate(factor types.Amount) {
	p.tTotal = p.tTotal.Div(factor)

	excluded := types.Amount{}
	for a, raw := range p.tOwned {
		scaled := raw.Div(factor)
		if scaled.IsZero() {
			delete(p.tOwned, a)
			continue
		}
		p.tOwned[a] = scaled
		excluded = excluded.Add(scaled)
	}
	p.tExcluded = excluded
}

// Snapshot returns a deep copy of the pool state. Restoring the snapshot
// discards every mutation made after it was taken; batch operations use
// this for all-or-nothing semantics.
func (p *Pool) Snapshot() *Pool {
	s := &Pool{
		tTotal:    p.tTotal,
		rSupply:   p.rSupply,
		tExcluded: p.tExcluded,
		rOwned:    make(map[account.Address]types.Amount, len(p.rOwned)),
		tOwned:    make(map[account.Address]types.Amount, len(p.tOwned)),
		exempt:    make(map[account.Address]bool, len(p.exempt)),
	}
	for a, v := range p.rOwned {
		s.rOwned[a] = v
	}
	for a, v := range p.tOwned {
		s.tOwned[a] = v
	}
	for a := range p.exempt {
		s.exempt[a] = true
	}
	return s
}

// Restore replaces the pool state with a snapshot taken earlier.
func (p *Pool) Restore(s *Pool) {
	p.tTotal = s.tTotal
	p.rSupply = s.rSupply
	p.tExcluded = s.tExcluded
	p.rOwned = s.rOwned
	p.tOwned = s.tOwned
	p.exempt = s.exempt
}
