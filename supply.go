package tokenledger

import (
	"context"

	"github.com/xraph/tokenledger/access"
	"github.com/xraph/tokenledger/account"
	"github.com/xraph/tokenledger/id"
	"github.com/xraph/tokenledger/plugin"
	"github.com/xraph/tokenledger/types"
)

// Burn destroys amount of the caller's tokens, removing them from the
// total supply. No fee split applies: the whole amount is burned.
func (l *Ledger) Burn(ctx context.Context, caller account.Address, amount types.Amount) error {
	l.mu.Lock()
	if err := l.requireUnpaused(caller); err != nil {
		l.mu.Unlock()
		return err
	}
	if err := l.applyBurn(caller, amount); err != nil {
		l.mu.Unlock()
		return err
	}
	l.mu.Unlock()

	l.emitBurn(ctx, caller, account.Zero, amount)
	return nil
}

// BurnFrom destroys amount of another account's tokens using the
// caller's allowance, which is debited on use.
func (l *Ledger) BurnFrom(ctx context.Context, caller, from account.Address, amount types.Amount) error {
	l.mu.Lock()
	if err := l.requireUnpaused(caller); err != nil {
		l.mu.Unlock()
		return err
	}
	if l.allowances[from][caller].LessThan(amount) {
		l.mu.Unlock()
		return ErrAllowanceExceeded
	}
	if err := l.applyBurn(from, amount); err != nil {
		l.mu.Unlock()
		return err
	}
	l.debitAllowance(from, caller, amount)
	l.mu.Unlock()

	l.emitBurn(ctx, from, caller, amount)
	return nil
}

// Distribute debits amount from the caller and delivers it, minus the
// standard fee split, to the treasury account. The burn fee still leaves
// circulation and the distribution fee is still redistributed to all
// non-exempt holders.
func (l *Ledger) Distribute(ctx context.Context, caller account.Address, amount types.Amount) error {
	l.mu.Lock()
	if err := l.requireUnpaused(caller); err != nil {
		l.mu.Unlock()
		return err
	}
	net, burnFee, distFee, err := l.applyTransfer(caller, l.treasury, amount)
	l.mu.Unlock()
	if err != nil {
		return err
	}

	l.emitDistribute(ctx, caller, amount, burnFee, distFee, net)
	return nil
}

// DistributeFrom distributes from another account using the caller's
// allowance, which is debited on use.
func (l *Ledger) DistributeFrom(ctx context.Context, caller, from account.Address, amount types.Amount) error {
	l.mu.Lock()
	if err := l.requireUnpaused(caller); err != nil {
		l.mu.Unlock()
		return err
	}
	if l.allowances[from][caller].LessThan(amount) {
		l.mu.Unlock()
		return ErrAllowanceExceeded
	}
	net, burnFee, distFee, err := l.applyTransfer(from, l.treasury, amount)
	if err != nil {
		l.mu.Unlock()
		return err
	}
	l.debitAllowance(from, caller, amount)
	l.mu.Unlock()

	l.emitDistribute(ctx, from, amount, burnFee, distFee, net)
	return nil
}

// Denominate rescales the whole unit system: total supply and every
// account's true balance are divided by factor, truncating, with
// relative proportions intact. Non-exempt balances are rescaled through
// the rate in O(1); only exempt raw balances are rewritten.
func (l *Ledger) Denominate(ctx context.Context, caller account.Address, factor types.Amount) error {
	l.mu.Lock()
	if err := l.requireRole(caller, access.RoleOwner); err != nil {
		l.mu.Unlock()
		return err
	}
	if err := l.requireUnpaused(caller); err != nil {
		l.mu.Unlock()
		return err
	}
	if factor.IsZero() {
		l.mu.Unlock()
		return ErrInvalidParameter
	}
	l.pool.Denominate(factor)
	supply := l.pool.TotalSupply()
	l.mu.Unlock()

	op := id.New(id.PrefixDenomination)
	l.logger.Info("supply denominated",
		"op", op,
		"factor", factor,
		"supply", supply,
	)
	l.plugins.EmitDenomination(ctx, &plugin.DenominationEvent{
		Op:        op,
		Factor:    factor,
		NewSupply: supply,
	})
	return nil
}

// applyBurn debits the holder and shrinks supply and reflection supply
// together, so no other balance moves. Callers must hold the lock.
func (l *Ledger) applyBurn(from account.Address, amount types.Amount) error {
	rate := l.pool.Rate()
	if err := l.pool.Debit(from, amount, rate); err != nil {
		return err
	}
	l.pool.Burn(amount, rate)
	return nil
}

func (l *Ledger) emitBurn(ctx context.Context, from, spender account.Address, amount types.Amount) {
	op := id.New(id.PrefixBurn)
	l.logger.Info("tokens burned",
		"op", op,
		"from", from,
		"amount", amount,
	)
	l.plugins.EmitBurn(ctx, &plugin.BurnEvent{
		Op:      op,
		From:    from,
		Spender: spender,
		Amount:  amount,
	})
}

func (l *Ledger) emitDistribute(ctx context.Context, from account.Address, amount, burnFee, distFee, net types.Amount) {
	op := id.New(id.PrefixDistribute)
	l.logger.Info("tokens distributed",
		"op", op,
		"from", from,
		"amount", amount,
		"net", net,
	)
	l.plugins.EmitDistribute(ctx, &plugin.DistributeEvent{
		Op:              op,
		From:            from,
		Treasury:        l.treasury,
		Amount:          amount,
		BurnFee:         burnFee,
		DistributionFee: distFee,
		NetDelivered:    net,
	})
}
