package tokenledger

import (
	"context"

	"github.com/xraph/tokenledger/account"
	"github.com/xraph/tokenledger/id"
	"github.com/xraph/tokenledger/plugin"
	"github.com/xraph/tokenledger/types"
)

// Transfer moves amount from the caller to another account, applying the
// burn/redistribution fee split unless the recipient is fee-exempt. It
// returns the net amount delivered to the recipient.
//
// The burn fee leaves circulation entirely; the distribution fee is
// credited to no one and instead shrinks the reflection rate, passively
// raising the balance of every non-exempt holder, the caller included,
// if it retains a balance.
func (l *Ledger) Transfer(ctx context.Context, caller, to account.Address, amount types.Amount) (types.Amount, error) {
	l.mu.Lock()
	if err := l.requireUnpaused(caller); err != nil {
		l.mu.Unlock()
		return types.Amount{}, err
	}
	net, burnFee, distFee, err := l.applyTransfer(caller, to, amount)
	l.mu.Unlock()
	if err != nil {
		return types.Amount{}, err
	}

	op := id.New(id.PrefixTransfer)
	l.logger.Info("transfer applied",
		"op", op,
		"from", caller,
		"to", to,
		"amount", amount,
		"net", net,
	)
	l.plugins.EmitTransfer(ctx, &plugin.TransferEvent{
		Op:              op,
		From:            caller,
		To:              to,
		Amount:          amount,
		BurnFee:         burnFee,
		DistributionFee: distFee,
		NetDelivered:    net,
	})
	return net, nil
}

// TransferAll transfers the caller's entire balance, evaluated atomically
// with the pre-call balance.
func (l *Ledger) TransferAll(ctx context.Context, caller, to account.Address) (types.Amount, error) {
	l.mu.Lock()
	if err := l.requireUnpaused(caller); err != nil {
		l.mu.Unlock()
		return types.Amount{}, err
	}
	amount := l.pool.BalanceOf(caller)
	net, burnFee, distFee, err := l.applyTransfer(caller, to, amount)
	l.mu.Unlock()
	if err != nil {
		return types.Amount{}, err
	}

	op := id.New(id.PrefixTransfer)
	l.logger.Info("transfer applied",
		"op", op,
		"from", caller,
		"to", to,
		"amount", amount,
		"net", net,
	)
	l.plugins.EmitTransfer(ctx, &plugin.TransferEvent{
		Op:              op,
		From:            caller,
		To:              to,
		Amount:          amount,
		BurnFee:         burnFee,
		DistributionFee: distFee,
		NetDelivered:    net,
	})
	return net, nil
}

// TransferFrom moves amount from another account using the caller's
// allowance, with the same fee semantics as Transfer. The allowance is
// debited on use.
func (l *Ledger) TransferFrom(ctx context.Context, caller, from, to account.Address, amount types.Amount) (types.Amount, error) {
	l.mu.Lock()
	if err := l.requireUnpaused(caller); err != nil {
		l.mu.Unlock()
		return types.Amount{}, err
	}
	if l.allowances[from][caller].LessThan(amount) {
		l.mu.Unlock()
		return types.Amount{}, ErrAllowanceExceeded
	}
	net, burnFee, distFee, err := l.applyTransfer(from, to, amount)
	if err != nil {
		l.mu.Unlock()
		return types.Amount{}, err
	}
	l.debitAllowance(from, caller, amount)
	l.mu.Unlock()

	op := id.New(id.PrefixTransfer)
	l.logger.Info("transfer applied",
		"op", op,
		"from", from,
		"to", to,
		"spender", caller,
		"amount", amount,
		"net", net,
	)
	l.plugins.EmitTransfer(ctx, &plugin.TransferEvent{
		Op:              op,
		From:            from,
		To:              to,
		Amount:          amount,
		BurnFee:         burnFee,
		DistributionFee: distFee,
		NetDelivered:    net,
	})
	return net, nil
}

// Approve sets the allowance spender may move on behalf of the caller.
// The previous allowance is overwritten, not accumulated.
func (l *Ledger) Approve(_ context.Context, caller, spender account.Address, amount types.Amount) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.allowances[caller] == nil {
		l.allowances[caller] = make(map[account.Address]types.Amount)
	}
	l.allowances[caller][spender] = amount
	return nil
}

// applyTransfer is the single fee-engine path shared by every transfer
// variant. The rate is read once and used for every conversion in the
// call, so debit, credit, burn and redistribution all see one consistent
// view. Callers must hold the lock.
func (l *Ledger) applyTransfer(from, to account.Address, amount types.Amount) (net, burnFee, distFee types.Amount, err error) {
	rate := l.pool.Rate()

	// Fees are exempted by recipient, not sender.
	if !l.pool.IsExempt(to) {
		burnFee, distFee = l.feeSplit(amount)
	}
	net = amount.Sub(burnFee).Sub(distFee)

	if err := l.pool.Debit(from, amount, rate); err != nil {
		return types.Amount{}, types.Amount{}, types.Amount{}, err
	}
	l.pool.Credit(to, net, rate)
	l.pool.Burn(burnFee, rate)
	l.pool.Reflect(distFee, rate)
	return net, burnFee, distFee, nil
}

// debitAllowance reduces an allowance after a successful spend.
// Callers must hold the lock and have checked sufficiency.
func (l *Ledger) debitAllowance(owner, spender account.Address, amount types.Amount) {
	rest := l.allowances[owner][spender].Sub(amount)
	if rest.IsZero() {
		delete(l.allowances[owner], spender)
		if len(l.allowances[owner]) == 0 {
			delete(l.allowances, owner)
		}
		return
	}
	l.allowances[owner][spender] = rest
}
