package tokenledger

import (
	"context"

	"github.com/xraph/tokenledger/access"
	"github.com/xraph/tokenledger/account"
	"github.com/xraph/tokenledger/id"
	"github.com/xraph/tokenledger/plugin"
	"github.com/xraph/tokenledger/types"
)

// MaxBatchSize bounds the number of entries a single batch operation
// will accept.
const MaxBatchSize = 200

// Multisend debits the sum of amounts from the caller and credits each
// recipient its full amount, fee free. The whole batch succeeds or
// nothing moves.
func (l *Ledger) Multisend(ctx context.Context, caller account.Address, recipients []account.Address, amounts []types.Amount) error {
	l.mu.Lock()
	if err := l.requireRole(caller, access.RoleOwner); err != nil {
		l.mu.Unlock()
		return err
	}
	if err := l.requireUnpaused(caller); err != nil {
		l.mu.Unlock()
		return err
	}
	if len(recipients) != len(amounts) {
		l.mu.Unlock()
		return ValidationError{Field: "amounts", Message: "length must match recipients"}
	}
	if len(recipients) > MaxBatchSize {
		l.mu.Unlock()
		return ErrTooManyRecipients
	}

	total := types.Sum(amounts...)
	rate := l.pool.Rate()
	if err := l.pool.Debit(caller, total, rate); err != nil {
		l.mu.Unlock()
		return err
	}
	for i, to := range recipients {
		l.pool.Credit(to, amounts[i], rate)
	}
	l.mu.Unlock()

	op := id.New(id.PrefixSeed)
	l.logger.Info("multisend applied",
		"op", op,
		"from", caller,
		"recipients", len(recipients),
		"total", total,
	)
	l.plugins.EmitSeed(ctx, &plugin.SeedEvent{
		Op:         op,
		From:       caller,
		Recipients: len(recipients),
		Total:      total,
	})
	return nil
}

// BurnBatch burns an amount from each listed account without consuming
// allowances. If any entry fails the whole batch is rolled back.
func (l *Ledger) BurnBatch(ctx context.Context, caller account.Address, accounts []account.Address, amounts []types.Amount) error {
	l.mu.Lock()
	if err := l.requireRole(caller, access.RoleOwner); err != nil {
		l.mu.Unlock()
		return err
	}
	if err := l.requireUnpaused(caller); err != nil {
		l.mu.Unlock()
		return err
	}
	if len(accounts) != len(amounts) {
		l.mu.Unlock()
		return ValidationError{Field: "amounts", Message: "length must match accounts"}
	}
	if len(accounts) > MaxBatchSize {
		l.mu.Unlock()
		return ErrTooManyRecipients
	}

	snap := l.pool.Snapshot()
	events := make([]*plugin.BurnEvent, 0, len(accounts))
	for i, from := range accounts {
		if err := l.applyBurn(from, amounts[i]); err != nil {
			l.pool.Restore(snap)
			l.mu.Unlock()
			return err
		}
		events = append(events, &plugin.BurnEvent{
			Op:     id.New(id.PrefixBurn),
			From:   from,
			Amount: amounts[i],
		})
	}
	l.mu.Unlock()

	l.logger.Info("burn batch applied", "entries", len(accounts))
	for _, ev := range events {
		l.plugins.EmitBurn(ctx, ev)
	}
	return nil
}

// DistributeBatch distributes an amount from each listed account to the
// treasury without consuming allowances. Each entry pays the standard
// fee split. If any entry fails the whole batch is rolled back.
func (l *Ledger) DistributeBatch(ctx context.Context, caller account.Address, accounts []account.Address, amounts []types.Amount) error {
	l.mu.Lock()
	if err := l.requireRole(caller, access.RoleOwner); err != nil {
		l.mu.Unlock()
		return err
	}
	if err := l.requireUnpaused(caller); err != nil {
		l.mu.Unlock()
		return err
	}
	if len(accounts) != len(amounts) {
		l.mu.Unlock()
		return ValidationError{Field: "amounts", Message: "length must match accounts"}
	}
	if len(accounts) > MaxBatchSize {
		l.mu.Unlock()
		return ErrTooManyRecipients
	}

	snap := l.pool.Snapshot()
	events := make([]*plugin.DistributeEvent, 0, len(accounts))
	for i, from := range accounts {
		net, burnFee, distFee, err := l.applyTransfer(from, l.treasury, amounts[i])
		if err != nil {
			l.pool.Restore(snap)
			l.mu.Unlock()
			return err
		}
		events = append(events, &plugin.DistributeEvent{
			Op:              id.New(id.PrefixDistribute),
			From:            from,
			Treasury:        l.treasury,
			Amount:          amounts[i],
			BurnFee:         burnFee,
			DistributionFee: distFee,
			NetDelivered:    net,
		})
	}
	l.mu.Unlock()

	l.logger.Info("distribute batch applied", "entries", len(accounts))
	for _, ev := range events {
		l.plugins.EmitDistribute(ctx, ev)
	}
	return nil
}
