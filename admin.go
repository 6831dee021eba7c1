package tokenledger

import (
	"context"

	"github.com/xraph/tokenledger/access"
	"github.com/xraph/tokenledger/account"
	"github.com/xraph/tokenledger/id"
	"github.com/xraph/tokenledger/plugin"
	"github.com/xraph/tokenledger/types"
)

// ExternalAsset is some other asset the ledger can move on behalf of its
// owner, typically to return tokens sent here by mistake.
type ExternalAsset interface {
	Transfer(ctx context.Context, to account.Address, amount types.Amount) error
}

// GrantRole gives the principal an additional role. Only OWNER may
// manage roles.
func (l *Ledger) GrantRole(ctx context.Context, caller, principal account.Address, role access.Role) error {
	return l.setRole(ctx, caller, principal, role, true)
}

// RevokeRole removes a role from the principal. Only OWNER may manage
// roles. Revoking a role the principal does not hold is a no-op.
func (l *Ledger) RevokeRole(ctx context.Context, caller, principal account.Address, role access.Role) error {
	return l.setRole(ctx, caller, principal, role, false)
}

func (l *Ledger) setRole(ctx context.Context, caller, principal account.Address, role access.Role, grant bool) error {
	l.mu.Lock()
	if err := l.requireRole(caller, access.RoleOwner); err != nil {
		l.mu.Unlock()
		return err
	}
	if !role.Valid() {
		l.mu.Unlock()
		return ValidationError{Field: "role", Message: "unknown role"}
	}
	if grant {
		l.grants.Grant(principal, role)
	} else {
		l.grants.Revoke(principal, role)
	}
	l.mu.Unlock()

	op := id.New(id.PrefixRole)
	l.logger.Info("role changed",
		"op", op,
		"principal", principal,
		"role", role,
		"granted", grant,
	)
	l.plugins.EmitRoleChanged(ctx, &plugin.RoleEvent{
		Op:        op,
		Principal: principal,
		Role:      role,
		Granted:   grant,
	})
	return nil
}

// PauseTrigger toggles the paused state. OWNER or ADMIN may trigger it.
// While paused, only principals holding UNPAUSED can move tokens.
func (l *Ledger) PauseTrigger(ctx context.Context, caller account.Address) (bool, error) {
	l.mu.Lock()
	if err := l.requireRole(caller, access.RoleOwner|access.RoleAdmin); err != nil {
		l.mu.Unlock()
		return false, err
	}
	l.paused = !l.paused
	paused := l.paused
	l.mu.Unlock()

	op := id.New(id.PrefixPause)
	l.logger.Info("pause toggled",
		"op", op,
		"by", caller,
		"paused", paused,
	)
	l.plugins.EmitPauseToggled(ctx, &plugin.PauseEvent{
		Op:     op,
		By:     caller,
		Paused: paused,
	})
	return paused, nil
}

// GrantNoIncomeFee marks the account so incoming transfers to it skip
// fees, and moves it out of the redistribution pool: its balance is
// frozen at its current value and no longer grows with fee
// accrual. Granting twice is a no-op.
func (l *Ledger) GrantNoIncomeFee(ctx context.Context, caller, a account.Address) error {
	l.mu.Lock()
	if err := l.requireRole(caller, access.RoleAdmin); err != nil {
		l.mu.Unlock()
		return err
	}
	if l.pool.IsExempt(a) {
		l.mu.Unlock()
		return nil
	}
	l.pool.SetExempt(a)
	l.mu.Unlock()

	l.emitExemption(ctx, a, true)
	return nil
}

// RevokeNoIncomeFee returns the account to normal fee treatment and
// re-enters it into the redistribution pool at its current balance.
// Revoking twice is a no-op.
func (l *Ledger) RevokeNoIncomeFee(ctx context.Context, caller, a account.Address) error {
	l.mu.Lock()
	if err := l.requireRole(caller, access.RoleAdmin); err != nil {
		l.mu.Unlock()
		return err
	}
	if !l.pool.IsExempt(a) {
		l.mu.Unlock()
		return nil
	}
	l.pool.ClearExempt(a)
	l.mu.Unlock()

	l.emitExemption(ctx, a, false)
	return nil
}

// SetBurnPercent changes the burn fee rate, in tenths of a percent.
// Rates outside [1.0%, 10.0%] are rejected.
func (l *Ledger) SetBurnPercent(ctx context.Context, caller account.Address, units uint32) error {
	return l.setFee(ctx, caller, "burn", units)
}

// SetDistributionPercent changes the redistribution fee rate, in tenths
// of a percent. Rates outside [1.0%, 10.0%] are rejected.
func (l *Ledger) SetDistributionPercent(ctx context.Context, caller account.Address, units uint32) error {
	return l.setFee(ctx, caller, "distribution", units)
}

func (l *Ledger) setFee(ctx context.Context, caller account.Address, parameter string, units uint32) error {
	l.mu.Lock()
	if err := l.requireRole(caller, access.RoleAdmin); err != nil {
		l.mu.Unlock()
		return err
	}
	if units < MinFeeUnits || units > MaxFeeUnits {
		l.mu.Unlock()
		return ValidationError{Field: parameter, Message: "fee rate out of range"}
	}
	var old uint32
	if parameter == "burn" {
		old, l.burnRateUnits = l.burnRateUnits, units
	} else {
		old, l.distributionRateUnits = l.distributionRateUnits, units
	}
	l.mu.Unlock()

	op := id.New(id.PrefixFeeChange)
	l.logger.Info("fee rate changed",
		"op", op,
		"parameter", parameter,
		"old", old,
		"new", units,
	)
	l.plugins.EmitFeeChanged(ctx, &plugin.FeeChangeEvent{
		Op:        op,
		Parameter: parameter,
		OldUnits:  old,
		NewUnits:  units,
	})
	return nil
}

// StuckFundsTransfer moves tokens of some other asset that were sent to
// this ledger by mistake. Only OWNER may rescue, and errors from the
// asset are returned unchanged.
func (l *Ledger) StuckFundsTransfer(ctx context.Context, caller account.Address, asset ExternalAsset, to account.Address, amount types.Amount) error {
	l.mu.RLock()
	err := l.requireRole(caller, access.RoleOwner)
	l.mu.RUnlock()
	if err != nil {
		return err
	}
	if err := asset.Transfer(ctx, to, amount); err != nil {
		return err
	}

	op := id.New(id.PrefixRescue)
	l.logger.Info("stuck funds rescued",
		"op", op,
		"to", to,
		"amount", amount,
	)
	l.plugins.EmitRescue(ctx, &plugin.RescueEvent{
		Op:     op,
		To:     to,
		Amount: amount,
	})
	return nil
}

func (l *Ledger) emitExemption(ctx context.Context, a account.Address, exempt bool) {
	op := id.New(id.PrefixExemption)
	l.logger.Info("fee exemption changed",
		"op", op,
		"account", a,
		"exempt", exempt,
	)
	l.plugins.EmitExemptionChanged(ctx, &plugin.ExemptionEvent{
		Op:      op,
		Account: a,
		Exempt:  exempt,
	})
}
