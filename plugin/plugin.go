// Package plugin provides an extensible plugin system for the token ledger.
// Plugins can hook into ledger lifecycle events to extend functionality.
package plugin

import (
	"context"

	"github.com/xraph/tokenledger/access"
	"github.com/xraph/tokenledger/account"
	"github.com/xraph/tokenledger/id"
	"github.com/xraph/tokenledger/types"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Event payloads
// ──────────────────────────────────────────────────

// TransferEvent describes a completed transfer, including the fee split.
type TransferEvent struct {
	Op              id.ID
	From            account.Address
	To              account.Address
	Amount          types.Amount
	BurnFee         types.Amount
	DistributionFee types.Amount
	NetDelivered    types.Amount
}

// BurnEvent describes a completed burn.
type BurnEvent struct {
	Op      id.ID
	From    account.Address
	Spender account.Address // zero unless burned via allowance
	Amount  types.Amount
}

// DistributeEvent describes a completed distribution to the treasury.
type DistributeEvent struct {
	Op              id.ID
	From            account.Address
	Treasury        account.Address
	Amount          types.Amount
	BurnFee         types.Amount
	DistributionFee types.Amount
	NetDelivered    types.Amount
}

// SeedEvent describes a completed multisend.
type SeedEvent struct {
	Op         id.ID
	From       account.Address
	Recipients int
	Total      types.Amount
}

// DenominationEvent describes a completed supply redenomination.
type DenominationEvent struct {
	Op        id.ID
	Factor    types.Amount
	NewSupply types.Amount
}

// RoleEvent describes a role grant or revocation.
type RoleEvent struct {
	Op        id.ID
	Principal account.Address
	Role      access.Role
	Granted   bool
}

// PauseEvent describes a pause state toggle.
type PauseEvent struct {
	Op     id.ID
	By     account.Address
	Paused bool
}

// ExemptionEvent describes a fee-exemption change.
type ExemptionEvent struct {
	Op      id.ID
	Account account.Address
	Exempt  bool
}

// FeeChangeEvent describes a fee parameter change.
type FeeChangeEvent struct {
	Op        id.ID
	Parameter string // "burn" or "distribution"
	OldUnits  uint32
	NewUnits  uint32
}

// RescueEvent describes a stuck-funds recovery through an external asset.
type RescueEvent struct {
	Op     id.ID
	To     account.Address
	Amount types.Amount
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, l interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Balance movement hooks
// ──────────────────────────────────────────────────

// OnTransfer is called after a transfer completes.
type OnTransfer interface {
	Plugin
	OnTransfer(ctx context.Context, ev *TransferEvent) error
}

// OnBurn is called after a burn completes.
type OnBurn interface {
	Plugin
	OnBurn(ctx context.Context, ev *BurnEvent) error
}

// OnDistribute is called after a distribution completes.
type OnDistribute interface {
	Plugin
	OnDistribute(ctx context.Context, ev *DistributeEvent) error
}

// OnSeed is called after a multisend completes.
type OnSeed interface {
	Plugin
	OnSeed(ctx context.Context, ev *SeedEvent) error
}

// OnDenomination is called after a supply redenomination completes.
type OnDenomination interface {
	Plugin
	OnDenomination(ctx context.Context, ev *DenominationEvent) error
}

// ──────────────────────────────────────────────────
// Administrative hooks
// ──────────────────────────────────────────────────

// OnRoleChanged is called after a role grant or revocation.
type OnRoleChanged interface {
	Plugin
	OnRoleChanged(ctx context.Context, ev *RoleEvent) error
}

// OnPauseToggled is called after the pause state flips.
type OnPauseToggled interface {
	Plugin
	OnPauseToggled(ctx context.Context, ev *PauseEvent) error
}

// OnExemptionChanged is called after a fee exemption is granted or revoked.
type OnExemptionChanged interface {
	Plugin
	OnExemptionChanged(ctx context.Context, ev *ExemptionEvent) error
}

// OnFeeChanged is called after a fee parameter changes.
type OnFeeChanged interface {
	Plugin
	OnFeeChanged(ctx context.Context, ev *FeeChangeEvent) error
}

// OnRescue is called after a stuck-funds recovery completes.
type OnRescue interface {
	Plugin
	OnRescue(ctx context.Context, ev *RescueEvent) error
}
