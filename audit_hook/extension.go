// Package audithook bridges ledger events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not depend on
// any particular audit store. Callers inject a RecorderFunc adapter that
// bridges to their backend at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xraph/tokenledger/plugin"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin             = (*Extension)(nil)
	_ plugin.OnTransfer         = (*Extension)(nil)
	_ plugin.OnBurn             = (*Extension)(nil)
	_ plugin.OnDistribute       = (*Extension)(nil)
	_ plugin.OnSeed             = (*Extension)(nil)
	_ plugin.OnDenomination     = (*Extension)(nil)
	_ plugin.OnRoleChanged      = (*Extension)(nil)
	_ plugin.OnPauseToggled     = (*Extension)(nil)
	_ plugin.OnExemptionChanged = (*Extension)(nil)
	_ plugin.OnFeeChanged       = (*Extension)(nil)
	_ plugin.OnRescue           = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement. It is
// defined locally so that audithook does not import any storage module;
// callers inject the concrete backend at wiring time.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges ledger events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Token movement hooks
// ──────────────────────────────────────────────────

// OnTransfer implements plugin.OnTransfer.
func (e *Extension) OnTransfer(ctx context.Context, ev *plugin.TransferEvent) error {
	return e.record(ctx, ActionTransfer, SeverityInfo,
		ResourceAccount, ev.Op.String(), CategoryMovement,
		"from", ev.From.String(),
		"to", ev.To.String(),
		"amount", ev.Amount.String(),
		"burn_fee", ev.BurnFee.String(),
		"distribution_fee", ev.DistributionFee.String(),
		"net", ev.NetDelivered.String(),
	)
}

// OnBurn implements plugin.OnBurn.
func (e *Extension) OnBurn(ctx context.Context, ev *plugin.BurnEvent) error {
	meta := []any{
		"from", ev.From.String(),
		"amount", ev.Amount.String(),
	}
	if !ev.Spender.IsZero() {
		meta = append(meta, "spender", ev.Spender.String())
	}
	return e.record(ctx, ActionBurn, SeverityInfo,
		ResourceSupply, ev.Op.String(), CategorySupply, meta...)
}

// OnDistribute implements plugin.OnDistribute.
func (e *Extension) OnDistribute(ctx context.Context, ev *plugin.DistributeEvent) error {
	return e.record(ctx, ActionDistribute, SeverityInfo,
		ResourceAccount, ev.Op.String(), CategoryMovement,
		"from", ev.From.String(),
		"treasury", ev.Treasury.String(),
		"amount", ev.Amount.String(),
		"net", ev.NetDelivered.String(),
	)
}

// OnSeed implements plugin.OnSeed.
func (e *Extension) OnSeed(ctx context.Context, ev *plugin.SeedEvent) error {
	return e.record(ctx, ActionSeed, SeverityInfo,
		ResourceAccount, ev.Op.String(), CategoryMovement,
		"from", ev.From.String(),
		"recipients", ev.Recipients,
		"total", ev.Total.String(),
	)
}

// ──────────────────────────────────────────────────
// Supply hooks
// ──────────────────────────────────────────────────

// OnDenomination implements plugin.OnDenomination.
func (e *Extension) OnDenomination(ctx context.Context, ev *plugin.DenominationEvent) error {
	return e.record(ctx, ActionDenomination, SeverityWarning,
		ResourceSupply, ev.Op.String(), CategorySupply,
		"factor", ev.Factor.String(),
		"new_supply", ev.NewSupply.String(),
	)
}

// ──────────────────────────────────────────────────
// Administration hooks
// ──────────────────────────────────────────────────

// OnRoleChanged implements plugin.OnRoleChanged.
func (e *Extension) OnRoleChanged(ctx context.Context, ev *plugin.RoleEvent) error {
	action := ActionRoleRevoked
	if ev.Granted {
		action = ActionRoleGranted
	}
	return e.record(ctx, action, SeverityWarning,
		ResourceRole, ev.Op.String(), CategoryAccess,
		"principal", ev.Principal.String(),
		"role", ev.Role.String(),
	)
}

// OnPauseToggled implements plugin.OnPauseToggled.
func (e *Extension) OnPauseToggled(ctx context.Context, ev *plugin.PauseEvent) error {
	action := ActionUnpaused
	if ev.Paused {
		action = ActionPaused
	}
	return e.record(ctx, action, SeverityWarning,
		ResourceLedger, ev.Op.String(), CategoryAccess,
		"by", ev.By.String(),
	)
}

// OnExemptionChanged implements plugin.OnExemptionChanged.
func (e *Extension) OnExemptionChanged(ctx context.Context, ev *plugin.ExemptionEvent) error {
	action := ActionExemptionLifted
	if ev.Exempt {
		action = ActionExemptionSet
	}
	return e.record(ctx, action, SeverityInfo,
		ResourceAccount, ev.Op.String(), CategoryConfig,
		"account", ev.Account.String(),
	)
}

// OnFeeChanged implements plugin.OnFeeChanged.
func (e *Extension) OnFeeChanged(ctx context.Context, ev *plugin.FeeChangeEvent) error {
	return e.record(ctx, ActionFeeChanged, SeverityWarning,
		ResourceFee, ev.Op.String(), CategoryConfig,
		"parameter", ev.Parameter,
		"old_units", ev.OldUnits,
		"new_units", ev.NewUnits,
	)
}

// OnRescue implements plugin.OnRescue.
func (e *Extension) OnRescue(ctx context.Context, ev *plugin.RescueEvent) error {
	return e.record(ctx, ActionRescue, SeverityWarning,
		ResourceLedger, ev.Op.String(), CategoryConfig,
		"to", ev.To.String(),
		"amount", ev.Amount.String(),
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity string,
	resource, resourceID, category string,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    OutcomeSuccess,
		Severity:   severity,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
