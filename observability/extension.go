// Package observability provides a metrics extension for the ledger that
// records operation counts and fee volumes through an injected metric
// factory.
package observability

import (
	"context"

	"github.com/xraph/tokenledger/plugin"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin             = (*MetricsExtension)(nil)
	_ plugin.OnInit             = (*MetricsExtension)(nil)
	_ plugin.OnTransfer         = (*MetricsExtension)(nil)
	_ plugin.OnBurn             = (*MetricsExtension)(nil)
	_ plugin.OnDistribute       = (*MetricsExtension)(nil)
	_ plugin.OnSeed             = (*MetricsExtension)(nil)
	_ plugin.OnDenomination     = (*MetricsExtension)(nil)
	_ plugin.OnRoleChanged      = (*MetricsExtension)(nil)
	_ plugin.OnPauseToggled     = (*MetricsExtension)(nil)
	_ plugin.OnExemptionChanged = (*MetricsExtension)(nil)
	_ plugin.OnFeeChanged       = (*MetricsExtension)(nil)
	_ plugin.OnRescue           = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records ledger operation metrics.
// Register it as a plugin to automatically track token movement.
type MetricsExtension struct {
	factory MetricFactory

	// Movement metrics
	Transfers      Counter
	TransferAmount Histogram
	BurnFees       Histogram
	DistFees       Histogram

	// Supply metrics
	Burns         Counter
	Distributions Counter
	Seeds         Counter
	SeedBatchSize Histogram
	Denominations Counter

	// Administration metrics
	RoleChanges      Counter
	PauseToggles     Counter
	ExemptionChanges Counter
	FeeChanges       Counter
	Rescues          Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Movement metrics
		Transfers:      factory.Counter("tokenledger.transfers"),
		TransferAmount: factory.Histogram("tokenledger.transfer.amount"),
		BurnFees:       factory.Histogram("tokenledger.transfer.burn_fee"),
		DistFees:       factory.Histogram("tokenledger.transfer.distribution_fee"),

		// Supply metrics
		Burns:         factory.Counter("tokenledger.burns"),
		Distributions: factory.Counter("tokenledger.distributions"),
		Seeds:         factory.Counter("tokenledger.seeds"),
		SeedBatchSize: factory.Histogram("tokenledger.seed.batch.size"),
		Denominations: factory.Counter("tokenledger.denominations"),

		// Administration metrics
		RoleChanges:      factory.Counter("tokenledger.role.changes"),
		PauseToggles:     factory.Counter("tokenledger.pause.toggles"),
		ExemptionChanges: factory.Counter("tokenledger.exemption.changes"),
		FeeChanges:       factory.Counter("tokenledger.fee.changes"),
		Rescues:          factory.Counter("tokenledger.rescues"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Token movement hooks
// ──────────────────────────────────────────────────

// OnTransfer implements plugin.OnTransfer.
func (m *MetricsExtension) OnTransfer(_ context.Context, ev *plugin.TransferEvent) error {
	m.Transfers.Inc()
	m.TransferAmount.Observe(ev.Amount.Float64())
	m.BurnFees.Observe(ev.BurnFee.Float64())
	m.DistFees.Observe(ev.DistributionFee.Float64())
	return nil
}

// OnBurn implements plugin.OnBurn.
func (m *MetricsExtension) OnBurn(_ context.Context, _ *plugin.BurnEvent) error {
	m.Burns.Inc()
	return nil
}

// OnDistribute implements plugin.OnDistribute.
func (m *MetricsExtension) OnDistribute(_ context.Context, _ *plugin.DistributeEvent) error {
	m.Distributions.Inc()
	return nil
}

// OnSeed implements plugin.OnSeed.
func (m *MetricsExtension) OnSeed(_ context.Context, ev *plugin.SeedEvent) error {
	m.Seeds.Inc()
	m.SeedBatchSize.Observe(float64(ev.Recipients))
	return nil
}

// OnDenomination implements plugin.OnDenomination.
func (m *MetricsExtension) OnDenomination(_ context.Context, _ *plugin.DenominationEvent) error {
	m.Denominations.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Administration hooks
// ──────────────────────────────────────────────────

// OnRoleChanged implements plugin.OnRoleChanged.
func (m *MetricsExtension) OnRoleChanged(_ context.Context, _ *plugin.RoleEvent) error {
	m.RoleChanges.Inc()
	return nil
}

// OnPauseToggled implements plugin.OnPauseToggled.
func (m *MetricsExtension) OnPauseToggled(_ context.Context, _ *plugin.PauseEvent) error {
	m.PauseToggles.Inc()
	return nil
}

// OnExemptionChanged implements plugin.OnExemptionChanged.
func (m *MetricsExtension) OnExemptionChanged(_ context.Context, _ *plugin.ExemptionEvent) error {
	m.ExemptionChanges.Inc()
	return nil
}

// OnFeeChanged implements plugin.OnFeeChanged.
func (m *MetricsExtension) OnFeeChanged(_ context.Context, _ *plugin.FeeChangeEvent) error {
	m.FeeChanges.Inc()
	return nil
}

// OnRescue implements plugin.OnRescue.
func (m *MetricsExtension) OnRescue(_ context.Context, _ *plugin.RescueEvent) error {
	m.Rescues.Inc()
	return nil
}
