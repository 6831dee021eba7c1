package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit             []OnInit
	onShutdown         []OnShutdown
	onTransfer         []OnTransfer
	onBurn             []OnBurn
	onDistribute       []OnDistribute
	onSeed             []OnSeed
	onDenomination     []OnDenomination
	onRoleChanged      []OnRoleChanged
	onPauseToggled     []OnPauseToggled
	onExemptionChanged []OnExemptionChanged
	onFeeChanged       []OnFeeChanged
	onRescue           []OnRescue
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnTransfer); ok {
		r.onTransfer = append(r.onTransfer, v)
	}
	if v, ok := p.(OnBurn); ok {
		r.onBurn = append(r.onBurn, v)
	}
	if v, ok := p.(OnDistribute); ok {
		r.onDistribute = append(r.onDistribute, v)
	}
	if v, ok := p.(OnSeed); ok {
		r.onSeed = append(r.onSeed, v)
	}
	if v, ok := p.(OnDenomination); ok {
		r.onDenomination = append(r.onDenomination, v)
	}
	if v, ok := p.(OnRoleChanged); ok {
		r.onRoleChanged = append(r.onRoleChanged, v)
	}
	if v, ok := p.(OnPauseToggled); ok {
		r.onPauseToggled = append(r.onPauseToggled, v)
	}
	if v, ok := p.(OnExemptionChanged); ok {
		r.onExemptionChanged = append(r.onExemptionChanged, v)
	}
	if v, ok := p.(OnFeeChanged); ok {
		r.onFeeChanged = append(r.onFeeChanged, v)
	}
	if v, ok := p.(OnRescue); ok {
		r.onRescue = append(r.onRescue, v)
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", r.getImplementedInterfaces(p),
	)

	return nil
}

// getImplementedInterfaces returns a list of interfaces implemented by the plugin.
func (r *Registry) getImplementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)

	// Check each interface
	checkInterface := func(iface reflect.Type, name string) {
		if v.Implements(iface) {
			interfaces = append(interfaces, name)
		}
	}

	// List all interfaces to check
	checkInterface(reflect.TypeOf((*OnInit)(nil)).Elem(), "OnInit")
	checkInterface(reflect.TypeOf((*OnShutdown)(nil)).Elem(), "OnShutdown")
	checkInterface(reflect.TypeOf((*OnTransfer)(nil)).Elem(), "OnTransfer")
	checkInterface(reflect.TypeOf((*OnBurn)(nil)).Elem(), "OnBurn")
	checkInterface(reflect.TypeOf((*OnDistribute)(nil)).Elem(), "OnDistribute")
	checkInterface(reflect.TypeOf((*OnSeed)(nil)).Elem(), "OnSeed")
	checkInterface(reflect.TypeOf((*OnDenomination)(nil)).Elem(), "OnDenomination")
	checkInterface(reflect.TypeOf((*OnRoleChanged)(nil)).Elem(), "OnRoleChanged")
	checkInterface(reflect.TypeOf((*OnPauseToggled)(nil)).Elem(), "OnPauseToggled")
	checkInterface(reflect.TypeOf((*OnExemptionChanged)(nil)).Elem(), "OnExemptionChanged")
	checkInterface(reflect.TypeOf((*OnFeeChanged)(nil)).Elem(), "OnFeeChanged")
	checkInterface(reflect.TypeOf((*OnRescue)(nil)).Elem(), "OnRescue")

	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, ledger interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, ledger)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitTransfer emits a transfer event.
func (r *Registry) EmitTransfer(ctx context.Context, ev *TransferEvent) {
	r.mu.RLock()
	plugins := r.onTransfer
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnTransfer(ctx, ev)
		}); err != nil {
			r.logger.Warn("plugin OnTransfer failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitBurn emits a burn event.
func (r *Registry) EmitBurn(ctx context.Context, ev *BurnEvent) {
	r.mu.RLock()
	plugins := r.onBurn
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnBurn(ctx, ev)
		}); err != nil {
			r.logger.Warn("plugin OnBurn failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitDistribute emits a distribution event.
func (r *Registry) EmitDistribute(ctx context.Context, ev *DistributeEvent) {
	r.mu.RLock()
	plugins := r.onDistribute
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnDistribute(ctx, ev)
		}); err != nil {
			r.logger.Warn("plugin OnDistribute failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitSeed emits a multisend event.
func (r *Registry) EmitSeed(ctx context.Context, ev *SeedEvent) {
	r.mu.RLock()
	plugins := r.onSeed
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSeed(ctx, ev)
		}); err != nil {
			r.logger.Warn("plugin OnSeed failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitDenomination emits a redenomination event.
func (r *Registry) EmitDenomination(ctx context.Context, ev *DenominationEvent) {
	r.mu.RLock()
	plugins := r.onDenomination
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnDenomination(ctx, ev)
		}); err != nil {
			r.logger.Warn("plugin OnDenomination failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitRoleChanged emits a role change event.
func (r *Registry) EmitRoleChanged(ctx context.Context, ev *RoleEvent) {
	r.mu.RLock()
	plugins := r.onRoleChanged
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnRoleChanged(ctx, ev)
		}); err != nil {
			r.logger.Warn("plugin OnRoleChanged failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitPauseToggled emits a pause toggle event.
func (r *Registry) EmitPauseToggled(ctx context.Context, ev *PauseEvent) {
	r.mu.RLock()
	plugins := r.onPauseToggled
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPauseToggled(ctx, ev)
		}); err != nil {
			r.logger.Warn("plugin OnPauseToggled failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitExemptionChanged emits a fee-exemption change event.
func (r *Registry) EmitExemptionChanged(ctx context.Context, ev *ExemptionEvent) {
	r.mu.RLock()
	plugins := r.onExemptionChanged
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnExemptionChanged(ctx, ev)
		}); err != nil {
			r.logger.Warn("plugin OnExemptionChanged failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitFeeChanged emits a fee parameter change event.
func (r *Registry) EmitFeeChanged(ctx context.Context, ev *FeeChangeEvent) {
	r.mu.RLock()
	plugins := r.onFeeChanged
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnFeeChanged(ctx, ev)
		}); err != nil {
			r.logger.Warn("plugin OnFeeChanged failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitRescue emits a stuck-funds recovery event.
func (r *Registry) EmitRescue(ctx context.Context, ev *RescueEvent) {
	r.mu.RLock()
	plugins := r.onRescue
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnRescue(ctx, ev)
		}); err != nil {
			r.logger.Warn("plugin OnRescue failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// callWithTimeout invokes a plugin hook, bounding how long a misbehaving
// plugin can stall the caller.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
