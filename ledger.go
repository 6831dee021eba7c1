package tokenledger

import (
	"context"
	"log/slog"
	"sync"

	"github.com/xraph/tokenledger/access"
	"github.com/xraph/tokenledger/account"
	"github.com/xraph/tokenledger/plugin"
	"github.com/xraph/tokenledger/reflection"
	"github.com/xraph/tokenledger/types"
)

// Ledger is the account-balance engine. Every mutating call runs to
// completion under one lock: no interleaving of partial effects is
// observable, and a failed call leaves no state change behind.
type Ledger struct {
	mu sync.RWMutex

	name     string
	symbol   string
	decimals int
	treasury account.Address

	burnRateUnits         uint32
	distributionRateUnits uint32
	paused                bool

	pool       *reflection.Pool
	grants     *access.Grants
	allowances map[account.Address]map[account.Address]types.Amount

	plugins *plugin.Registry
	logger  *slog.Logger
}

// New creates a ledger from its genesis configuration. The genesis
// account starts holding the entire supply and all three roles.
func New(cfg Config, opts ...Option) (*Ledger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	treasury := cfg.Treasury
	if treasury.IsZero() {
		treasury = cfg.Genesis
	}

	l := &Ledger{
		name:                  cfg.Name,
		symbol:                cfg.Symbol,
		decimals:              cfg.Decimals,
		treasury:              treasury,
		burnRateUnits:         cfg.BurnRateUnits,
		distributionRateUnits: cfg.DistributionRateUnits,
		pool:                  reflection.New(cfg.Genesis, cfg.genesisSupply()),
		grants:                access.NewGrants(),
		allowances:            make(map[account.Address]map[account.Address]types.Amount),
		plugins:               plugin.NewRegistry(),
		logger:                slog.Default(),
	}
	l.grants.Grant(cfg.Genesis, access.AllRoles)

	for _, opt := range opts {
		opt(l)
	}

	l.logger.Info("ledger initialized",
		"name", l.name,
		"symbol", l.symbol,
		"supply", l.pool.TotalSupply(),
		"genesis", cfg.Genesis,
	)
	l.plugins.EmitInit(context.Background(), l)

	return l, nil
}

// Option configures a Ledger instance.
type Option func(*Ledger)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
		l.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(l *Ledger) {
		_ = l.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// Close shuts down the ledger's plugins. The ledger itself has no
// background workers to stop.
func (l *Ledger) Close() error {
	l.plugins.EmitShutdown(context.Background())
	return nil
}

// ──────────────────────────────────────────────────
// Read-only queries (always permitted, pause or not)
// ──────────────────────────────────────────────────

// Name returns the token name.
func (l *Ledger) Name() string { return l.name }

// Symbol returns the ticker symbol.
func (l *Ledger) Symbol() string { return l.symbol }

// Decimals returns the display precision.
func (l *Ledger) Decimals() int { return l.decimals }

// Treasury returns the distribute destination account.
func (l *Ledger) Treasury() account.Address { return l.treasury }

// TotalSupply returns the circulating supply in base units.
func (l *Ledger) TotalSupply() types.Amount {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pool.TotalSupply()
}

// BalanceOf returns the account's true balance at the current rate.
func (l *Ledger) BalanceOf(a account.Address) types.Amount {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pool.BalanceOf(a)
}

// BurnPercent returns the burn fee in units per 1000 tokens.
func (l *Ledger) BurnPercent() uint32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.burnRateUnits
}

// DistributionPercent returns the redistribution fee in units per 1000
// tokens.
func (l *Ledger) DistributionPercent() uint32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.distributionRateUnits
}

// Paused reports whether balance mutations are currently gated.
func (l *Ledger) Paused() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.paused
}

// HasRole reports whether the principal holds the role.
func (l *Ledger) HasRole(a account.Address, role access.Role) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.grants.Has(a, role)
}

// IsNoIncomeFee reports whether incoming transfers to the account bypass
// fees.
func (l *Ledger) IsNoIncomeFee(a account.Address) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pool.IsExempt(a)
}

// Allowance returns the amount spender may still move on behalf of owner.
func (l *Ledger) Allowance(owner, spender account.Address) types.Amount {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.allowances[owner][spender]
}

// ReflectionFromToken converts a token amount to reflection units at the
// current rate without mutating anything. With deductFee, the standard
// burn+distribution split is subtracted from amount first, exactly as a
// transfer of that amount would. Amounts above the total supply are
// rejected to keep the conversion in range.
func (l *Ledger) ReflectionFromToken(amount types.Amount, deductFee bool) (types.Amount, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.pool.TotalSupply().LessThan(amount) {
		return types.Amount{}, ErrInvalidParameter
	}
	rate := l.pool.Rate()
	if deductFee {
		burnFee, distFee := l.feeSplit(amount)
		amount = amount.Sub(burnFee).Sub(distFee)
	}
	return l.pool.ToReflection(amount, rate), nil
}

// TokenFromReflection converts reflection units back to a token amount at
// the current rate. Inverse of ReflectionFromToken for any value obtained
// from it at the same rate.
func (l *Ledger) TokenFromReflection(r types.Amount) types.Amount {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pool.FromReflection(r, l.pool.Rate())
}

// ──────────────────────────────────────────────────
// Guard helpers
// ──────────────────────────────────────────────────

// requireRole fails with ErrUnauthorized unless caller holds role.
// Callers must hold the lock.
func (l *Ledger) requireRole(caller account.Address, role access.Role) error {
	if !l.grants.Has(caller, role) {
		return ErrUnauthorized
	}
	return nil
}

// requireUnpaused fails with ErrPaused while the ledger is paused, unless
// caller holds UNPAUSED. Callers must hold the lock.
func (l *Ledger) requireUnpaused(caller account.Address) error {
	if l.paused && !l.grants.Has(caller, access.RoleUnpaused) {
		return ErrPaused
	}
	return nil
}

// feeSplit computes the burn and redistribution fees for a transfer
// amount. Fees accrue per whole 1000-token chunk, truncating: amounts
// below 1000 pay nothing.
func (l *Ledger) feeSplit(amount types.Amount) (burnFee, distFee types.Amount) {
	unit := amount.Div(types.Units(feeQuantum))
	burnFee = unit.Mul(types.Units(uint64(l.burnRateUnits)))
	distFee = unit.Mul(types.Units(uint64(l.distributionRateUnits)))
	return burnFee, distFee
}
