package tokenledger

import (
	"github.com/xraph/tokenledger/account"
	"github.com/xraph/tokenledger/types"
)

// Fee rates are expressed as units of fee charged per 1000 tokens
// transferred, so 50 means 5%. Rates outside [MinFeeUnits, MaxFeeUnits]
// are rejected.
const (
	MinFeeUnits uint32 = 10
	MaxFeeUnits uint32 = 100

	// feeQuantum is the transfer granularity at which fees accrue:
	// fees are charged per whole 1000-token chunk, truncating. A 2500
	// token transfer pays fees on 2 chunks, not 2.5.
	feeQuantum uint64 = 1000
)

// Config holds the genesis parameters of a ledger. The genesis account
// receives the entire initial supply and all three roles.
type Config struct {
	// Name is the human-readable token name.
	Name string
	// Symbol is the short ticker symbol.
	Symbol string
	// Decimals is the display precision; the stored supply is
	// InitialSupply shifted left by this many decimal digits.
	Decimals int
	// InitialSupply is the genesis supply in whole tokens, before
	// decimal scaling.
	InitialSupply types.Amount
	// BurnRateUnits is the burn fee per 1000 tokens transferred.
	BurnRateUnits uint32
	// DistributionRateUnits is the redistribution fee per 1000 tokens
	// transferred.
	DistributionRateUnits uint32
	// Genesis receives the whole supply and the OWNER, ADMIN and
	// UNPAUSED roles.
	Genesis account.Address
	// Treasury receives the net amount of distribute operations.
	// Defaults to Genesis when zero.
	Treasury account.Address
}

// Validate checks the configuration. All failures match
// ErrInvalidParameter under errors.Is.
func (c Config) Validate() error {
	if c.Name == "" {
		return ValidationError{Field: "Name", Message: "must not be empty"}
	}
	if c.Symbol == "" {
		return ValidationError{Field: "Symbol", Message: "must not be empty"}
	}
	if c.Decimals < 0 || c.Decimals > 30 {
		return ValidationError{Field: "Decimals", Message: "must be in [0, 30]"}
	}
	if c.InitialSupply.IsZero() {
		return ValidationError{Field: "InitialSupply", Message: "must be positive"}
	}
	if err := validateFeeUnits("BurnRateUnits", c.BurnRateUnits); err != nil {
		return err
	}
	if err := validateFeeUnits("DistributionRateUnits", c.DistributionRateUnits); err != nil {
		return err
	}
	if c.Genesis.IsZero() {
		return ValidationError{Field: "Genesis", Message: "must not be the zero address"}
	}
	return nil
}

func validateFeeUnits(field string, units uint32) error {
	if units < MinFeeUnits || units > MaxFeeUnits {
		return ValidationError{Field: field, Message: "must be in [10, 100] fee units per 1000 tokens"}
	}
	return nil
}

// genesisSupply returns the stored supply: InitialSupply * 10^Decimals.
func (c Config) genesisSupply() types.Amount {
	return c.InitialSupply.Mul(pow10(c.Decimals))
}

func pow10(n int) types.Amount {
	p := types.Units(1)
	ten := types.Units(10)
	for i := 0; i < n; i++ {
		p = p.Mul(ten)
	}
	return p
}
