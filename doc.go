// Package tokenledger provides an in-process account ledger for a fungible
// token with proportional fee redistribution.
//
// Tokenledger is designed as a library, not a service. Import it directly
// into your Go application. It provides:
//
//   - O(1) proportional redistribution of transfer fees to all holders
//   - Deflationary burn fees removed from circulation on every transfer
//   - Role-gated administration (OWNER, ADMIN, UNPAUSED)
//   - Fee-exempt accounts with exact balance freezing
//   - Atomic batch operations (multisend, batch burn, batch distribute)
//   - Pluggable event hooks for audit trails and metrics
//
// # Quick Start
//
// Create a ledger with its genesis configuration:
//
//	import "github.com/xraph/tokenledger"
//
//	genesis := tokenledger.MustParseAddress("0x1a83c8b2fa4f9f6b4f479f30ba539f5a9cc654b1")
//
//	l, err := tokenledger.New(tokenledger.Config{
//	    Name:                  "Example Token",
//	    Symbol:                "EXT",
//	    Decimals:              10,
//	    InitialSupply:         tokenledger.Units(1_500_000_000),
//	    BurnRateUnits:         50, // 5.0%
//	    DistributionRateUnits: 50, // 5.0%
//	    Genesis:               genesis,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer l.Close()
//
//	delivered, err := l.Transfer(ctx, genesis, recipient, tokenledger.Units(2000))
//
// # Core Concepts
//
// Every transfer pays a fee per whole 1000-token chunk: a burn fee that
// shrinks the total supply and a distribution fee that is shared among all
// holders in proportion to their balances. Redistribution costs nothing
// per holder: balances are stored in a scaled reflection space, and accrual
// is realized by shrinking the conversion rate.
//
// Accounts granted a fee exemption receive transfers in full and stop
// accruing redistribution; their balance is frozen at its value on the day
// the exemption was granted.
//
// All arithmetic is unsigned 256-bit integer arithmetic; division
// truncates. Conversions in both directions use the same rate, so reading
// a balance back always returns exactly what the account holds.
//
// # Events
//
// Every mutating operation is stamped with a TypeID operation ID
// (xfer_01h2..., burn_01h2..., dist_01h2...) that flows into structured
// logs and plugin hooks. Register a plugin to observe operations:
//
//	l, err := tokenledger.New(cfg,
//	    tokenledger.WithPlugin(audithook.New(recorder)),
//	)
package tokenledger
