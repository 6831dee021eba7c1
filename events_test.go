package tokenledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xraph/tokenledger/access"
	"github.com/xraph/tokenledger/plugin"
)

// eventLog captures every event kind the ledger emits.
type eventLog struct {
	transfers     []*plugin.TransferEvent
	burns         []*plugin.BurnEvent
	distributions []*plugin.DistributeEvent
	seeds         []*plugin.SeedEvent
	denominations []*plugin.DenominationEvent
	roles         []*plugin.RoleEvent
	pauses        []*plugin.PauseEvent
	exemptions    []*plugin.ExemptionEvent
	fees          []*plugin.FeeChangeEvent
}

func (e *eventLog) Name() string { return "event-log" }

func (e *eventLog) OnTransfer(_ context.Context, ev *plugin.TransferEvent) error {
	e.transfers = append(e.transfers, ev)
	return nil
}

func (e *eventLog) OnBurn(_ context.Context, ev *plugin.BurnEvent) error {
	e.burns = append(e.burns, ev)
	return nil
}

func (e *eventLog) OnDistribute(_ context.Context, ev *plugin.DistributeEvent) error {
	e.distributions = append(e.distributions, ev)
	return nil
}

func (e *eventLog) OnSeed(_ context.Context, ev *plugin.SeedEvent) error {
	e.seeds = append(e.seeds, ev)
	return nil
}

func (e *eventLog) OnDenomination(_ context.Context, ev *plugin.DenominationEvent) error {
	e.denominations = append(e.denominations, ev)
	return nil
}

func (e *eventLog) OnRoleChanged(_ context.Context, ev *plugin.RoleEvent) error {
	e.roles = append(e.roles, ev)
	return nil
}

func (e *eventLog) OnPauseToggled(_ context.Context, ev *plugin.PauseEvent) error {
	e.pauses = append(e.pauses, ev)
	return nil
}

func (e *eventLog) OnExemptionChanged(_ context.Context, ev *plugin.ExemptionEvent) error {
	e.exemptions = append(e.exemptions, ev)
	return nil
}

func (e *eventLog) OnFeeChanged(_ context.Context, ev *plugin.FeeChangeEvent) error {
	e.fees = append(e.fees, ev)
	return nil
}

func TestLedgerEmitsEvents(t *testing.T) {
	ctx := context.Background()
	log := &eventLog{}
	l := newTestLedger(t, WithPlugin(log))

	_, err := l.Transfer(ctx, owner, alice, u(2000))
	require.NoError(t, err)
	require.NoError(t, l.Burn(ctx, owner, u(100)))
	require.NoError(t, l.Distribute(ctx, owner, u(990)))
	require.NoError(t, l.GrantRole(ctx, owner, alice, access.RoleAdmin))
	_, err = l.PauseTrigger(ctx, owner)
	require.NoError(t, err)
	_, err = l.PauseTrigger(ctx, owner)
	require.NoError(t, err)
	require.NoError(t, l.GrantNoIncomeFee(ctx, owner, bob))
	require.NoError(t, l.SetBurnPercent(ctx, owner, 60))

	require.Len(t, log.transfers, 1)
	tr := log.transfers[0]
	require.Equal(t, owner, tr.From)
	require.Equal(t, alice, tr.To)
	require.True(t, tr.Amount.Equal(u(2000)))
	require.True(t, tr.BurnFee.Equal(u(100)))
	require.True(t, tr.DistributionFee.Equal(u(100)))
	require.True(t, tr.NetDelivered.Equal(u(1800)))
	require.False(t, tr.Op.IsNil())
	require.Equal(t, "xfer", string(tr.Op.Prefix()))

	require.Len(t, log.burns, 1)
	require.True(t, log.burns[0].Spender.IsZero())

	require.Len(t, log.distributions, 1)
	require.Equal(t, treasuryAddr, log.distributions[0].Treasury)
	require.True(t, log.distributions[0].NetDelivered.Equal(u(990)))

	require.Len(t, log.roles, 1)
	require.True(t, log.roles[0].Granted)
	require.Equal(t, access.RoleAdmin, log.roles[0].Role)

	require.Len(t, log.pauses, 2)
	require.True(t, log.pauses[0].Paused)
	require.False(t, log.pauses[1].Paused)

	require.Len(t, log.exemptions, 1)
	require.True(t, log.exemptions[0].Exempt)

	require.Len(t, log.fees, 1)
	require.Equal(t, "burn", log.fees[0].Parameter)
	require.Equal(t, uint32(50), log.fees[0].OldUnits)
	require.Equal(t, uint32(60), log.fees[0].NewUnits)
}

func TestFailedOperationEmitsNothing(t *testing.T) {
	ctx := context.Background()
	log := &eventLog{}
	l := newTestLedger(t, WithPlugin(log))

	_, err := l.Transfer(ctx, alice, bob, u(1))
	require.ErrorIs(t, err, ErrInsufficientBalance)
	require.Empty(t, log.transfers)
}

func TestBatchEmitsPerEntry(t *testing.T) {
	ctx := context.Background()
	log := &eventLog{}
	l := newTestLedger(t, WithPlugin(log))

	require.NoError(t, l.Multisend(ctx, owner,
		[]Address{alice, bob},
		[]Amount{u(1000), u(2000)},
	))
	require.NoError(t, l.BurnBatch(ctx, owner,
		[]Address{alice, bob},
		[]Amount{u(100), u(200)},
	))

	require.Len(t, log.seeds, 1)
	require.Equal(t, 2, log.seeds[0].Recipients)
	require.True(t, log.seeds[0].Total.Equal(u(3000)))

	require.Len(t, log.burns, 2)
	require.True(t, log.burns[0].Amount.Equal(u(100)))
	require.True(t, log.burns[1].Amount.Equal(u(200)))
}
