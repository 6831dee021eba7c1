package observability

import (
	"context"
	"testing"

	"github.com/xraph/tokenledger/plugin"
	"github.com/xraph/tokenledger/types"
)

type fakeCounter struct{ value float64 }

func (c *fakeCounter) Inc()          { c.value++ }
func (c *fakeCounter) Add(v float64) { c.value += v }

type fakeHistogram struct{ observed []float64 }

func (h *fakeHistogram) Observe(v float64) { h.observed = append(h.observed, v) }

type fakeFactory struct {
	counters   map[string]*fakeCounter
	histograms map[string]*fakeHistogram
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{
		counters:   make(map[string]*fakeCounter),
		histograms: make(map[string]*fakeHistogram),
	}
}

func (f *fakeFactory) Counter(name string) Counter {
	c := &fakeCounter{}
	f.counters[name] = c
	return c
}

func (f *fakeFactory) Histogram(name string) Histogram {
	h := &fakeHistogram{}
	f.histograms[name] = h
	return h
}

func TestMetricsExtension(t *testing.T) {
	ctx := context.Background()
	factory := newFakeFactory()
	m := NewMetricsExtension(factory)

	if err := m.OnInit(ctx, nil); err != nil {
		t.Fatalf("OnInit: %v", err)
	}

	_ = m.OnTransfer(ctx, &plugin.TransferEvent{
		Amount:          types.Units(2000),
		BurnFee:         types.Units(100),
		DistributionFee: types.Units(100),
	})
	_ = m.OnTransfer(ctx, &plugin.TransferEvent{Amount: types.Units(500)})
	_ = m.OnBurn(ctx, &plugin.BurnEvent{Amount: types.Units(1)})
	_ = m.OnDistribute(ctx, &plugin.DistributeEvent{Amount: types.Units(1)})
	_ = m.OnSeed(ctx, &plugin.SeedEvent{Recipients: 7, Total: types.Units(70)})
	_ = m.OnDenomination(ctx, &plugin.DenominationEvent{Factor: types.Units(10)})
	_ = m.OnRoleChanged(ctx, &plugin.RoleEvent{})
	_ = m.OnPauseToggled(ctx, &plugin.PauseEvent{})
	_ = m.OnExemptionChanged(ctx, &plugin.ExemptionEvent{})
	_ = m.OnFeeChanged(ctx, &plugin.FeeChangeEvent{})
	_ = m.OnRescue(ctx, &plugin.RescueEvent{})

	checks := map[string]float64{
		"tokenledger.transfers":         2,
		"tokenledger.burns":             1,
		"tokenledger.distributions":     1,
		"tokenledger.seeds":             1,
		"tokenledger.denominations":     1,
		"tokenledger.role.changes":      1,
		"tokenledger.pause.toggles":     1,
		"tokenledger.exemption.changes": 1,
		"tokenledger.fee.changes":       1,
		"tokenledger.rescues":           1,
	}
	for name, want := range checks {
		c, ok := factory.counters[name]
		if !ok {
			t.Errorf("counter %s was never created", name)
			continue
		}
		if c.value != want {
			t.Errorf("%s: got %v, want %v", name, c.value, want)
		}
	}

	amounts := factory.histograms["tokenledger.transfer.amount"]
	if len(amounts.observed) != 2 || amounts.observed[0] != 2000 {
		t.Errorf("transfer amount histogram: got %v", amounts.observed)
	}
	batch := factory.histograms["tokenledger.seed.batch.size"]
	if len(batch.observed) != 1 || batch.observed[0] != 7 {
		t.Errorf("seed batch histogram: got %v", batch.observed)
	}
}
