package validator

import (
	"testing"

	"github.com/tranmanhhung/sn111/internal/config"
)

func TestSetChainWeights(t *testing.T) {
	k := &stubKami{metagraph: testMetagraph()}
	k.metagraph.WeightsVersion = 7
	v := testValidator(t, k, newStubRedis(), &stubClient{})
	v.MetagraphData.Set(k.metagraph)
	v.State.SetScores([]float64{0, 0.25, 0.75, 0})

	if err := v.SetChainWeights(); err != nil {
		t.Fatalf("set chain weights: %v", err)
	}

	if len(k.setWeightsIn) != 1 {
		t.Fatalf("expected one emission, got %d", len(k.setWeightsIn))
	}
	params := k.setWeightsIn[0]
	if params.Netuid != 111 || params.VersionKey != 7 {
		t.Errorf("wrong emission params: %+v", params)
	}
	if len(params.Dests) != 2 || params.Dests[0] != 1 || params.Dests[1] != 2 {
		t.Errorf("dests = %v, want [1 2]", params.Dests)
	}
	if params.Weights[0] != 21845 || params.Weights[1] != 65535 {
		t.Errorf("weights = %v, want [21845 65535]", params.Weights)
	}
}

func TestSetChainWeights_RateLimited(t *testing.T) {
	k := &stubKami{metagraph: testMetagraph(), weightsRateLimit: 100}
	v := testValidator(t, k, newStubRedis(), &stubClient{})
	v.State.SetScores([]float64{0, 0.25, 0.75, 0})
	v.SyncBlock() // stub reports block 100

	if err := v.SetChainWeights(); err != nil {
		t.Fatalf("first emission: %v", err)
	}
	// block has not advanced, second emission falls inside the window
	if err := v.SetChainWeights(); err != nil {
		t.Fatalf("rate-limited emission: %v", err)
	}
	if len(k.setWeightsIn) != 1 {
		t.Fatalf("expected one emission inside the rate limit window, got %d", len(k.setWeightsIn))
	}

	// once the chain moves past the window, emission resumes
	v.currentBlock.Store(250)
	if err := v.SetChainWeights(); err != nil {
		t.Fatalf("post-window emission: %v", err)
	}
	if len(k.setWeightsIn) != 2 {
		t.Fatalf("expected emission after the window, got %d", len(k.setWeightsIn))
	}
}

func TestSetChainWeights_AllZeroSkips(t *testing.T) {
	k := &stubKami{metagraph: testMetagraph()}
	v := testValidator(t, k, newStubRedis(), &stubClient{})

	if err := v.SetChainWeights(); err != nil {
		t.Fatalf("set chain weights: %v", err)
	}
	if len(k.setWeightsIn) != 0 {
		t.Errorf("zero scores must not be emitted: %+v", k.setWeightsIn)
	}
}

func TestShouldSetWeights(t *testing.T) {
	v := &Validator{Intervals: config.DevIntervalConfig} // 1m weights / 15s scoring
	for step, want := range map[int64]bool{1: false, 3: false, 4: true, 8: true} {
		if got := v.shouldSetWeights(step); got != want {
			t.Errorf("shouldSetWeights(%d) = %v, want %v", step, got, want)
		}
	}
}

func TestNewValidator(t *testing.T) {
	cfg := &config.ValidatorEnvConfig{
		ChainEnvConfig: config.ChainEnvConfig{Netuid: 111},
		StateFile:      t.TempDir() + "/state.json",
	}

	v, err := NewValidator(cfg, config.DevIntervalConfig, &stubKami{metagraph: testMetagraph()}, nil, &stubClient{}, stubPlaces{}, nil)
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	defer v.Cancel()

	if v.Hotkey != "validator-hotkey" {
		t.Errorf("hotkey = %q", v.Hotkey)
	}

	if _, err := NewValidator(nil, nil, nil, nil, nil, nil, nil); err == nil {
		t.Error("expected error for nil config")
	}
}
