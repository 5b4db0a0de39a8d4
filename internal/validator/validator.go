// Package validator implements the scoring validator: it keeps a metagraph
// snapshot fresh, runs query rounds against miner axons, folds rewards into
// moving-average scores, and periodically emits them as chain weights.
package validator

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/zap"

	"github.com/tranmanhhung/sn111/internal/config"
	"github.com/tranmanhhung/sn111/internal/kami"
	"github.com/tranmanhhung/sn111/internal/placesapi"
	"github.com/tranmanhhung/sn111/internal/synapse"
	"github.com/tranmanhhung/sn111/internal/utils/redis"
)

// SynapseClientInterface is the miner-facing surface the round logic needs.
type SynapseClientInterface interface {
	GetReviews(ctx context.Context, url string, req synapse.ReviewsRequest) (synapse.ReviewsResponse, error)
}

// RoundFunc runs one query round. The production round lives in forward.go;
// tests swap in their own.
type RoundFunc func(ctx context.Context, v *Validator) error

// MetagraphData guards the shared metagraph snapshot.
type MetagraphData struct {
	mu        sync.RWMutex
	metagraph kami.SubnetMetagraph
}

func (m *MetagraphData) Set(mg kami.SubnetMetagraph) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metagraph = mg
}

func (m *MetagraphData) Snapshot() kami.SubnetMetagraph {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.metagraph
}

type Validator struct {
	Cfg       *config.ValidatorEnvConfig
	Intervals *config.IntervalConfig

	Kami   kami.KamiInterface
	Redis  redis.RedisInterface
	Client SynapseClientInterface
	Places placesapi.PlacesInterface
	Audit  *zap.Logger

	// Hotkey is the validator's own SS58 address, excluded from querying.
	Hotkey string

	State         *State
	MetagraphData MetagraphData
	currentBlock  atomic.Int64
	lastEmitBlock atomic.Int64

	RoundFunc RoundFunc

	Ctx    context.Context
	Cancel context.CancelFunc
	Wg     sync.WaitGroup

	roundInProgress atomic.Bool
}

func NewValidator(
	cfg *config.ValidatorEnvConfig,
	intervals *config.IntervalConfig,
	kamiClient kami.KamiInterface,
	redisClient redis.RedisInterface,
	synapseClient SynapseClientInterface,
	places placesapi.PlacesInterface,
	audit *zap.Logger,
) (*Validator, error) {
	if cfg == nil || intervals == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if kamiClient == nil {
		return nil, fmt.Errorf("kami client cannot be nil")
	}

	keyring, err := kamiClient.GetKeyringPair()
	if err != nil {
		return nil, fmt.Errorf("get keyring pair: %w", err)
	}
	hotkey := keyring.Data.KeyringPair.Address
	if hotkey == "" {
		return nil, fmt.Errorf("gateway returned empty hotkey address")
	}

	state, err := LoadState(cfg.StateFile)
	if err != nil {
		return nil, fmt.Errorf("load validator state: %w", err)
	}
	log.Info().
		Str("hotkey", hotkey).
		Int64("step", state.Step()).
		Int("scores", len(state.ScoresCopy())).
		Msg("validator state loaded")

	ctx, cancel := context.WithCancel(context.Background())
	v := &Validator{
		Cfg:       cfg,
		Intervals: intervals,
		Kami:      kamiClient,
		Redis:     redisClient,
		Client:    synapseClient,
		Places:    places,
		Audit:     audit,
		Hotkey:    hotkey,
		State:     state,
		RoundFunc: Forward,
		Ctx:       ctx,
		Cancel:    cancel,
	}
	return v, nil
}

// Start performs an initial metagraph sync and launches the background loops.
func (v *Validator) Start() error {
	if err := v.SyncMetagraph(); err != nil {
		return fmt.Errorf("initial metagraph sync: %w", err)
	}
	v.SyncBlock()

	v.runTicker(v.Intervals.MetagraphInterval, func() {
		if err := v.SyncMetagraph(); err != nil {
			log.Error().Err(err).Msg("metagraph sync failed")
		}
	})
	v.runTicker(v.Intervals.BlockInterval, v.SyncBlock)
	v.runTicker(v.Intervals.ForwardInterval, v.executeRound)
	v.runTicker(v.Intervals.HeartbeatInterval, v.heartbeat)

	log.Info().Int("netuid", v.Cfg.Netuid).Str("hotkey", v.Hotkey).Msg("validator started")
	return nil
}

// Stop cancels the loops, waits for them to drain, and persists state.
func (v *Validator) Stop() {
	v.Cancel()
	v.Wg.Wait()

	if err := v.State.Save(v.Cfg.StateFile); err != nil {
		log.Error().Err(err).Msg("failed to save validator state on shutdown")
	}
	if v.Audit != nil {
		_ = v.Audit.Sync()
	}
	log.Info().Msg("validator stopped")
}

func (v *Validator) runTicker(interval time.Duration, fn func()) {
	v.Wg.Add(1)
	go func() {
		defer v.Wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-v.Ctx.Done():
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
}

// SyncMetagraph refreshes the metagraph snapshot and reconciles the score
// vector against the current hotkey set.
func (v *Validator) SyncMetagraph() error {
	res, err := v.Kami.GetMetagraph(v.Cfg.Netuid)
	if err != nil {
		return err
	}

	v.MetagraphData.Set(res.Data)
	v.State.SyncHotkeys(res.Data.Hotkeys)

	log.Debug().
		Int("netuid", res.Data.Netuid).
		Int("num_uids", res.Data.NumUids).
		Int("block", res.Data.Block).
		Msg("metagraph synced")
	return nil
}

// SyncBlock refreshes the cached latest block number.
func (v *Validator) SyncBlock() {
	res, err := v.Kami.GetLatestBlock()
	if err != nil {
		log.Error().Err(err).Msg("latest block sync failed")
		return
	}
	v.currentBlock.Store(int64(res.Data.BlockNumber))
}

// CurrentBlock returns the most recently synced block number.
func (v *Validator) CurrentBlock() int64 {
	return v.currentBlock.Load()
}

func (v *Validator) executeRound() {
	if !v.roundInProgress.CompareAndSwap(false, true) {
		log.Warn().Msg("previous round still running, skipping this tick")
		return
	}
	defer v.roundInProgress.Store(false)

	if err := v.RoundFunc(v.Ctx, v); err != nil {
		log.Error().Err(err).Msg("query round failed")
	}
}

func (v *Validator) heartbeat() {
	log.Info().
		Str("timestamp", time.Now().Format(time.RFC3339)).
		Int64("step", v.State.Step()).
		Int64("block", v.CurrentBlock()).
		Msg("validator running")
}
