package validator

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"go.uber.org/zap"

	"github.com/tranmanhhung/sn111/internal/kami"
	"github.com/tranmanhhung/sn111/internal/reward"
	chainutils "github.com/tranmanhhung/sn111/internal/utils/chain_utils"
)

// shouldSetWeights gates weight emission to every
// WeightInterval/ScoringInterval scoring steps.
func (v *Validator) shouldSetWeights(step int64) bool {
	stepsPerEmit := int64(v.Intervals.WeightInterval / v.Intervals.ScoringInterval)
	if stepsPerEmit <= 0 {
		stepsPerEmit = 1
	}
	return step%stepsPerEmit == 0
}

// SetChainWeights normalizes the current scores and submits them on-chain as
// u16 weights, recording the emission in the audit log. Emissions inside the
// subnet's weightsRateLimit window are skipped; the chain would reject them.
func (v *Validator) SetChainWeights() error {
	if hp, err := v.Kami.GetSubnetHyperparams(v.Cfg.Netuid); err != nil {
		log.Warn().Err(err).Msg("hyperparams unavailable, skipping rate limit check")
	} else if last := v.lastEmitBlock.Load(); last > 0 {
		if elapsed := v.CurrentBlock() - last; elapsed < int64(hp.Data.WeightsRateLimit) {
			log.Info().
				Int64("blocks_since_emit", elapsed).
				Int("rate_limit", hp.Data.WeightsRateLimit).
				Msg("inside weights rate limit window, skipping emission")
			return nil
		}
	}

	scores := chainutils.ClampNegativeWeights(v.State.ScoresCopy())
	normalized := reward.L1Normalize(scores)

	uids := make([]int64, len(normalized))
	for i := range uids {
		uids[i] = int64(i)
	}

	weightUids, weightVals, err := chainutils.ConvertWeightsAndUidsForEmit(uids, normalized)
	if err != nil {
		return fmt.Errorf("convert weights for emit: %w", err)
	}
	if len(weightUids) == 0 {
		log.Warn().Msg("all weights rounded to zero, skipping emission")
		return nil
	}

	mg := v.MetagraphData.Snapshot()
	res, err := v.Kami.SetWeights(kami.SetWeightsParams{
		Netuid:     v.Cfg.Netuid,
		Dests:      weightUids,
		Weights:    weightVals,
		VersionKey: mg.WeightsVersion,
	})
	if err != nil {
		return fmt.Errorf("set weights: %w", err)
	}
	v.lastEmitBlock.Store(v.CurrentBlock())

	log.Info().
		Int("uids", len(weightUids)).
		Str("extrinsic", res.Data).
		Msg("weights emitted")

	if v.Audit != nil {
		v.Audit.Info("weights_emitted",
			zap.Int64("step", v.State.Step()),
			zap.Int64("block", v.CurrentBlock()),
			zap.Int("netuid", v.Cfg.Netuid),
			zap.Ints("uids", weightUids),
			zap.Ints("weights", weightVals),
			zap.Int("version_key", mg.WeightsVersion),
			zap.String("extrinsic", res.Data),
		)
	}
	return nil
}
