package validator

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/tranmanhhung/sn111/internal/kami"
	"github.com/tranmanhhung/sn111/internal/reward"
	"github.com/tranmanhhung/sn111/internal/synapse"
	chainutils "github.com/tranmanhhung/sn111/internal/utils/chain_utils"
)

// seenReviewsTTL bounds how long the cross-round dedup set for a place lives.
const seenReviewsTTL = 30 * 24 * time.Hour

type minerResult struct {
	uid  int64
	resp synapse.ReviewsResponse
	err  error
}

// Forward runs one full query round: sample a place, query a random subset of
// miners, score the responses, and fold the rewards into the running scores.
func Forward(ctx context.Context, v *Validator) error {
	place, err := v.Places.SamplePlace(ctx)
	if err != nil {
		return fmt.Errorf("sample place: %w", err)
	}

	mg := v.MetagraphData.Snapshot()
	uids := SelectMinerUIDs(mg, v.Hotkey, v.Cfg.SampleSize)
	if len(uids) == 0 {
		log.Warn().Msg("no queryable miners on the metagraph, skipping round")
		return nil
	}

	req := synapse.ReviewsRequest{
		RequestID:       uuid.NewString(),
		PlaceID:         place.PlaceID,
		Category:        place.Category,
		Locale:          place.Locale,
		Count:           v.Cfg.ReviewsPerQuery,
		ValidatorHotkey: v.Hotkey,
		Timestamp:       time.Now().Unix(),
	}
	log.Info().
		Str("request_id", req.RequestID).
		Str("place_id", req.PlaceID).
		Str("place_name", place.Name).
		Int("miners", len(uids)).
		Msg("starting query round")

	results := v.queryMiners(ctx, mg, uids, req)
	rewards := v.scoreRound(ctx, req, results)

	v.State.ApplyRewards(rewards, reward.DefaultAlpha)
	step := v.State.IncrementStep()

	if err := v.State.Save(v.Cfg.StateFile); err != nil {
		log.Error().Err(err).Msg("failed to persist validator state")
	}

	if v.shouldSetWeights(step) {
		if err := v.SetChainWeights(); err != nil {
			log.Error().Err(err).Msg("weight emission failed")
		}
	}
	return nil
}

// SelectMinerUIDs filters the metagraph down to queryable miner uids and
// returns a random sample of at most sampleSize of them.
func SelectMinerUIDs(mg kami.SubnetMetagraph, ownHotkey string, sampleSize int) []int64 {
	candidates := make([]int64, 0, len(mg.Hotkeys))
	for uid, hotkey := range mg.Hotkeys {
		if hotkey == ownHotkey {
			continue
		}
		if uid < len(mg.Active) && !mg.Active[uid] {
			continue
		}
		if uid >= len(mg.Axons) || mg.Axons[uid].IP == "" || mg.Axons[uid].Port <= 0 {
			continue
		}
		alpha, tao := 0.0, 0.0
		if uid < len(mg.AlphaStake) {
			alpha = mg.AlphaStake[uid]
		}
		if uid < len(mg.TaoStake) {
			tao = mg.TaoStake[uid]
		}
		if !chainutils.CheckIfMiner(alpha, tao) {
			continue
		}
		candidates = append(candidates, int64(uid))
	}

	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if sampleSize > 0 && len(candidates) > sampleSize {
		candidates = candidates[:sampleSize]
	}
	return candidates
}

func (v *Validator) queryMiners(ctx context.Context, mg kami.SubnetMetagraph, uids []int64, req synapse.ReviewsRequest) []minerResult {
	results := make([]minerResult, len(uids))
	var wg sync.WaitGroup
	for i, uid := range uids {
		wg.Add(1)
		go func(i int, uid int64) {
			defer wg.Done()
			axon := mg.Axons[uid]
			url := fmt.Sprintf("http://%s:%d/reviews", axon.IP, axon.Port)
			resp, err := v.Client.GetReviews(ctx, url, req)
			results[i] = minerResult{uid: uid, resp: resp, err: err}
		}(i, uid)
	}
	wg.Wait()
	return results
}

// scoreRound computes per-uid rewards for one round's responses: the base
// reward per response blended with the cross-miner rating consensus, then
// records the novel review ids so later rounds see them as repeats.
func (v *Validator) scoreRound(ctx context.Context, req synapse.ReviewsRequest, results []minerResult) map[int64]float64 {
	now := time.Now()
	seenKey := "seen_reviews:" + req.PlaceID
	seen := func(id string) bool {
		if v.Redis == nil {
			return false
		}
		member, err := v.Redis.SIsMember(ctx, seenKey, id)
		if err != nil {
			log.Warn().Err(err).Msg("review dedup lookup failed")
			return false
		}
		return member
	}

	base := make([]float64, len(results))
	histograms := mat.NewDense(len(results), 5, nil)
	newIDs := make([]string, 0)
	for i, res := range results {
		if res.err != nil {
			log.Warn().Err(res.err).Int64("uid", res.uid).Msg("miner query failed")
			continue
		}
		base[i] = reward.ScoreResponse(req, res.resp, now, seen)
		histograms.SetRow(i, reward.RatingHistogram(res.resp.Reviews))

		for _, r := range res.resp.Reviews {
			if reward.CheckReview(req, r, now) && !seen(r.ID) {
				newIDs = append(newIDs, r.ID)
			}
		}
	}

	combined := reward.CombineScores(base, reward.ConsensusScores(histograms))
	rewards := make(map[int64]float64, len(results))
	for i, res := range results {
		rewards[res.uid] = combined[i]
	}

	if v.Redis != nil && len(newIDs) > 0 {
		if _, err := v.Redis.SAdd(ctx, seenKey, newIDs...); err != nil {
			log.Warn().Err(err).Msg("failed to record seen reviews")
		} else if err := v.Redis.Expire(ctx, seenKey, seenReviewsTTL); err != nil {
			log.Warn().Err(err).Msg("failed to set seen reviews ttl")
		}
	}

	return rewards
}
