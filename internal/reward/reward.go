// Package reward turns miner review responses into per-uid rewards and folds
// them into the validator's moving-average scores.
package reward

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tranmanhhung/sn111/internal/synapse"
)

const (
	// DefaultAlpha is the EMA smoothing factor for score updates.
	DefaultAlpha = 0.1

	// ConsensusWeight blends the cross-miner consensus component into the
	// per-response base reward.
	ConsensusWeight = 0.2

	// MaxReviewAge rejects reviews older than ten years; anything beyond is
	// treated as fabricated backfill.
	MaxReviewAge = 10 * 365 * 24 * time.Hour

	// ClockSkewTolerance allows slightly-future timestamps from miners with
	// drifting clocks.
	ClockSkewTolerance = 5 * time.Minute
)

// CheckReview reports whether a single review is structurally valid for the
// query it answers.
func CheckReview(req synapse.ReviewsRequest, review synapse.Review, now time.Time) bool {
	if review.ID == "" || review.Author == "" || review.Text == "" {
		return false
	}
	if review.PlaceID != req.PlaceID {
		return false
	}
	if review.Rating < 1 || review.Rating > 5 {
		return false
	}

	ts := time.Unix(review.Timestamp, 0)
	if ts.After(now.Add(ClockSkewTolerance)) {
		return false
	}
	if now.Sub(ts) > MaxReviewAge {
		return false
	}

	return true
}

// ScoreResponse computes the base reward in [0,1] for one miner response:
// the valid-review fraction scaled by volume and novelty.
//
//   - validity: share of returned reviews passing CheckReview, with
//     duplicate IDs inside the response counted once
//   - volume: min(valid, requested) / requested
//   - novelty: share of valid reviews not already seen in earlier rounds
func ScoreResponse(req synapse.ReviewsRequest, resp synapse.ReviewsResponse, now time.Time, seen func(id string) bool) float64 {
	if len(resp.Reviews) == 0 || req.Count <= 0 {
		return 0
	}

	inResponse := make(map[string]bool, len(resp.Reviews))
	valid := 0
	novel := 0
	for _, review := range resp.Reviews {
		if inResponse[review.ID] {
			continue
		}
		inResponse[review.ID] = true

		if !CheckReview(req, review, now) {
			continue
		}
		valid++
		if seen == nil || !seen(review.ID) {
			novel++
		}
	}

	if valid == 0 {
		return 0
	}

	validity := float64(valid) / float64(len(resp.Reviews))

	volume := float64(valid) / float64(req.Count)
	if volume > 1 {
		volume = 1
	}

	novelty := float64(novel) / float64(valid)

	score := validity * volume * novelty
	log.Debug().
		Str("request_id", req.RequestID).
		Str("miner_hotkey", resp.MinerHotkey).
		Int("valid", valid).
		Int("novel", novel).
		Float64("score", score).
		Msg("scored miner response")

	return score
}
