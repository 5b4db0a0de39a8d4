// Package miner implements the review miner: an axon server answering signed
// review queries from a local review store, registered on-chain via the
// subtensor gateway.
package miner

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"

	"github.com/tranmanhhung/sn111/internal/synapse"
)

// ReviewStore serves reviews from memory, keyed by place. Production miners
// replace or feed this with their own scraping pipeline; the store only
// defines how responses are assembled.
type ReviewStore struct {
	mu      sync.RWMutex
	byPlace map[string][]synapse.Review
	hotkey  string
}

func NewReviewStore(hotkey string) *ReviewStore {
	return &ReviewStore{
		byPlace: make(map[string][]synapse.Review),
		hotkey:  hotkey,
	}
}

// LoadFile seeds the store from a JSON file holding an array of reviews.
func (s *ReviewStore) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read reviews file: %w", err)
	}

	var reviews []synapse.Review
	if err := sonic.Unmarshal(b, &reviews); err != nil {
		return fmt.Errorf("unmarshal reviews file: %w", err)
	}

	s.Add(reviews...)
	log.Info().Int("reviews", len(reviews)).Str("path", path).Msg("review store seeded")
	return nil
}

// Add inserts reviews into the store.
func (s *ReviewStore) Add(reviews ...synapse.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range reviews {
		if r.PlaceID == "" {
			continue
		}
		s.byPlace[r.PlaceID] = append(s.byPlace[r.PlaceID], r)
	}
}

// FetchReviews answers a query with up to req.Count stored reviews for the
// requested place.
func (s *ReviewStore) FetchReviews(ctx context.Context, req synapse.ReviewsRequest) (synapse.ReviewsResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp := synapse.ReviewsResponse{
		RequestID:   req.RequestID,
		MinerHotkey: s.hotkey,
	}

	stored := s.byPlace[req.PlaceID]
	if len(stored) == 0 {
		resp.Message = "no reviews for place"
		return resp, nil
	}

	n := len(stored)
	if req.Count > 0 && req.Count < n {
		n = req.Count
	}
	resp.Reviews = append(resp.Reviews, stored[:n]...)
	return resp, nil
}
