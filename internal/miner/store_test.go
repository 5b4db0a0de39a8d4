package miner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tranmanhhung/sn111/internal/synapse"
)

func seedReviews() []synapse.Review {
	return []synapse.Review{
		{ID: "r1", PlaceID: "place-1", Author: "ann", Rating: 5, Text: "great"},
		{ID: "r2", PlaceID: "place-1", Author: "bob", Rating: 3, Text: "okay"},
		{ID: "r3", PlaceID: "place-1", Author: "cat", Rating: 4, Text: "fine"},
		{ID: "r4", PlaceID: "place-2", Author: "dan", Rating: 1, Text: "bad"},
	}
}

func TestReviewStore_FetchReviews(t *testing.T) {
	s := NewReviewStore("miner-hotkey")
	s.Add(seedReviews()...)

	resp, err := s.FetchReviews(context.Background(), synapse.ReviewsRequest{
		RequestID: "req-1",
		PlaceID:   "place-1",
		Count:     2,
	})
	if err != nil {
		t.Fatalf("fetch reviews: %v", err)
	}

	if resp.RequestID != "req-1" || resp.MinerHotkey != "miner-hotkey" {
		t.Errorf("response envelope wrong: %+v", resp)
	}
	if len(resp.Reviews) != 2 {
		t.Fatalf("got %d reviews, want 2", len(resp.Reviews))
	}
	for _, r := range resp.Reviews {
		if r.PlaceID != "place-1" {
			t.Errorf("review from wrong place: %+v", r)
		}
	}
}

func TestReviewStore_UnknownPlace(t *testing.T) {
	s := NewReviewStore("miner-hotkey")
	s.Add(seedReviews()...)

	resp, err := s.FetchReviews(context.Background(), synapse.ReviewsRequest{PlaceID: "nowhere", Count: 5})
	if err != nil {
		t.Fatalf("fetch reviews: %v", err)
	}
	if len(resp.Reviews) != 0 || resp.Message == "" {
		t.Errorf("expected empty response with a message, got %+v", resp)
	}
}

func TestReviewStore_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.json")
	data := `[{"id":"r9","place_id":"place-9","author":"eve","rating":4,"text":"nice","language":"en","timestamp":1700000000}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewReviewStore("miner-hotkey")
	if err := s.LoadFile(path); err != nil {
		t.Fatalf("load file: %v", err)
	}

	resp, err := s.FetchReviews(context.Background(), synapse.ReviewsRequest{PlaceID: "place-9", Count: 10})
	if err != nil {
		t.Fatalf("fetch reviews: %v", err)
	}
	if len(resp.Reviews) != 1 || resp.Reviews[0].ID != "r9" {
		t.Errorf("seeded review missing: %+v", resp)
	}

	if err := s.LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
