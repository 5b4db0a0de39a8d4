package validator

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadState_MissingFileStartsFresh(t *testing.T) {
	s, err := LoadState(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if s.Step() != 0 || len(s.ScoresCopy()) != 0 {
		t.Fatalf("fresh state not empty: step=%d scores=%v", s.Step(), s.ScoresCopy())
	}
}

func TestState_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s := &State{}
	s.SyncHotkeys([]string{"hk-a", "hk-b"})
	s.SetScores([]float64{0.3, 0.7})
	s.IncrementStep()
	s.IncrementStep()

	if err := s.Save(path); err != nil {
		t.Fatalf("save state: %v", err)
	}

	loaded, err := LoadState(path)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if loaded.Step() != 2 {
		t.Errorf("step = %d, want 2", loaded.Step())
	}
	scores := loaded.ScoresCopy()
	if len(scores) != 2 || scores[0] != 0.3 || scores[1] != 0.7 {
		t.Errorf("scores = %v", scores)
	}
}

func TestLoadState_CorruptLengthMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte(`{"step":1,"scores":[0.5],"hotkeys":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadState(path); err == nil {
		t.Fatal("expected error for mismatched scores/hotkeys")
	}
}

func TestState_ApplyRewardsAfterMidRoundHotkeyReplacement(t *testing.T) {
	s := &State{}
	s.SyncHotkeys([]string{"hk-a", "hk-b"})
	s.SetScores([]float64{0.4, 0.9})

	// a round reads the scores, then the metagraph ticker replaces hk-b
	// before the round folds its rewards back in
	_ = s.ScoresCopy()
	s.SyncHotkeys([]string{"hk-a", "hk-c"})
	s.ApplyRewards(map[int64]float64{1: 1.0}, 0.1)

	scores := s.ScoresCopy()
	if scores[1] != 0.1 {
		t.Errorf("replaced hotkey inherited the old score: %v, want uid 1 = 0.1", scores)
	}

	// a follow-up sync with the same hotkeys must not reset it again
	s.SyncHotkeys([]string{"hk-a", "hk-c"})
	if got := s.ScoresCopy()[1]; got != 0.1 {
		t.Errorf("score lost on resync: %v", got)
	}
}

func TestState_SyncHotkeys(t *testing.T) {
	s := &State{}
	s.SyncHotkeys([]string{"hk-a", "hk-b"})
	s.SetScores([]float64{0.4, 0.6})

	// hk-b replaced by hk-c, one new registration appended
	s.SyncHotkeys([]string{"hk-a", "hk-c", "hk-d"})

	scores := s.ScoresCopy()
	if len(scores) != 3 {
		t.Fatalf("scores length = %d, want 3", len(scores))
	}
	if scores[0] != 0.4 {
		t.Errorf("surviving hotkey lost its score: %v", scores)
	}
	if scores[1] != 0 {
		t.Errorf("replaced hotkey kept a score: %v", scores)
	}
	if scores[2] != 0 {
		t.Errorf("new registration should start at zero: %v", scores)
	}
}
