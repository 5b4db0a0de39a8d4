package validator

import (
	"fmt"
	"os"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"

	"github.com/tranmanhhung/sn111/internal/reward"
)

// State is the validator's persisted scoring state: the step counter, the
// per-uid moving-average scores, and the hotkeys those scores belong to.
// Hotkeys are stored so a replaced registration starts from zero instead of
// inheriting the previous key's score.
type State struct {
	mu      sync.RWMutex
	step    int64
	scores  []float64
	hotkeys []string
}

type stateFile struct {
	Step    int64     `json:"step"`
	Scores  []float64 `json:"scores"`
	Hotkeys []string  `json:"hotkeys"`
}

// LoadState reads state from path. A missing file yields a fresh state.
func LoadState(path string) (*State, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info().Str("path", path).Msg("no saved state found, starting fresh")
			return &State{}, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var sf stateFile
	if err := sonic.Unmarshal(b, &sf); err != nil {
		return nil, fmt.Errorf("unmarshal state file: %w", err)
	}
	if len(sf.Scores) != len(sf.Hotkeys) {
		return nil, fmt.Errorf("corrupt state: %d scores for %d hotkeys", len(sf.Scores), len(sf.Hotkeys))
	}

	return &State{
		step:    sf.Step,
		scores:  sf.Scores,
		hotkeys: sf.Hotkeys,
	}, nil
}

// Save writes the state atomically: temp file then rename.
func (s *State) Save(path string) error {
	s.mu.RLock()
	sf := stateFile{
		Step:    s.step,
		Scores:  append([]float64(nil), s.scores...),
		Hotkeys: append([]string(nil), s.hotkeys...),
	}
	s.mu.RUnlock()

	b, err := sonic.Marshal(sf)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return os.Rename(tmp, path)
}

// SyncHotkeys reconciles scores with the metagraph hotkey set: scores of
// replaced hotkeys reset to zero and the vector grows with new registrations.
func (s *State) SyncHotkeys(hotkeys []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scores := make([]float64, len(hotkeys))
	for uid, hotkey := range hotkeys {
		if uid < len(s.hotkeys) && s.hotkeys[uid] == hotkey && uid < len(s.scores) {
			scores[uid] = s.scores[uid]
		} else if uid < len(s.hotkeys) && s.hotkeys[uid] != hotkey {
			log.Info().Int("uid", uid).Str("hotkey", hotkey).Msg("hotkey replaced, score reset")
		}
	}

	s.scores = scores
	s.hotkeys = append([]string(nil), hotkeys...)
}

// ScoresCopy returns a copy of the score vector.
func (s *State) ScoresCopy() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]float64(nil), s.scores...)
}

// ApplyRewards folds per-round rewards into the scores under the state lock,
// so a concurrent SyncHotkeys cannot be overwritten by a stale copy: a score
// reset between the round's read and write sticks.
func (s *State) ApplyRewards(rewards map[int64]float64, alpha float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores = reward.UpdateScoresEMA(s.scores, rewards, alpha)
}

// SetScores replaces the score vector.
func (s *State) SetScores(scores []float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores = append([]float64(nil), scores...)
}

// Step returns the current scoring step.
func (s *State) Step() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.step
}

// IncrementStep advances the step counter and returns the new value.
func (s *State) IncrementStep() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step++
	return s.step
}
