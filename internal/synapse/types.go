// Package synapse implements the axon wire protocol between validator and
// miners: a signed, optionally zstd-compressed JSON request/response exchange
// carrying review queries and review payloads.
package synapse

import (
	"time"

	"github.com/tranmanhhung/sn111/internal/config"
)

// AuthContext is the fixed suffix of the signed header message. The full
// message is "<hotkey>.<unix timestamp>.<AuthContext>".
const AuthContext = "oneoneone reviews synapse"

// MaxAuthAge bounds how old a signed timestamp header may be.
const MaxAuthAge = 5 * time.Minute

type Config struct {
	config.MinerEnvConfig
	ClientTimeout time.Duration
	RetryMax      int
	RetryWait     time.Duration
}

// ReviewsRequest asks a miner for reviews of one place.
type ReviewsRequest struct {
	RequestID       string `json:"request_id"`
	PlaceID         string `json:"place_id"`
	Category        string `json:"category"`
	Locale          string `json:"locale"`
	Count           int    `json:"count"`
	ValidatorHotkey string `json:"validator_hotkey"`
	Timestamp       int64  `json:"timestamp"`
}

// Review is a single scraped review record.
type Review struct {
	ID        string  `json:"id"`
	PlaceID   string  `json:"place_id"`
	Author    string  `json:"author"`
	Rating    float64 `json:"rating"`
	Text      string  `json:"text"`
	Language  string  `json:"language"`
	Timestamp int64   `json:"timestamp"`
}

// ReviewsResponse is the miner's answer to a ReviewsRequest.
type ReviewsResponse struct {
	RequestID   string   `json:"request_id"`
	MinerHotkey string   `json:"miner_hotkey"`
	Reviews     []Review `json:"reviews"`
	Message     string   `json:"message,omitempty"`
}
