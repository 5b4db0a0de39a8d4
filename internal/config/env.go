// Package config defines environment configuration structs and loaders.
package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type AppConfig struct {
	ChainEnvConfig
	WalletEnvConfig
	KamiEnvConfig
	ServerEnvConfig
	ClientEnvConfig
	RedisEnvConfig
	PlacesEnvConfig
	MinerEnvConfig
	ValidatorEnvConfig
}

// LoadConfig parses the whole application configuration from the environment.
// Every field carries a default, so an empty environment yields a working dev
// configuration.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ChainEnvConfig holds chain-specific environment values.
type ChainEnvConfig struct {
	Netuid int `env:"NETUID" envDefault:"111"`
}

// WalletEnvConfig holds wallet key configuration.
type WalletEnvConfig struct {
	WalletHotkey  string `env:"WALLET_HOTKEY" envDefault:"default"`
	WalletColdkey string `env:"WALLET_COLDKEY" envDefault:"default"`
	BittensorDir  string `env:"BITTENSOR_DIR" envDefault:"~/.bittensor"`
}

// KamiEnvConfig contains the subtensor gateway target and wallet keys.
type KamiEnvConfig struct {
	WalletEnvConfig
	SubtensorNetwork string `env:"SUBTENSOR_NETWORK" envDefault:"finney"`
	KamiHost         string `env:"KAMI_HOST" envDefault:"127.0.0.1"`
	KamiPort         string `env:"KAMI_PORT" envDefault:"3000"`
}

// ServerEnvConfig configures the axon server.
type ServerEnvConfig struct {
	Address       string `env:"AXON_IP" envDefault:"127.0.0.1"`
	Port          int    `env:"AXON_PORT" envDefault:"8091"`
	BodySizeLimit int    `env:"SERVER_BODY_LIMIT" envDefault:"4194304"`
}

// ClientEnvConfig configures the synapse client.
type ClientEnvConfig struct {
	ClientTimeout time.Duration `env:"CLIENT_TIMEOUT" envDefault:"30s"`
	RetryMax      int           `env:"CLIENT_RETRY_MAX" envDefault:"2"`
	RetryWait     time.Duration `env:"CLIENT_RETRY_WAIT" envDefault:"500ms"`
}

// RedisEnvConfig configures the Redis connection.
type RedisEnvConfig struct {
	RedisHost     string `env:"REDIS_HOST" envDefault:"127.0.0.1"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisUsername string `env:"REDIS_USERNAME" envDefault:""`
}

// PlacesEnvConfig configures the place pool service used for query generation.
type PlacesEnvConfig struct {
	PlacesAPIUrl  string `env:"PLACES_API_URL" envDefault:"http://localhost:5003"`
	PlacesTimeout time.Duration `env:"PLACES_TIMEOUT" envDefault:"10s"`
}

// MinerEnvConfig configures the miner runtime.
type MinerEnvConfig struct {
	ChainEnvConfig
	ServerEnvConfig
	ReviewsFile string `env:"REVIEWS_FILE" envDefault:""`
}

// ValidatorEnvConfig configures the validator runtime.
type ValidatorEnvConfig struct {
	ChainEnvConfig
	ClientEnvConfig
	Environment     string `env:"ENVIRONMENT" envDefault:"dev"`
	StateFile       string `env:"VALIDATOR_STATE_FILE" envDefault:"validator_state.json"`
	AuditFile       string `env:"VALIDATOR_AUDIT_FILE" envDefault:"weights_audit.jsonl"`
	SampleSize      int    `env:"QUERY_SAMPLE_SIZE" envDefault:"16"`
	ReviewsPerQuery int    `env:"REVIEWS_PER_QUERY" envDefault:"20"`
}

// IntervalConfig groups ticker intervals used by the validator runtime.
// HeartbeatInterval is fixed across environments.
type IntervalConfig struct {
	HeartbeatInterval time.Duration
	MetagraphInterval time.Duration
	BlockInterval     time.Duration
	ForwardInterval   time.Duration
	ScoringInterval   time.Duration
	// WeightInterval must be a multiple of ScoringInterval; weight emission
	// happens every WeightInterval/ScoringInterval scoring steps.
	WeightInterval time.Duration
}

var (
	DevIntervalConfig = &IntervalConfig{
		HeartbeatInterval: 30 * time.Second,
		MetagraphInterval: 5 * time.Second,
		BlockInterval:     2 * time.Second,
		ForwardInterval:   15 * time.Second,
		ScoringInterval:   15 * time.Second,
		WeightInterval:    1 * time.Minute,
	}
	TestIntervalConfig = &IntervalConfig{
		HeartbeatInterval: 30 * time.Second,
		MetagraphInterval: 30 * time.Second,
		BlockInterval:     12 * time.Second,
		ForwardInterval:   5 * time.Minute,
		ScoringInterval:   5 * time.Minute,
		WeightInterval:    30 * time.Minute,
	}
	ProdIntervalConfig = &IntervalConfig{
		HeartbeatInterval: 30 * time.Second,
		MetagraphInterval: 30 * time.Second,
		BlockInterval:     12 * time.Second,
		ForwardInterval:   10 * time.Minute,
		ScoringInterval:   10 * time.Minute,
		WeightInterval:    1 * time.Hour,
	}
)

func NewIntervalConfig(environment string) *IntervalConfig {
	switch strings.ToLower(environment) {
	case "dev":
		return DevIntervalConfig
	case "test":
		return TestIntervalConfig
	case "prod":
		return ProdIntervalConfig
	}

	return DevIntervalConfig
}
