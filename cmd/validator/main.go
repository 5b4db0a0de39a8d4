package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tranmanhhung/sn111/internal/config"
	"github.com/tranmanhhung/sn111/internal/kami"
	"github.com/tranmanhhung/sn111/internal/placesapi"
	"github.com/tranmanhhung/sn111/internal/synapse"
	"github.com/tranmanhhung/sn111/internal/utils/logger"
	"github.com/tranmanhhung/sn111/internal/utils/redis"
	"github.com/tranmanhhung/sn111/internal/validator"
	"github.com/tranmanhhung/sn111/pkg/signature"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file found, using environment as-is")
	}
	logger.Init()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	kamiClient, err := kami.NewKami(&cfg.KamiEnvConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create kami client")
	}

	var redisClient redis.RedisInterface
	if r, rerr := redis.NewRedis(&cfg.RedisEnvConfig); rerr != nil {
		log.Warn().Err(rerr).Msg("redis unavailable, cross-round review dedup disabled")
	} else {
		redisClient = r
	}

	places, err := placesapi.NewPlaces(&cfg.PlacesEnvConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create places client")
	}

	keyring, err := signature.LoadKeyringFromWallet(cfg.BittensorDir, cfg.WalletColdkey, cfg.WalletHotkey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load wallet hotkey")
	}

	synapseClient := synapse.NewClient(synapse.Config{
		ClientTimeout: cfg.ValidatorEnvConfig.ClientTimeout,
		RetryMax:      cfg.ValidatorEnvConfig.RetryMax,
		RetryWait:     cfg.ValidatorEnvConfig.RetryWait,
	}, keyring)

	audit, err := logger.NewAuditLogger(cfg.AuditFile)
	if err != nil {
		log.Warn().Err(err).Msg("audit log unavailable, weight emissions logged to console only")
		audit = nil
	}

	intervals := config.NewIntervalConfig(cfg.Environment)
	v, err := validator.NewValidator(
		&cfg.ValidatorEnvConfig,
		intervals,
		kamiClient,
		redisClient,
		synapseClient,
		places,
		audit,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create validator")
	}

	if err := v.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start validator")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("shutting down")
	v.Stop()
}
