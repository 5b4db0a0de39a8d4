package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tranmanhhung/sn111/internal/config"
	"github.com/tranmanhhung/sn111/internal/kami"
	"github.com/tranmanhhung/sn111/internal/miner"
	"github.com/tranmanhhung/sn111/internal/synapse"
	"github.com/tranmanhhung/sn111/internal/utils/logger"
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

	keyring, err := signature.LoadKeyringFromWallet(cfg.BittensorDir, cfg.WalletColdkey, cfg.WalletHotkey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load wallet hotkey")
	}

	store := miner.NewReviewStore(keyring.Address())
	if cfg.MinerEnvConfig.ReviewsFile != "" {
		if err := store.LoadFile(cfg.MinerEnvConfig.ReviewsFile); err != nil {
			log.Fatal().Err(err).Msg("failed to seed review store")
		}
	}

	m, err := miner.NewMiner(&cfg.MinerEnvConfig, synapse.Config{
		MinerEnvConfig: cfg.MinerEnvConfig,
	}, kamiClient, store)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create miner")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := m.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("miner exited with error")
	}
	log.Info().Msg("miner stopped")
}
