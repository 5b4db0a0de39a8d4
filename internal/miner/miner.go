package miner

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/tranmanhhung/sn111/internal/config"
	"github.com/tranmanhhung/sn111/internal/kami"
	"github.com/tranmanhhung/sn111/internal/synapse"
	chainutils "github.com/tranmanhhung/sn111/internal/utils/chain_utils"
)

const axonVersion = 1

type Miner struct {
	cfg    *config.MinerEnvConfig
	kami   kami.KamiInterface
	server *synapse.Server
	store  *ReviewStore
}

func NewMiner(cfg *config.MinerEnvConfig, synapseCfg synapse.Config, kamiClient kami.KamiInterface, store *ReviewStore) (*Miner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if kamiClient == nil {
		return nil, fmt.Errorf("kami client cannot be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("review store cannot be nil")
	}

	return &Miner{
		cfg:    cfg,
		kami:   kamiClient,
		server: synapse.NewServer(synapseCfg, store),
		store:  store,
	}, nil
}

// RegisterAxon publishes the miner's reachable endpoint on-chain so
// validators can find it on the metagraph.
func (m *Miner) RegisterAxon() error {
	ip, err := chainutils.GetExternalIPInt()
	if err != nil {
		return fmt.Errorf("resolve external ip: %w", err)
	}

	res, err := m.kami.ServeAxon(kami.ServeAxonParams{
		Netuid:   m.cfg.Netuid,
		Version:  axonVersion,
		IP:       int(ip),
		Port:     m.cfg.Port,
		IPType:   4,
		Protocol: 4,
	})
	if err != nil {
		return fmt.Errorf("serve axon: %w", err)
	}

	log.Info().
		Str("ip", chainutils.IntToIPv4(ip).String()).
		Int("port", m.cfg.Port).
		Str("extrinsic", res.Data).
		Msg("axon registered on-chain")
	return nil
}

// Run registers the axon and serves queries until ctx is canceled.
// Registration failure is non-fatal: an already-registered axon keeps
// receiving traffic, and local setups have no external IP to publish.
func (m *Miner) Run(ctx context.Context) error {
	if err := m.RegisterAxon(); err != nil {
		log.Warn().Err(err).Msg("axon registration failed, serving anyway")
	}

	log.Info().Int("port", m.cfg.Port).Msg("miner serving review queries")
	return m.server.Start(ctx)
}
