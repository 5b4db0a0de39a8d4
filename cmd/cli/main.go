// Operator CLI for wallet signing and quick chain inspection.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tranmanhhung/sn111/internal/config"
	"github.com/tranmanhhung/sn111/internal/kami"
	chainutils "github.com/tranmanhhung/sn111/internal/utils/chain_utils"
	"github.com/tranmanhhung/sn111/pkg/signature"
)

var (
	bittensorDir string
	coldkeyName  string
	hotkeyName   string
)

func loadKeyring() (*signature.Keyring, error) {
	return signature.LoadKeyringFromWallet(bittensorDir, coldkeyName, hotkeyName)
}

func newSignCmd() *cobra.Command {
	var message string
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a message with the wallet hotkey",
		RunE: func(cmd *cobra.Command, args []string) error {
			keyring, err := loadKeyring()
			if err != nil {
				return err
			}
			sig, err := keyring.Sign(message)
			if err != nil {
				return err
			}
			fmt.Printf("address:   %s\n", keyring.Address())
			fmt.Printf("signature: %s\n", sig)
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "message to sign")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}

func newVerifyCmd() *cobra.Command {
	var message, sig, address string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a signature against an SS58 address",
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := signature.Verify(message, sig, address)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("signature is invalid")
			}
			fmt.Println("signature is valid")
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "signed message")
	cmd.Flags().StringVarP(&sig, "signature", "s", "", "0x-prefixed hex signature")
	cmd.Flags().StringVarP(&address, "address", "a", "", "signer SS58 address")
	_ = cmd.MarkFlagRequired("message")
	_ = cmd.MarkFlagRequired("signature")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}

func newAddressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the wallet hotkey SS58 address",
		RunE: func(cmd *cobra.Command, args []string) error {
			keyring, err := loadKeyring()
			if err != nil {
				return err
			}
			fmt.Println(keyring.Address())
			return nil
		},
	}
}

func newMetagraphCmd() *cobra.Command {
	var netuid int
	cmd := &cobra.Command{
		Use:   "metagraph",
		Short: "Summarize the subnet metagraph",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			kamiClient, err := kami.NewKami(&cfg.KamiEnvConfig)
			if err != nil {
				return err
			}
			if netuid == 0 {
				netuid = cfg.ValidatorEnvConfig.Netuid
			}

			res, err := kamiClient.GetMetagraph(netuid)
			if err != nil {
				return err
			}
			mg := res.Data

			miners := 0
			for uid := range mg.Hotkeys {
				alpha, tao := 0.0, 0.0
				if uid < len(mg.AlphaStake) {
					alpha = mg.AlphaStake[uid]
				}
				if uid < len(mg.TaoStake) {
					tao = mg.TaoStake[uid]
				}
				if chainutils.CheckIfMiner(alpha, tao) {
					miners++
				}
			}

			fmt.Printf("netuid:     %d (%s)\n", mg.Netuid, mg.Name)
			fmt.Printf("block:      %d\n", mg.Block)
			fmt.Printf("uids:       %d / %d\n", mg.NumUids, mg.MaxUids)
			fmt.Printf("miners:     %d\n", miners)
			fmt.Printf("tempo:      %d\n", mg.Tempo)
			fmt.Printf("weights v.: %d\n", mg.WeightsVersion)
			return nil
		},
	}
	cmd.Flags().IntVar(&netuid, "netuid", 0, "subnet netuid (defaults to NETUID)")
	return cmd
}

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "sn111",
		Short:         "Operator tooling for the reviews subnet",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&bittensorDir, "bittensor-dir", signature.DefaultBittensorDir, "bittensor wallet directory")
	root.PersistentFlags().StringVar(&coldkeyName, "coldkey", "default", "coldkey wallet name")
	root.PersistentFlags().StringVar(&hotkeyName, "hotkey", "default", "hotkey name")

	root.AddCommand(newSignCmd(), newVerifyCmd(), newAddressCmd(), newMetagraphCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
