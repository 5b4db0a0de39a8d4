package signature

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/ChainSafe/gossamer/lib/crypto/sr25519"
	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
)

// LoadMnemonic reads a bittensor hotkey file and returns its secret phrase.
func LoadMnemonic(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		usr, err := user.Current()
		if err != nil {
			return "", fmt.Errorf("get current user: %w", err)
		}
		path = filepath.Join(usr.HomeDir, path[2:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to read hotkey file")
		return "", fmt.Errorf("read hotkey file: %w", err)
	}

	var keyfile map[string]any
	if err := sonic.Unmarshal(data, &keyfile); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to parse hotkey JSON")
		return "", fmt.Errorf("parse hotkey json: %w", err)
	}

	phrase, ok := keyfile["secretPhrase"].(string)
	if !ok || phrase == "" {
		return "", fmt.Errorf("secretPhrase not found in %s", path)
	}

	return phrase, nil
}

// LoadKeyringFromWallet loads the hotkey keypair from a bittensor wallet
// directory layout: <dir>/wallets/<coldkey>/hotkeys/<hotkey>.
func LoadKeyringFromWallet(bittensorDir, coldkeyName, hotkeyName string) (*Keyring, error) {
	if bittensorDir == "" {
		bittensorDir = DefaultBittensorDir
	}

	path := filepath.Join(bittensorDir, "wallets", coldkeyName, "hotkeys", hotkeyName)
	if strings.HasPrefix(bittensorDir, "~/") {
		// LoadMnemonic expands the prefix; Join would eat it
		path = bittensorDir + "/wallets/" + coldkeyName + "/hotkeys/" + hotkeyName
	}
	log.Debug().Str("path", path).Msg("Loading keypair from hotkey path")

	mnemonic, err := LoadMnemonic(path)
	if err != nil {
		return nil, fmt.Errorf("load seed phrase: %w", err)
	}

	keypair, err := sr25519.NewKeypairFromMnenomic(mnemonic, "")
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to create keypair from seed phrase")
		return nil, fmt.Errorf("create keypair from seed phrase: %w", err)
	}

	return NewKeyring(keypair)
}
