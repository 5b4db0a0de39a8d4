package signature

import (
	"encoding/hex"
	"fmt"

	"github.com/ChainSafe/gossamer/lib/crypto/sr25519"
	"github.com/vedhavyas/go-subkey"
)

// NewKeyring wraps an sr25519 keypair as a Signer/Verifier.
func NewKeyring(keypair *sr25519.Keypair) (*Keyring, error) {
	if keypair == nil {
		return nil, fmt.Errorf("keypair cannot be nil")
	}
	return &Keyring{keypair: keypair}, nil
}

// Sign signs message with the hotkey and returns a 0x-prefixed hex signature.
func (k *Keyring) Sign(message string) (string, error) {
	if k.keypair == nil {
		return "", fmt.Errorf("private key not initialized")
	}

	sig, err := k.keypair.Sign([]byte(message))
	if err != nil {
		return "", fmt.Errorf("sign message: %w", err)
	}

	return "0x" + hex.EncodeToString(sig), nil
}

// Address returns the keyring's SS58 address.
func (k *Keyring) Address() string {
	return subkey.SS58Encode(k.keypair.Public().Encode(), SubstrateNetworkID)
}

// Verify implements the Verifier interface.
func (k *Keyring) Verify(message, signature, ss58Address string) (bool, error) {
	return Verify(message, signature, ss58Address)
}
