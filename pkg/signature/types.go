// Package signature implements sr25519 message signing and verification for
// hotkeys, including SS58 address handling and bittensor wallet loading.
package signature

import "github.com/ChainSafe/gossamer/lib/crypto/sr25519"

const (
	// SubstrateNetworkID is the generic substrate SS58 prefix used by bittensor.
	SubstrateNetworkID = 42

	DefaultBittensorDir = "~/.bittensor"
)

type Verifier interface {
	// Verify checks the signature over message against the SS58 address.
	Verify(message, signature, ss58Address string) (bool, error)
}

type Signer interface {
	// Sign produces a 0x-prefixed hex signature over message.
	Sign(message string) (string, error)
	// Address returns the signer's SS58 address.
	Address() string
}

// Keyring signs with a loaded sr25519 keypair and verifies against any
// SS58 address. The zero value is unusable; construct with NewKeyring.
type Keyring struct {
	keypair *sr25519.Keypair
}
