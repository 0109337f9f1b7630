package crypto

import (
	"context"
	"fmt"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/types"
)

var _ types.KeyProvider = Secp256k1Provider{}

// Secp256k1Provider is the in-process key provider: secp256k1 key pairs,
// ECDH over the encryption halves and Keccak-256 hashing.
type Secp256k1Provider struct{}

// NewSecp256k1Provider returns the default key provider
func NewSecp256k1Provider() Secp256k1Provider {
	return Secp256k1Provider{}
}

// GenerateKeyPair generates a fresh signing and encryption key pair
func (Secp256k1Provider) GenerateKeyPair(ctx context.Context) (types.KeyPair, error) {
	if err := ctx.Err(); err != nil {
		return types.KeyPair{}, err
	}

	signing, err := GenerateKey()
	if err != nil {
		return types.KeyPair{}, fmt.Errorf("failed to generate signing key: %w", err)
	}
	defer signing.Zero()

	encryption, err := GenerateKey()
	if err != nil {
		return types.KeyPair{}, fmt.Errorf("failed to generate encryption key: %w", err)
	}
	defer encryption.Zero()

	return types.KeyPair{
		SigningPublic:     EncodePublicKey(signing.PubKey()),
		SigningPrivate:    EncodePrivateKey(signing),
		EncryptionPublic:  EncodePublicKey(encryption.PubKey()),
		EncryptionPrivate: EncodePrivateKey(encryption),
	}, nil
}

// PublicKey returns the compressed public key for a hex private key
func (Secp256k1Provider) PublicKey(ctx context.Context, privateKey string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	priv, err := ParsePrivateKey(privateKey)
	if err != nil {
		return "", err
	}
	defer priv.Zero()

	return EncodePublicKey(priv.PubKey()), nil
}

// AgreeSecret computes the ECDH shared secret between peerPublicKey and the
// encryption private key of own
func (Secp256k1Provider) AgreeSecret(ctx context.Context, peerPublicKey string, own types.KeyPair) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	peer, err := ParsePublicKey(peerPublicKey)
	if err != nil {
		return "", fmt.Errorf("invalid peer key: %w", err)
	}

	priv, err := ParsePrivateKey(own.EncryptionPrivate)
	if err != nil {
		return "", fmt.Errorf("invalid own key: %w", err)
	}
	defer priv.Zero()

	return ComputeSharedSecret(priv, peer), nil
}

// Hash computes Keccak-256
func (Secp256k1Provider) Hash(data []byte) []byte {
	return Keccak256(data)
}
