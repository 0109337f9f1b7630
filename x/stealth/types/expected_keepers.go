package types

//go:generate mockgen -source=expected_keepers.go -package testutil -destination ../testutil/expected_keepers_mocks.go

import (
	"context"
)

// KeyProvider defines the expected asymmetric key provider. Key generation and
// agreement take a context because the provider may be remote.
type KeyProvider interface {
	// GenerateKeyPair returns a fresh signing and encryption key pair.
	GenerateKeyPair(ctx context.Context) (KeyPair, error)
	// PublicKey returns the public key matching an encryption private key.
	PublicKey(ctx context.Context, privateKey string) (string, error)
	// AgreeSecret computes the ECDH shared secret between peerPublicKey and
	// the encryption half of own.
	AgreeSecret(ctx context.Context, peerPublicKey string, own KeyPair) (string, error)
	// Hash is the deterministic Keccak-256 primitive.
	Hash(data []byte) []byte
}

// Storage defines the expected local key-value persistence collaborator.
type Storage interface {
	// GetItem returns the value stored under key and whether it exists.
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
}
