package crypto

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
)

const (
	// PrivateKeySize is the length of a serialized secp256k1 scalar
	PrivateKeySize = 32
	// CompressedPublicKeySize is the length of a compressed secp256k1 point
	CompressedPublicKeySize = 33
)

// GenerateKey generates a random private key in [1, n-1]
func GenerateKey() (*btcec.PrivateKey, error) {
	return btcec.NewPrivateKey()
}

// ParsePrivateKey decodes a hex-encoded 32-byte scalar and checks it is in
// [1, n-1]. An optional 0x prefix is accepted.
func ParsePrivateKey(s string) (*btcec.PrivateKey, error) {
	b, err := decodeHex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid private key hex: %w", err)
	}
	defer Zero(b)

	if len(b) != PrivateKeySize {
		return nil, fmt.Errorf("private key must be %d bytes, got %d", PrivateKeySize, len(b))
	}

	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(b); overflow {
		return nil, fmt.Errorf("private key out of valid range")
	}
	if scalar.IsZero() {
		return nil, fmt.Errorf("private key out of valid range")
	}
	scalar.Zero()

	priv, _ := btcec.PrivKeyFromBytes(b)
	return priv, nil
}

// ParsePublicKey decodes a hex-encoded compressed or uncompressed public key
// and checks it is on the curve.
func ParsePublicKey(s string) (*btcec.PublicKey, error) {
	b, err := decodeHex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid public key hex: %w", err)
	}
	pub, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("invalid public key: %w", err)
	}
	return pub, nil
}

// EncodePublicKey returns the hex-encoded compressed form of pub
func EncodePublicKey(pub *btcec.PublicKey) string {
	return hex.EncodeToString(pub.SerializeCompressed())
}

// EncodePrivateKey returns the hex-encoded 32-byte form of priv
func EncodePrivateKey(priv *btcec.PrivateKey) string {
	b := priv.Serialize()
	defer Zero(b)
	return hex.EncodeToString(b)
}

// Zero overwrites b with zeros
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return nil, fmt.Errorf("empty input")
	}
	return hex.DecodeString(s)
}
