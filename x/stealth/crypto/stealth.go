package crypto

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// HashFunc is the hash primitive used to turn a shared secret into a key.
type HashFunc func(data []byte) []byte

// Keccak256 is the default HashFunc
func Keccak256(data []byte) []byte {
	return ethcrypto.Keccak256(data)
}

// ComputeSharedSecret computes the ECDH shared secret between a private key
// and a peer public key: the x coordinate of priv * pub, hex-encoded.
// For the sender: ephemeralPriv * recipientPub
// For the recipient: recipientPriv * ephemeralPub
func ComputeSharedSecret(priv *btcec.PrivateKey, pub *btcec.PublicKey) string {
	secret := btcec.GenerateSharedSecret(priv, pub)
	defer Zero(secret)
	return hex.EncodeToString(secret)
}

// DeriveStealthPrivateKey derives the one-time private key from a shared
// secret: stealthPrivKey = Hash(sharedSecret). The caller owns the returned
// bytes and should Zero them after use.
func DeriveStealthPrivateKey(hash HashFunc, sharedSecret string) ([]byte, error) {
	if sharedSecret == "" {
		return nil, fmt.Errorf("shared secret is empty")
	}
	if hash == nil {
		hash = Keccak256
	}

	key := hash([]byte(sharedSecret))
	if len(key) != PrivateKeySize {
		return nil, fmt.Errorf("hash produced %d bytes, expected %d", len(key), PrivateKeySize)
	}

	var scalar btcec.ModNScalar
	overflow := scalar.SetByteSlice(key)
	zero := scalar.IsZero()
	scalar.Zero()
	if overflow || zero {
		Zero(key)
		return nil, fmt.Errorf("derived key out of valid range")
	}
	return key, nil
}

// AddressFromPrivateKey computes the account address for a private key: the
// rightmost 20 bytes of Keccak256 of the uncompressed public key.
func AddressFromPrivateKey(priv []byte) (common.Address, error) {
	key, err := ethcrypto.ToECDSA(priv)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid stealth private key: %w", err)
	}
	addr := ethcrypto.PubkeyToAddress(key.PublicKey)
	key.D.SetInt64(0)
	return addr, nil
}

// DeriveStealthAddress runs the full derivation for a shared secret and
// returns the one-time private key together with its address.
func DeriveStealthAddress(hash HashFunc, sharedSecret string) ([]byte, common.Address, error) {
	key, err := DeriveStealthPrivateKey(hash, sharedSecret)
	if err != nil {
		return nil, common.Address{}, err
	}
	addr, err := AddressFromPrivateKey(key)
	if err != nil {
		Zero(key)
		return nil, common.Address{}, err
	}
	return key, addr, nil
}

// ParseAddress validates a hex account address and returns it
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%q is not a hex address", s)
	}
	addr := common.HexToAddress(s)
	if addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf("zero address")
	}
	return addr, nil
}

// NormalizeAddress returns the EIP-55 checksummed form of a hex address
func NormalizeAddress(s string) (string, error) {
	addr, err := ParseAddress(s)
	if err != nil {
		return "", err
	}
	return addr.Hex(), nil
}
