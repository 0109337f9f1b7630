package crypto_test

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/crypto"
)

func privateKeyGen() *rapid.Generator[*btcec.PrivateKey] {
	return rapid.Custom(func(t *rapid.T) *btcec.PrivateKey {
		b := rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(t, "scalar")
		var scalar btcec.ModNScalar
		scalar.SetByteSlice(b)
		if scalar.IsZero() {
			scalar.SetInt(1)
		}
		return btcec.PrivKeyFromScalar(&scalar)
	})
}

func TestSharedSecretSymmetry(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := privateKeyGen().Draw(t, "a")
		b := privateKeyGen().Draw(t, "b")

		ab := crypto.ComputeSharedSecret(a, b.PubKey())
		ba := crypto.ComputeSharedSecret(b, a.PubKey())
		if ab != ba {
			t.Fatalf("asymmetric shared secret: %s != %s", ab, ba)
		}
		if len(ab) != 64 {
			t.Fatalf("unexpected secret length %d", len(ab))
		}
	})
}

func TestDeriveStealthAddressIsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		secret := rapid.StringMatching(`[0-9a-f]{64}`).Draw(t, "secret")

		key1, addr1, err1 := crypto.DeriveStealthAddress(crypto.Keccak256, secret)
		key2, addr2, err2 := crypto.DeriveStealthAddress(crypto.Keccak256, secret)
		if err1 != nil || err2 != nil {
			t.Fatalf("derivation failed: %v / %v", err1, err2)
		}
		if addr1 != addr2 || hex.EncodeToString(key1) != hex.EncodeToString(key2) {
			t.Fatalf("derivation is not deterministic")
		}
	})
}

func TestDeriveStealthPrivateKey(t *testing.T) {
	secret := "5f2b1c"
	key, err := crypto.DeriveStealthPrivateKey(nil, secret)
	require.NoError(t, err)
	require.Equal(t, ethcrypto.Keccak256([]byte(secret)), key)

	_, err = crypto.DeriveStealthPrivateKey(crypto.Keccak256, "")
	require.EqualError(t, err, "shared secret is empty")

	short := func([]byte) []byte { return make([]byte, 16) }
	_, err = crypto.DeriveStealthPrivateKey(short, secret)
	require.EqualError(t, err, "hash produced 16 bytes, expected 32")

	zero := func([]byte) []byte { return make([]byte, 32) }
	_, err = crypto.DeriveStealthPrivateKey(zero, secret)
	require.EqualError(t, err, "derived key out of valid range")

	overflow := func([]byte) []byte {
		b := make([]byte, 32)
		for i := range b {
			b[i] = 0xff
		}
		return b
	}
	_, err = crypto.DeriveStealthPrivateKey(overflow, secret)
	require.EqualError(t, err, "derived key out of valid range")
}

func TestAddressFromPrivateKey(t *testing.T) {
	// well known key 0x...01 maps to this address
	one := make([]byte, 32)
	one[31] = 1
	addr, err := crypto.AddressFromPrivateKey(one)
	require.NoError(t, err)
	require.Equal(t, "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf", addr.Hex())

	_, err = crypto.AddressFromPrivateKey(make([]byte, 32))
	require.Error(t, err)
	_, err = crypto.AddressFromPrivateKey([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestNormalizeAddress(t *testing.T) {
	got, err := crypto.NormalizeAddress("0x7e5f4552091a69125d5dfcb7b8c2659029395bdf")
	require.NoError(t, err)
	require.Equal(t, "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf", got)

	for _, bad := range []string{"", "0x1234", "not-an-address", "0x0000000000000000000000000000000000000000"} {
		_, err := crypto.NormalizeAddress(bad)
		require.Error(t, err, bad)
	}
}

func TestParseKeys(t *testing.T) {
	priv, err := crypto.GenerateKey()
	require.NoError(t, err)

	encoded := crypto.EncodePrivateKey(priv)
	require.Len(t, encoded, 2*crypto.PrivateKeySize)

	parsed, err := crypto.ParsePrivateKey("0x" + encoded)
	require.NoError(t, err)
	require.True(t, parsed.Key.Equals(&priv.Key))

	pubHex := crypto.EncodePublicKey(priv.PubKey())
	require.Len(t, pubHex, 2*crypto.CompressedPublicKeySize)
	pub, err := crypto.ParsePublicKey(pubHex)
	require.NoError(t, err)
	require.True(t, pub.IsEqual(priv.PubKey()))

	uncompressed := hex.EncodeToString(priv.PubKey().SerializeUncompressed())
	pub, err = crypto.ParsePublicKey(uncompressed)
	require.NoError(t, err)
	require.True(t, pub.IsEqual(priv.PubKey()))

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "not hex", input: "zz"},
		{name: "short", input: "0102"},
		{name: "zero", input: hex.EncodeToString(make([]byte, 32))},
		{name: "above order", input: "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := crypto.ParsePrivateKey(tt.input)
			require.Error(t, err)
		})
	}

	_, err = crypto.ParsePublicKey("05" + pubHex[2:])
	require.Error(t, err)
}
