package crypto_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/crypto"
	"github.com/Hikari-Chain/hikari-stealth/x/stealth/types"
)

var testScratchKey = types.EphemeralKey{
	PrivateKey: "1111111111111111111111111111111111111111111111111111111111111111",
	PublicKey:  "02aa",
}

func TestScratchKeyExpires(t *testing.T) {
	start := time.Unix(1700000000, 0)
	clk := clock.NewTestClock(start)
	scratch := crypto.NewScratchKey(clk, 30*time.Second)

	_, ok := scratch.Load()
	require.False(t, ok)

	scratch.Store(testScratchKey)
	got, ok := scratch.Load()
	require.True(t, ok)
	require.Equal(t, testScratchKey, got)

	clk.SetTime(start.Add(29 * time.Second))
	_, ok = scratch.Load()
	require.True(t, ok)

	clk.SetTime(start.Add(30 * time.Second))
	_, ok = scratch.Load()
	require.False(t, ok)

	// stays empty after the wipe
	clk.SetTime(start)
	_, ok = scratch.Load()
	require.False(t, ok)
}

func TestScratchKeyClearAndDisabled(t *testing.T) {
	scratch := crypto.NewScratchKey(nil, time.Minute)
	scratch.Store(testScratchKey)
	scratch.Clear()
	_, ok := scratch.Load()
	require.False(t, ok)

	disabled := crypto.NewScratchKey(nil, 0)
	disabled.Store(testScratchKey)
	_, ok = disabled.Load()
	require.False(t, ok)

	var nilScratch *crypto.ScratchKey
	nilScratch.Store(testScratchKey)
	_, ok = nilScratch.Load()
	require.False(t, ok)
}

func TestScratchKeyNotSerializable(t *testing.T) {
	scratch := crypto.NewScratchKey(nil, time.Minute)
	scratch.Store(testScratchKey)

	_, err := json.Marshal(scratch)
	require.ErrorIs(t, err, crypto.ErrScratchNotSerializable)

	_, err = yaml.Marshal(scratch)
	require.Error(t, err)

	_, err = scratch.MarshalText()
	require.ErrorIs(t, err, crypto.ErrScratchNotSerializable)

	require.NotContains(t, fmt.Sprintf("%v %+v %#v %s", scratch, scratch, scratch, scratch), testScratchKey.PrivateKey)
}
