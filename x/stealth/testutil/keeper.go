package testutil

import (
	"testing"

	"cosmossdk.io/log"
	"github.com/golang/mock/gomock"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/stretchr/testify/require"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/crypto"
	"github.com/Hikari-Chain/hikari-stealth/x/stealth/keeper"
	"github.com/Hikari-Chain/hikari-stealth/x/stealth/store"
	"github.com/Hikari-Chain/hikari-stealth/x/stealth/types"
)

// Mocks holds the mocked collaborators of a keeper built by SetupMockedKeeper.
type Mocks struct {
	KeyProvider *MockKeyProvider
	Storage     *MockStorage
}

// Fixture is a keeper wired to real collaborators together with handles on
// them so tests can inspect side effects.
type Fixture struct {
	Keeper   *keeper.Keeper
	Provider crypto.Secp256k1Provider
	Storage  *store.KVStorage
	Cache    *crypto.SecretCache
	Scratch  *crypto.ScratchKey
	Clock    *clock.TestClock
}

// SetupStealthKeeper returns a keeper backed by the secp256k1 provider and an
// in-memory database.
func SetupStealthKeeper(t *testing.T, params types.Params, opts ...keeper.Option) Fixture {
	t.Helper()

	f := Fixture{
		Provider: crypto.NewSecp256k1Provider(),
		Storage:  store.NewMemStorage(),
		Clock:    clock.NewTestClock(testTime),
	}
	if params.SecretCacheSize > 0 {
		cache, err := crypto.NewSecretCache(params.SecretCacheSize)
		require.NoError(t, err)
		f.Cache = cache
	}
	f.Scratch = crypto.NewScratchKey(f.Clock, params.ScratchTTL)

	opts = append([]keeper.Option{
		keeper.WithSecretCache(f.Cache),
		keeper.WithScratchKey(f.Scratch),
		keeper.WithClock(f.Clock),
	}, opts...)
	k, err := keeper.NewKeeper(f.Provider, f.Storage, log.NewNopLogger(), params, opts...)
	require.NoError(t, err)
	f.Keeper = k
	return f
}

// SetupMockedKeeper returns a keeper whose collaborators are gomock mocks. Any
// call without a matching EXPECT fails the test.
func SetupMockedKeeper(t *testing.T, params types.Params) (*keeper.Keeper, Mocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := Mocks{
		KeyProvider: NewMockKeyProvider(ctrl),
		Storage:     NewMockStorage(ctrl),
	}
	k, err := keeper.NewKeeper(m.KeyProvider, m.Storage, log.NewNopLogger(), params,
		keeper.WithClock(clock.NewTestClock(testTime)),
	)
	require.NoError(t, err)
	return k, m
}
