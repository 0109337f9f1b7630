package keeper

import (
	"fmt"
	"sync"

	"cosmossdk.io/errors"
	"cosmossdk.io/log"
	"github.com/lightningnetwork/lnd/clock"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/crypto"
	"github.com/Hikari-Chain/hikari-stealth/x/stealth/types"
)

type Keeper struct {
	provider types.KeyProvider
	storage  types.Storage
	logger   log.Logger
	params   types.Params

	cache   *crypto.SecretCache
	scratch *crypto.ScratchKey
	metrics *Metrics
	clock   clock.Clock

	// historyMu serializes read-modify-write cycles of the history blob
	historyMu sync.Mutex
}

// Option configures optional keeper collaborators.
type Option func(*Keeper)

// WithSecretCache shares a caller-owned secret cache with the keeper.
func WithSecretCache(cache *crypto.SecretCache) Option {
	return func(k *Keeper) { k.cache = cache }
}

// WithScratchKey shares a caller-owned scratch slot with the keeper.
func WithScratchKey(scratch *crypto.ScratchKey) Option {
	return func(k *Keeper) { k.scratch = scratch }
}

// WithMetrics records engine activity on m.
func WithMetrics(m *Metrics) Option {
	return func(k *Keeper) { k.metrics = m }
}

// WithClock overrides the time source used for announcement timestamps.
func WithClock(clk clock.Clock) Option {
	return func(k *Keeper) { k.clock = clk }
}

func NewKeeper(
	provider types.KeyProvider,
	storage types.Storage,
	logger log.Logger,
	params types.Params,
	opts ...Option,
) (*Keeper, error) {
	if provider == nil {
		return nil, fmt.Errorf("key provider cannot be nil")
	}
	if storage == nil {
		return nil, fmt.Errorf("storage cannot be nil")
	}
	if err := params.Validate(); err != nil {
		return nil, errors.Wrap(types.ErrInvalidParams, err.Error())
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	k := &Keeper{
		provider: provider,
		storage:  storage,
		logger:   logger,
		params:   params,
		clock:    clock.NewDefaultClock(),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k, nil
}

func (k *Keeper) Logger() log.Logger {
	return k.logger.With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// GetParams gets the module parameters.
func (k *Keeper) GetParams() types.Params {
	return k.params
}

// ClearSecrets drops every cached shared secret and the scratch key.
func (k *Keeper) ClearSecrets() {
	k.cache.Clear()
	k.scratch.Clear()
}

// LastEphemeralKey returns the most recently used ephemeral key while it is
// still retained by the scratch slot.
func (k *Keeper) LastEphemeralKey() (types.EphemeralKey, bool) {
	return k.scratch.Load()
}
