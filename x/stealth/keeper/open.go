package keeper

import (
	"context"
	"encoding/hex"

	"cosmossdk.io/errors"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/crypto"
	"github.com/Hikari-Chain/hikari-stealth/x/stealth/types"
)

// Opening strategy names
const (
	StrategyCachedSecret       = "cached-secret"
	StrategyRecordedMethod     = "recorded-method"
	StrategyOwnerEncryptionKey = "owner-encryption-key"
	StrategyOwnerSigningKey    = "owner-signing-key"
)

// openRequest is the input shared by every opening strategy
type openRequest struct {
	address   string
	ephemeral string
	owner     types.KeyPair
	record    *types.Announcement
}

// openStrategy produces a candidate shared secret for a request. An empty
// secret with a nil error means the strategy does not apply.
type openStrategy struct {
	name   string
	secret func(ctx context.Context, k *Keeper, req openRequest) (string, error)
}

// openStrategies are tried in order until one yields the target address.
var openStrategies = []openStrategy{
	{name: StrategyCachedSecret, secret: cachedSecret},
	{name: StrategyRecordedMethod, secret: recordedMethodSecret},
	{name: StrategyOwnerEncryptionKey, secret: ownerEncryptionSecret},
	{name: StrategyOwnerSigningKey, secret: ownerSigningSecret},
}

// scanStrategies only use the owner's keys, so a match proves ownership.
var scanStrategies = []openStrategy{
	{name: StrategyOwnerEncryptionKey, secret: ownerEncryptionSecret},
	{name: StrategyOwnerSigningKey, secret: ownerSigningSecret},
}

func cachedSecret(_ context.Context, _ *Keeper, req openRequest) (string, error) {
	if req.record == nil {
		return "", nil
	}
	return req.record.SharedSecret, nil
}

func recordedMethodSecret(ctx context.Context, k *Keeper, req openRequest) (string, error) {
	r := req.record
	if r == nil || r.Method != types.MethodStandard {
		return "", nil
	}
	if r.RecipientPublicKey == "" || r.EphemeralKeyPair.EncryptionPrivate == "" {
		return "", nil
	}
	return k.agreeSecret(ctx, r.RecipientPublicKey, r.EphemeralKeyPair)
}

func ownerEncryptionSecret(ctx context.Context, k *Keeper, req openRequest) (string, error) {
	if req.ephemeral == "" || req.owner.EncryptionPrivate == "" {
		return "", nil
	}
	return k.agreeSecret(ctx, req.ephemeral, req.owner)
}

func ownerSigningSecret(ctx context.Context, k *Keeper, req openRequest) (string, error) {
	if req.ephemeral == "" || req.owner.SigningPrivate == "" {
		return "", nil
	}
	signing := types.KeyPair{
		EncryptionPublic:  req.owner.SigningPublic,
		EncryptionPrivate: req.owner.SigningPrivate,
	}
	return k.agreeSecret(ctx, req.ephemeral, signing)
}

// OpenStealthAddress recovers the private key of address. ephemeralPublicKey
// may be empty when the history holds an announcement for the address.
func (k *Keeper) OpenStealthAddress(
	ctx context.Context,
	address string,
	ephemeralPublicKey string,
	owner types.KeyPair,
) (types.OpenedAddress, error) {
	addr, err := crypto.NormalizeAddress(address)
	if err != nil {
		return types.OpenedAddress{}, errors.Wrap(types.ErrInvalidAddress, err.Error())
	}

	var ephemeral string
	if ephemeralPublicKey != "" {
		formatted, ok := types.FormatPublicKey(ephemeralPublicKey)
		if !ok {
			return types.OpenedAddress{}, errors.Wrap(types.ErrInvalidStealthKeys, "invalid ephemeral public key")
		}
		ephemeral = formatted
	}

	record, err := k.LoadAnnouncement(ctx, addr)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return types.OpenedAddress{}, ctxErr
		}
		k.Logger().Info("ignoring stored announcement", types.AttributeKeyAddress, addr, "reason", err.Error())
		record = nil
	}
	if ephemeral == "" && record != nil {
		ephemeral = record.EphemeralKeyPair.EncryptionPublic
	}

	opened, err := k.open(ctx, openStrategies, openRequest{
		address:   addr,
		ephemeral: ephemeral,
		owner:     owner,
		record:    record,
	})
	if err != nil {
		return types.OpenedAddress{}, err
	}

	k.Logger().Info(types.EventTypeOpen,
		types.AttributeKeyAddress, addr,
		types.AttributeKeyStrategy, opened.Strategy,
	)
	return opened, nil
}

// open runs strategies in order and returns the first candidate whose derived
// address matches the request.
func (k *Keeper) open(ctx context.Context, strategies []openStrategy, req openRequest) (types.OpenedAddress, error) {
	logger := k.Logger()

	for _, s := range strategies {
		secret, err := s.secret(ctx, k, req)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return types.OpenedAddress{}, ctxErr
		}
		if err != nil {
			logger.Debug("opening strategy failed", types.AttributeKeyStrategy, s.name, "reason", err.Error())
			k.metrics.opened(s.name, resultFailure)
			continue
		}
		if secret == "" {
			continue
		}

		key, derived, err := crypto.DeriveStealthAddress(k.provider.Hash, secret)
		if err != nil {
			logger.Debug("opening strategy failed", types.AttributeKeyStrategy, s.name, "reason", err.Error())
			k.metrics.opened(s.name, resultFailure)
			continue
		}
		if derived.Hex() != req.address {
			crypto.Zero(key)
			logger.Debug("opening strategy derived another address", types.AttributeKeyStrategy, s.name)
			k.metrics.opened(s.name, resultFailure)
			continue
		}

		k.metrics.opened(s.name, resultSuccess)
		opened := types.OpenedAddress{
			Address:    req.address,
			PrivateKey: hex.EncodeToString(key),
			Strategy:   s.name,
		}
		crypto.Zero(key)
		return opened, nil
	}

	return types.OpenedAddress{}, errors.Wrapf(types.ErrStealthOpenFailed, "no strategy derived %s", req.address)
}
