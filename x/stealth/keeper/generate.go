package keeper

import (
	"context"
	"encoding/hex"
	"strings"

	"cosmossdk.io/errors"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/crypto"
	"github.com/Hikari-Chain/hikari-stealth/x/stealth/types"
)

type generationState int

const (
	stateAcquireEphemeralKey generationState = iota
	stateAgreeSecret
	stateDeriveAddress
	statePersist
	stateDone
	stateFailed
)

func (s generationState) String() string {
	switch s {
	case stateAcquireEphemeralKey:
		return "AcquireEphemeralKey"
	case stateAgreeSecret:
		return "AgreeSecret"
	case stateDeriveAddress:
		return "DeriveAddress"
	case statePersist:
		return "Persist"
	case stateDone:
		return "Done"
	case stateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// generation carries the intermediate values of one GenerateStealthAddress call
type generation struct {
	recipient    string
	suppliedKey  string
	ephemeral    types.KeyPair
	sharedSecret string
	address      string
}

// GenerateStealthAddress derives a one-time address for recipientPublicKey and
// records the announcement needed to reopen it. When ephemeralPrivateKey is
// empty a fresh ephemeral key is generated.
func (k *Keeper) GenerateStealthAddress(
	ctx context.Context,
	recipientPublicKey string,
	ephemeralPrivateKey string,
) (types.StealthAddressResult, error) {
	recipient, ok := types.FormatPublicKey(recipientPublicKey)
	if !ok {
		k.metrics.generated(resultFailure)
		return types.StealthAddressResult{}, errors.Wrap(types.ErrInvalidStealthKeys, "invalid recipient public key")
	}

	g := &generation{
		recipient:   recipient,
		suppliedKey: strings.TrimSpace(ephemeralPrivateKey),
	}
	logger := k.Logger()

	for state := stateAcquireEphemeralKey; state != stateDone; state++ {
		logger.Debug(types.EventTypeGenerate, types.AttributeKeyState, state.String())

		var err error
		switch state {
		case stateAcquireEphemeralKey:
			err = k.acquireEphemeralKey(ctx, g)
		case stateAgreeSecret:
			g.sharedSecret, err = k.agreeSecret(ctx, g.recipient, g.ephemeral)
		case stateDeriveAddress:
			err = k.deriveAddress(g)
		case statePersist:
			err = k.persistGeneration(ctx, g)
		}
		if err != nil {
			logger.Debug(types.EventTypeGenerate,
				types.AttributeKeyState, stateFailed.String(),
				"failed_in", state.String(),
				"reason", err.Error(),
			)
			k.metrics.generated(resultFailure)
			return types.StealthAddressResult{}, err
		}
	}
	logger.Debug(types.EventTypeGenerate, types.AttributeKeyState, stateDone.String())

	k.scratch.Store(types.EphemeralKey{
		PrivateKey: g.ephemeral.EncryptionPrivate,
		PublicKey:  g.ephemeral.EncryptionPublic,
	})
	k.metrics.generated(resultSuccess)
	logger.Info("generated stealth address",
		types.AttributeKeyAddress, g.address,
		types.AttributeKeyRecipient, g.recipient,
		types.AttributeKeyEphemeral, g.ephemeral.EncryptionPublic,
	)

	return types.StealthAddressResult{
		StealthAddress:     g.address,
		EphemeralPublicKey: g.ephemeral.EncryptionPublic,
		RecipientPublicKey: g.recipient,
	}, nil
}

// acquireEphemeralKey always requests a fresh pair so the signing half is
// never reused. A supplied private key replaces the encryption half.
func (k *Keeper) acquireEphemeralKey(ctx context.Context, g *generation) error {
	pair, err := k.provider.GenerateKeyPair(ctx)
	if err != nil {
		return errors.Wrap(types.ErrKeyGeneration, err.Error())
	}
	if !pair.Complete() {
		return errors.Wrap(types.ErrKeyGeneration, "key provider returned an incomplete key pair")
	}

	if g.suppliedKey != "" {
		pub, err := k.provider.PublicKey(ctx, g.suppliedKey)
		if err != nil {
			return errors.Wrapf(types.ErrInvalidStealthKeys, "invalid ephemeral private key: %s", err)
		}
		pair.EncryptionPrivate = g.suppliedKey
		pair.EncryptionPublic = pub
	}

	g.ephemeral = pair
	return nil
}

func (k *Keeper) deriveAddress(g *generation) error {
	key, addr, err := crypto.DeriveStealthAddress(k.provider.Hash, g.sharedSecret)
	if err != nil {
		return errors.Wrap(types.ErrAddressDerivation, err.Error())
	}
	crypto.Zero(key)

	g.address = addr.Hex()
	return nil
}

func (k *Keeper) persistGeneration(ctx context.Context, g *generation) error {
	secret := ""
	if k.params.PersistSharedSecret {
		secret = g.sharedSecret
	}

	a, err := types.NewAnnouncement(g.recipient, g.ephemeral, k.clock.Now(), types.MethodStandard, secret)
	if err != nil {
		return err
	}
	return k.SaveAnnouncement(ctx, g.address, a)
}

// agreeSecret runs the key agreement between peer and own, consulting the
// secret cache first.
func (k *Keeper) agreeSecret(ctx context.Context, peer string, own types.KeyPair) (string, error) {
	var ownID string
	if k.cache != nil && own.EncryptionPrivate != "" {
		ownID = hex.EncodeToString(k.provider.Hash([]byte(own.EncryptionPrivate)))
		if secret, ok := k.cache.Get(peer, ownID); ok {
			return secret, nil
		}
	}

	secret, err := k.provider.AgreeSecret(ctx, peer, own)
	if err != nil {
		return "", errors.Wrap(types.ErrSecretAgreementFailed, err.Error())
	}
	if secret == "" {
		return "", errors.Wrap(types.ErrSecretAgreementFailed, "key provider returned an empty secret")
	}

	k.cache.Add(peer, ownID, secret)
	return secret, nil
}
