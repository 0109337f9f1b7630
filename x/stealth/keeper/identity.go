package keeper

import (
	"context"

	"cosmossdk.io/errors"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/types"
)

// CreateAccount generates a new stealth identity. The caller is responsible
// for keeping it; the keeper does not persist identities.
func (k *Keeper) CreateAccount(ctx context.Context) (types.KeyPair, error) {
	pair, err := k.provider.GenerateKeyPair(ctx)
	if err != nil {
		return types.KeyPair{}, errors.Wrap(types.ErrKeyGeneration, err.Error())
	}
	if !pair.Complete() {
		return types.KeyPair{}, errors.Wrap(types.ErrKeyGeneration, "key provider returned an incomplete key pair")
	}

	k.Logger().Info("created stealth identity", "encryption_public_key", pair.EncryptionPublic)
	return pair, nil
}

// GenerateEphemeralKeyPair returns the encryption half of a fresh key pair.
func (k *Keeper) GenerateEphemeralKeyPair(ctx context.Context) (types.EphemeralKey, error) {
	pair, err := k.provider.GenerateKeyPair(ctx)
	if err != nil {
		return types.EphemeralKey{}, errors.Wrap(types.ErrKeyGeneration, err.Error())
	}
	if pair.EncryptionPrivate == "" || pair.EncryptionPublic == "" {
		return types.EphemeralKey{}, errors.Wrap(types.ErrKeyGeneration, "key provider returned an incomplete key pair")
	}

	return types.EphemeralKey{
		PrivateKey: pair.EncryptionPrivate,
		PublicKey:  pair.EncryptionPublic,
	}, nil
}
