package stealth

import (
	"context"
	"fmt"

	"cosmossdk.io/errors"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/crypto"
	"github.com/Hikari-Chain/hikari-stealth/x/stealth/keeper"
	"github.com/Hikari-Chain/hikari-stealth/x/stealth/types"
)

// InitGenesis imports a history snapshot. Announcements already present under
// the same address are replaced; the keeper keeps its own params.
func InitGenesis(ctx context.Context, k *keeper.Keeper, data types.GenesisState) error {
	if err := ValidateGenesis(&data); err != nil {
		return err
	}

	for _, a := range data.Announcements {
		if err := k.SaveAnnouncement(ctx, a.StealthAddress, a); err != nil {
			return err
		}
	}

	k.Logger().Info("imported stealth history", types.AttributeKeyCount, len(data.Announcements))
	return nil
}

// ExportGenesis returns the module's exported genesis.
func ExportGenesis(ctx context.Context, k *keeper.Keeper) (*types.GenesisState, error) {
	announcements, err := k.Announcements(ctx)
	if err != nil {
		return nil, err
	}

	return &types.GenesisState{
		Params:        k.GetParams(),
		Announcements: announcements,
	}, nil
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *types.GenesisState {
	return &types.GenesisState{
		Params:        types.DefaultParams(),
		Announcements: []types.Announcement{},
	}
}

// ValidateGenesis validates the genesis state
func ValidateGenesis(data *types.GenesisState) error {
	if err := data.Params.Validate(); err != nil {
		return errors.Wrap(types.ErrInvalidParams, err.Error())
	}

	seen := make(map[string]bool, len(data.Announcements))
	for i, a := range data.Announcements {
		addr, err := crypto.NormalizeAddress(a.StealthAddress)
		if err != nil {
			return errors.Wrapf(types.ErrInvalidAddress, "announcement %d: %s", i, err)
		}
		if seen[addr] {
			return errors.Wrapf(types.ErrInvalidStealthData, "duplicate announcement for %s", addr)
		}
		seen[addr] = true

		if err := types.CheckAnnouncement(a); err != nil {
			return errors.Wrap(types.ErrInvalidStealthData, fmt.Sprintf("announcement %s: %s", addr, err))
		}
	}

	return nil
}
