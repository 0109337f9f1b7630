package keeper

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/crypto"
	"github.com/Hikari-Chain/hikari-stealth/x/stealth/types"
)

// ScanStealthAddresses returns the candidates owned by owner, in input order.
// Candidates that fail validation or cannot be opened with the owner's keys
// are skipped; only a cancelled context aborts the scan. Scanning never
// touches the history store.
func (k *Keeper) ScanStealthAddresses(
	ctx context.Context,
	candidates []types.Announcement,
	owner types.KeyPair,
) ([]types.Announcement, error) {
	logger := k.Logger()
	owned := make([]bool, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(k.params.ScanWorkers)

	for i := range candidates {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			ok, err := k.scanCandidate(gctx, i, candidates[i], owner)
			if err != nil {
				return err
			}
			owned[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]types.Announcement, 0)
	for i, ok := range owned {
		if ok {
			out = append(out, candidates[i])
		}
	}

	logger.Info(types.EventTypeScan,
		types.AttributeKeyCount, len(candidates),
		types.AttributeKeyOwned, len(out),
	)
	return out, nil
}

// scanCandidate reports whether owner can open candidate. It only returns an
// error when ctx is done.
func (k *Keeper) scanCandidate(ctx context.Context, index int, candidate types.Announcement, owner types.KeyPair) (bool, error) {
	logger := k.Logger()

	if err := types.CheckAnnouncement(candidate); err != nil {
		logger.Debug("skipping invalid candidate", types.AttributeKeyIndex, index, "reason", err.Error())
		k.metrics.scanned(resultInvalid)
		return false, nil
	}
	addr, err := crypto.NormalizeAddress(candidate.StealthAddress)
	if err != nil {
		logger.Debug("skipping candidate without address", types.AttributeKeyIndex, index, "reason", err.Error())
		k.metrics.scanned(resultInvalid)
		return false, nil
	}
	ephemeral, ok := types.FormatPublicKey(candidate.EphemeralKeyPair.EncryptionPublic)
	if !ok {
		logger.Debug("skipping candidate with invalid ephemeral key", types.AttributeKeyIndex, index)
		k.metrics.scanned(resultInvalid)
		return false, nil
	}

	_, err = k.open(ctx, scanStrategies, openRequest{
		address:   addr,
		ephemeral: ephemeral,
		owner:     owner,
	})
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}
	if err != nil {
		logger.Debug("candidate not owned", types.AttributeKeyIndex, index, types.AttributeKeyAddress, addr)
		k.metrics.scanned(resultNotOwned)
		return false, nil
	}

	k.metrics.scanned(resultOwned)
	return true, nil
}
