package keeper

import (
	"context"
	"encoding/json"
	"sort"

	"cosmossdk.io/errors"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/crypto"
	"github.com/Hikari-Chain/hikari-stealth/x/stealth/types"
)

// history is the decoded history blob: announcements keyed by checksummed
// stealth address. Values are kept raw so entries this version cannot parse
// survive a rewrite untouched.
type history map[string]json.RawMessage

// SaveAnnouncement validates a and stores it under address, replacing any
// previous announcement for the same address.
func (k *Keeper) SaveAnnouncement(ctx context.Context, address string, a types.Announcement) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr, err := crypto.NormalizeAddress(address)
	if err != nil {
		return errors.Wrap(types.ErrInvalidAddress, err.Error())
	}
	if err := types.CheckAnnouncement(a); err != nil {
		k.Logger().Debug("refusing to save invalid announcement", types.AttributeKeyAddress, addr, "reason", err.Error())
		return errors.Wrap(types.ErrInvalidStealthData, err.Error())
	}

	a.StealthAddress = ""
	bz, err := json.Marshal(a)
	if err != nil {
		return errors.Wrapf(types.ErrInvalidStealthData, "failed to encode announcement: %s", err)
	}

	k.historyMu.Lock()
	defer k.historyMu.Unlock()

	h, err := k.readHistoryLocked()
	if err != nil {
		return err
	}
	h[addr] = bz
	if err := k.writeHistoryLocked(h); err != nil {
		return err
	}

	k.Logger().Debug(types.EventTypeSave,
		types.AttributeKeyAddress, addr,
		types.AttributeKeyMethod, string(a.Method),
	)
	return nil
}

// LoadAnnouncement returns the announcement saved for address, or nil when
// none exists. A stored entry that fails validation is reported as
// ErrInvalidStealthData.
func (k *Keeper) LoadAnnouncement(ctx context.Context, address string) (*types.Announcement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	addr, err := crypto.NormalizeAddress(address)
	if err != nil {
		return nil, errors.Wrap(types.ErrInvalidAddress, err.Error())
	}

	k.historyMu.Lock()
	h, err := k.readHistoryLocked()
	k.historyMu.Unlock()
	if err != nil {
		return nil, err
	}

	raw, ok := h[addr]
	if !ok {
		return nil, nil
	}
	a, err := types.ParseAnnouncement(raw)
	if err != nil {
		k.Logger().Debug("stored announcement is invalid", types.AttributeKeyAddress, addr, "reason", err.Error())
		return nil, err
	}
	a.StealthAddress = addr
	return &a, nil
}

// Announcements returns every valid saved announcement sorted by stealth
// address. Invalid entries are skipped.
func (k *Keeper) Announcements(ctx context.Context) ([]types.Announcement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	k.historyMu.Lock()
	h, err := k.readHistoryLocked()
	k.historyMu.Unlock()
	if err != nil {
		return nil, err
	}

	addrs := make([]string, 0, len(h))
	for addr := range h {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)

	out := make([]types.Announcement, 0, len(addrs))
	for _, addr := range addrs {
		a, err := types.ParseAnnouncement(h[addr])
		if err != nil {
			k.Logger().Info("skipping invalid stored announcement", types.AttributeKeyAddress, addr, "reason", err.Error())
			continue
		}
		a.StealthAddress = addr
		out = append(out, a)
	}
	return out, nil
}

// DeleteAnnouncement removes the announcement saved for address and reports
// whether one existed.
func (k *Keeper) DeleteAnnouncement(ctx context.Context, address string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	addr, err := crypto.NormalizeAddress(address)
	if err != nil {
		return false, errors.Wrap(types.ErrInvalidAddress, err.Error())
	}

	k.historyMu.Lock()
	defer k.historyMu.Unlock()

	h, err := k.readHistoryLocked()
	if err != nil {
		return false, err
	}
	if _, ok := h[addr]; !ok {
		return false, nil
	}
	delete(h, addr)
	if err := k.writeHistoryLocked(h); err != nil {
		return false, err
	}

	k.Logger().Info("deleted announcement", types.AttributeKeyAddress, addr)
	return true, nil
}

func (k *Keeper) readHistoryLocked() (history, error) {
	value, found, err := k.storage.GetItem(k.params.HistoryKey)
	if err != nil {
		return nil, errors.Wrap(types.ErrStorage, err.Error())
	}
	if !found || value == "" {
		return history{}, nil
	}

	var stored history
	if err := json.Unmarshal([]byte(value), &stored); err != nil {
		return nil, errors.Wrapf(types.ErrStorage, "history blob %q is corrupt: %s", k.params.HistoryKey, err)
	}

	h := make(history, len(stored))
	for key, raw := range stored {
		if addr, err := crypto.NormalizeAddress(key); err == nil {
			key = addr
		}
		h[key] = raw
	}
	return h, nil
}

func (k *Keeper) writeHistoryLocked(h history) error {
	bz, err := json.Marshal(h)
	if err != nil {
		return errors.Wrapf(types.ErrStorage, "failed to encode history: %s", err)
	}
	if err := k.storage.SetItem(k.params.HistoryKey, string(bz)); err != nil {
		return errors.Wrap(types.ErrStorage, err.Error())
	}
	return nil
}
