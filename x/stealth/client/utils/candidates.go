package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/types"
)

// ReadCandidates reads scan candidates from path, or from stdin when path is
// "-". Both a bare JSON array and an exported history snapshot are accepted.
// Elements that do not decode are kept as empty announcements so the scanner
// rejects them with the rest of the invalid candidates.
func ReadCandidates(path string, stdin io.Reader) ([]types.Announcement, error) {
	var (
		bz  []byte
		err error
	)
	if path == "-" {
		bz, err = io.ReadAll(stdin)
	} else {
		bz, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}
	return ParseCandidates(bz)
}

// ParseCandidates decodes scan candidates from JSON
func ParseCandidates(bz []byte) ([]types.Announcement, error) {
	bz = bytes.TrimSpace(bz)

	var raw []json.RawMessage
	if len(bz) > 0 && bz[0] == '{' {
		var snapshot struct {
			Announcements []json.RawMessage `json:"announcements"`
		}
		if err := json.Unmarshal(bz, &snapshot); err != nil {
			return nil, fmt.Errorf("invalid candidates snapshot: %w", err)
		}
		raw = snapshot.Announcements
	} else if err := json.Unmarshal(bz, &raw); err != nil {
		return nil, fmt.Errorf("candidates must be a JSON array: %w", err)
	}

	out := make([]types.Announcement, len(raw))
	for i, r := range raw {
		var a types.Announcement
		if err := json.Unmarshal(r, &a); err == nil {
			out[i] = a
		}
	}
	return out, nil
}

// ReadGenesis reads a history snapshot from path, or stdin when path is "-"
func ReadGenesis(path string, stdin io.Reader) (types.GenesisState, error) {
	var (
		bz  []byte
		err error
	)
	if path == "-" {
		bz, err = io.ReadAll(stdin)
	} else {
		bz, err = os.ReadFile(path)
	}
	if err != nil {
		return types.GenesisState{}, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var gs types.GenesisState
	if err := json.Unmarshal(bz, &gs); err != nil {
		return types.GenesisState{}, fmt.Errorf("invalid snapshot: %w", err)
	}
	return gs, nil
}
