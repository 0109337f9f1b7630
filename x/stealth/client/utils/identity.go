package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/types"
)

// ErrNoIdentity is returned when the home directory holds no identity.
var ErrNoIdentity = fmt.Errorf("no stealth identity found, run create-account first")

// IdentityPath returns the identity file location under home
func IdentityPath(home string) string {
	return filepath.Join(home, types.IdentityFileName)
}

// LoadIdentity reads a stealth identity from path
func LoadIdentity(path string) (types.KeyPair, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.KeyPair{}, ErrNoIdentity
		}
		return types.KeyPair{}, fmt.Errorf("failed to read identity: %w", err)
	}

	var pair types.KeyPair
	if err := json.Unmarshal(bz, &pair); err != nil {
		return types.KeyPair{}, fmt.Errorf("identity file %s is corrupt: %w", path, err)
	}
	if !pair.Complete() {
		return types.KeyPair{}, fmt.Errorf("identity file %s is incomplete", path)
	}
	return pair, nil
}

// SaveIdentity writes pair to path, readable by the owner only. An existing
// identity is only replaced when overwrite is set.
func SaveIdentity(path string, pair types.KeyPair, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("identity already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create home directory: %w", err)
	}

	bz, err := json.MarshalIndent(pair, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, bz, 0o600)
}

// DeleteIdentity removes the identity file at path
func DeleteIdentity(path string) error {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNoIdentity
		}
		return fmt.Errorf("failed to delete identity: %w", err)
	}
	return nil
}
