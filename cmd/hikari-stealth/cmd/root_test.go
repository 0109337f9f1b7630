package cmd_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/Hikari-Chain/hikari-stealth/cmd/hikari-stealth/cmd"
	"github.com/Hikari-Chain/hikari-stealth/x/stealth/types"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd, cleanup := cmd.NewRootCmd()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	assert.NilError(t, cleanup())
	return out.String(), err
}

func TestRootRoundTrip(t *testing.T) {
	home := t.TempDir()

	out, err := execute(t, "tx", "create-account", "--home", home, "-o", "json")
	assert.NilError(t, err)
	var public types.KeyPair
	assert.NilError(t, json.Unmarshal([]byte(out), &public))

	out, err = execute(t, "tx", "generate", public.EncryptionPublic, "--home", home, "-o", "json")
	assert.NilError(t, err)
	var res types.StealthAddressResult
	assert.NilError(t, json.Unmarshal([]byte(out), &res))

	// history survives across invocations
	out, err = execute(t, "query", "open", res.StealthAddress, "--home", home, "-o", "json")
	assert.NilError(t, err)
	var opened types.OpenedAddress
	assert.NilError(t, json.Unmarshal([]byte(out), &opened))
	assert.Equal(t, opened.Address, res.StealthAddress)

	_, err = os.Stat(filepath.Join(home, "data", "stealth.db"))
	assert.NilError(t, err)
}

func TestRootFailedCommandReleasesDatabase(t *testing.T) {
	home := t.TempDir()

	_, err := execute(t, "query", "open", "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf", "--home", home)
	assert.ErrorContains(t, err, "no stealth identity")

	_, err = execute(t, "tx", "create-account", "--home", home)
	assert.NilError(t, err)
}

func TestRootConfigLayers(t *testing.T) {
	home := t.TempDir()
	assert.NilError(t, os.WriteFile(filepath.Join(home, "config.toml"), []byte("scan-workers = 0\n"), 0o600))

	_, err := execute(t, "tx", "ephemeral-key", "--home", home)
	assert.ErrorContains(t, err, "scan_workers must be greater than 0")

	t.Setenv("HIKARI_STEALTH_SCAN_WORKERS", "2")
	_, err = execute(t, "tx", "ephemeral-key", "--home", home)
	assert.NilError(t, err)

	_, err = execute(t, "tx", "ephemeral-key", "--home", home, "--scan-workers", "0")
	assert.ErrorContains(t, err, "scan_workers must be greater than 0")

	_, err = execute(t, "tx", "ephemeral-key", "--home", home, "--scan-workers", "3", "--log_level", "loud")
	assert.ErrorContains(t, err, "Unknown Level")
}

func TestRootMemDB(t *testing.T) {
	home := t.TempDir()
	_, err := execute(t, "tx", "ephemeral-key", "--home", home, "--db-backend", "memdb")
	assert.NilError(t, err)

	_, err = os.Stat(filepath.Join(home, "data"))
	assert.Assert(t, os.IsNotExist(err))
}

func TestRootOfflineCommandSkipsDatabase(t *testing.T) {
	home := t.TempDir()

	// an unusable backend would fail any command that opens the app
	out, err := execute(t, "query", "format-key", " ~02abc ", "--home", home, "--db-backend", "rocksdb")
	assert.NilError(t, err)
	assert.Equal(t, out, "02abc\n")

	_, err = os.Stat(filepath.Join(home, "data"))
	assert.Assert(t, os.IsNotExist(err))

	_, err = execute(t, "query", "open", "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf", "--home", home, "--db-backend", "rocksdb")
	assert.ErrorContains(t, err, "rocksdb")
}
