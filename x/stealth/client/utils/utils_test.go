package utils_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/client/utils"
	"github.com/Hikari-Chain/hikari-stealth/x/stealth/types"
)

var testPair = types.KeyPair{
	SigningPublic:     "02aa",
	SigningPrivate:    "11",
	EncryptionPublic:  "03bb",
	EncryptionPrivate: "22",
}

func TestIdentityFile(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	path := utils.IdentityPath(home)

	_, err := utils.LoadIdentity(path)
	require.ErrorIs(t, err, utils.ErrNoIdentity)

	require.NoError(t, utils.SaveIdentity(path, testPair, false))
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := utils.LoadIdentity(path)
	require.NoError(t, err)
	require.Equal(t, testPair, got)

	require.Error(t, utils.SaveIdentity(path, testPair, false))
	other := testPair
	other.EncryptionPublic = "03cc"
	require.NoError(t, utils.SaveIdentity(path, other, true))
	got, err = utils.LoadIdentity(path)
	require.NoError(t, err)
	require.Equal(t, "03cc", got.EncryptionPublic)

	require.NoError(t, utils.DeleteIdentity(path))
	require.ErrorIs(t, utils.DeleteIdentity(path), utils.ErrNoIdentity)
}

func TestLoadIdentityRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{"), 0o600))
	_, err := utils.LoadIdentity(corrupt)
	require.ErrorContains(t, err, "corrupt")

	partial := filepath.Join(dir, "partial.json")
	require.NoError(t, os.WriteFile(partial, []byte(`{"signingPublic":"02aa"}`), 0o600))
	_, err = utils.LoadIdentity(partial)
	require.ErrorContains(t, err, "incomplete")
}

func TestParseCandidates(t *testing.T) {
	array := `[
		{"recipientPublicKey":"02r","timestamp":5,"stealthAddress":"0xabc"},
		{"timestamp":1.5},
		"nonsense"
	]`
	got, err := utils.ParseCandidates([]byte(array))
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "02r", got[0].RecipientPublicKey)
	require.Equal(t, types.Announcement{}, got[1])
	require.Equal(t, types.Announcement{}, got[2])

	snapshot := `{"params":{},"announcements":[{"recipientPublicKey":"02s","timestamp":7}]}`
	got, err = utils.ParseCandidates([]byte(snapshot))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(7), got[0].Timestamp)

	_, err = utils.ParseCandidates([]byte(`42`))
	require.Error(t, err)

	got, err = utils.ReadCandidates("-", strings.NewReader(" [] "))
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestPrintOutput(t *testing.T) {
	res := types.StealthAddressResult{StealthAddress: "addr", EphemeralPublicKey: "eph", RecipientPublicKey: "rec"}

	var buf bytes.Buffer
	require.NoError(t, utils.PrintOutput(&buf, utils.OutputFormatText, res))
	require.Equal(t, "stealthAddress: addr\nephemeralPublicKey: eph\nrecipientPublicKey: rec\n", buf.String())

	buf.Reset()
	require.NoError(t, utils.PrintOutput(&buf, utils.OutputFormatJSON, res))
	require.Contains(t, buf.String(), `"stealthAddress": "addr"`)

	require.Error(t, utils.PrintOutput(&buf, "xml", res))
}
