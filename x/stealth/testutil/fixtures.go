package testutil

import (
	"time"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/types"
)

var testTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// TestTime is the fixed clock reading of keepers built by this package.
func TestTime() time.Time {
	return testTime
}

// ValidAnnouncement returns a structurally valid announcement whose keys are
// not real curve points.
func ValidAnnouncement() types.Announcement {
	return types.Announcement{
		RecipientPublicKey: "02recipient",
		EphemeralKeyPair: types.KeyPair{
			SigningPublic:     "02signing",
			SigningPrivate:    "signing-private",
			EncryptionPublic:  "02encryption",
			EncryptionPrivate: "encryption-private",
		},
		Timestamp: testTime.UnixMilli(),
		Method:    types.MethodStandard,
	}
}
