package types

import (
	"encoding/json"
	"fmt"
	"time"

	errorsmod "cosmossdk.io/errors"
)

// Method names the derivation convention an announcement was produced with.
type Method string

const (
	// MethodStandard is the ECDH + Keccak derivation used by this engine.
	MethodStandard Method = "standard"
	// MethodLegacy marks records written before the method was recorded.
	MethodLegacy Method = "legacy"
)

// IsValid reports whether m is one of the known methods.
func (m Method) IsValid() bool {
	return m == MethodStandard || m == MethodLegacy
}

// KeyPair is an asymmetric key pair as handed out by the key provider. It is
// used both for long-lived stealth identities and for single-use ephemeral
// keys.
type KeyPair struct {
	SigningPublic     string `json:"signingPublic" yaml:"signingPublic"`
	SigningPrivate    string `json:"signingPrivate" yaml:"signingPrivate"`
	EncryptionPublic  string `json:"encryptionPublic" yaml:"encryptionPublic"`
	EncryptionPrivate string `json:"encryptionPrivate" yaml:"encryptionPrivate"`
}

// Complete reports whether all four key fields are set.
func (kp KeyPair) Complete() bool {
	return kp.SigningPublic != "" && kp.SigningPrivate != "" &&
		kp.EncryptionPublic != "" && kp.EncryptionPrivate != ""
}

// Public returns a copy of the pair with both private halves cleared.
func (kp KeyPair) Public() KeyPair {
	return KeyPair{
		SigningPublic:    kp.SigningPublic,
		EncryptionPublic: kp.EncryptionPublic,
	}
}

// String never prints the private halves.
func (kp KeyPair) String() string {
	return fmt.Sprintf("KeyPair{signing:%s encryption:%s}", kp.SigningPublic, kp.EncryptionPublic)
}

// EphemeralKey is the encryption half of an ephemeral key pair.
type EphemeralKey struct {
	PrivateKey string `json:"privateKey" yaml:"privateKey"`
	PublicKey  string `json:"publicKey" yaml:"publicKey"`
}

// String never prints the private key.
func (k EphemeralKey) String() string {
	return fmt.Sprintf("EphemeralKey{public:%s}", k.PublicKey)
}

// Announcement is the persisted record linking a stealth address to the
// material needed to re-derive its private key. The history store keys it by
// stealth address; StealthAddress is only carried by scan candidates and
// exported snapshots.
type Announcement struct {
	RecipientPublicKey string  `json:"recipientPublicKey" yaml:"recipientPublicKey"`
	EphemeralKeyPair   KeyPair `json:"ephemeralKeyPair" yaml:"ephemeralKeyPair"`
	// Timestamp is the creation time in unix milliseconds.
	Timestamp      int64  `json:"timestamp" yaml:"timestamp"`
	Method         Method `json:"method,omitempty" yaml:"method,omitempty"`
	SharedSecret   string `json:"sharedSecret,omitempty" yaml:"sharedSecret,omitempty"`
	StealthAddress string `json:"stealthAddress,omitempty" yaml:"stealthAddress,omitempty"`
}

// NewAnnouncement builds a validated announcement. It refuses to construct a
// record that would fail ValidateAnnouncement.
func NewAnnouncement(
	recipientPublicKey string,
	ephemeral KeyPair,
	createdAt time.Time,
	method Method,
	sharedSecret string,
) (Announcement, error) {
	a := Announcement{
		RecipientPublicKey: recipientPublicKey,
		EphemeralKeyPair:   ephemeral,
		Timestamp:          createdAt.UnixMilli(),
		Method:             method,
		SharedSecret:       sharedSecret,
	}
	if err := CheckAnnouncement(a); err != nil {
		return Announcement{}, errorsmod.Wrap(ErrInvalidStealthData, err.Error())
	}
	return a, nil
}

// ParseAnnouncement decodes an announcement read from schema-less storage.
// The raw record is validated before it is trusted; records without a method
// are treated as legacy and a recipientEncryptionPublicKey field fills the
// recipient key.
func ParseAnnouncement(raw []byte) (Announcement, error) {
	if err := CheckAnnouncement(json.RawMessage(raw)); err != nil {
		return Announcement{}, errorsmod.Wrap(ErrInvalidStealthData, err.Error())
	}

	var a Announcement
	if err := json.Unmarshal(raw, &a); err != nil {
		return Announcement{}, errorsmod.Wrapf(ErrInvalidStealthData, "failed to decode announcement: %v", err)
	}
	if a.RecipientPublicKey == "" {
		var alias struct {
			RecipientPublicKey string `json:"recipientEncryptionPublicKey"`
		}
		if err := json.Unmarshal(raw, &alias); err == nil {
			a.RecipientPublicKey = alias.RecipientPublicKey
		}
	}
	if a.Method == "" {
		a.Method = MethodLegacy
	}

	// the decoded value must pass the same checks as the raw record
	if err := CheckAnnouncement(a); err != nil {
		return Announcement{}, errorsmod.Wrap(ErrInvalidStealthData, err.Error())
	}
	return a, nil
}

// CreatedAt returns the announcement timestamp as a time.
func (a Announcement) CreatedAt() time.Time {
	return time.UnixMilli(a.Timestamp)
}

// HasSharedSecret reports whether the record caches its shared secret.
func (a Announcement) HasSharedSecret() bool {
	return a.SharedSecret != ""
}

// WithoutSecrets returns a copy safe to print: the shared secret and the
// ephemeral private halves are dropped.
func (a Announcement) WithoutSecrets() Announcement {
	a.SharedSecret = ""
	a.EphemeralKeyPair = a.EphemeralKeyPair.Public()
	return a
}

// StealthAddressResult is returned to the sender after generation.
type StealthAddressResult struct {
	StealthAddress     string `json:"stealthAddress" yaml:"stealthAddress"`
	EphemeralPublicKey string `json:"ephemeralPublicKey" yaml:"ephemeralPublicKey"`
	RecipientPublicKey string `json:"recipientPublicKey" yaml:"recipientPublicKey"`
}

// OpenedAddress is the result of opening a stealth address.
type OpenedAddress struct {
	Address    string `json:"address" yaml:"address"`
	PrivateKey string `json:"privateKey" yaml:"privateKey"`
	// Strategy names the opening strategy that produced the key.
	Strategy string `json:"strategy" yaml:"strategy"`
}

// String never prints the private key.
func (o OpenedAddress) String() string {
	return fmt.Sprintf("OpenedAddress{address:%s strategy:%s}", o.Address, o.Strategy)
}
