package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"cosmossdk.io/log"
)

// Announcement field names as they appear in stored records.
const (
	FieldRecipientPublicKey = "recipientPublicKey"
	FieldEphemeralKeyPair   = "ephemeralKeyPair"
	FieldTimestamp          = "timestamp"
	FieldMethod             = "method"
	FieldSharedSecret       = "sharedSecret"

	// fieldRecipientAlias is accepted for records that spell out the key kind.
	fieldRecipientAlias = "recipientEncryptionPublicKey"
)

var ephemeralKeyFields = []string{"signingPublic", "signingPrivate", "encryptionPublic", "encryptionPrivate"}

// FieldGetter exposes a record through named field lookups. Records coming
// from foreign sources can implement it to be validated without decoding.
type FieldGetter interface {
	GetField(name string) (any, bool)
}

// ValidateAnnouncement reports whether record is a structurally valid stealth
// announcement. It never panics: accessor panics are recovered, logged and
// reported as invalid.
func ValidateAnnouncement(record any, logger log.Logger) bool {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if err := CheckAnnouncement(record); err != nil {
		logger.Debug("rejected stealth record", "reason", err.Error())
		return false
	}
	return true
}

// CheckAnnouncement is ValidateAnnouncement returning the first failed check.
func CheckAnnouncement(record any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("record accessor panicked: %v", r)
		}
	}()

	fields, err := recordFields(record)
	if err != nil {
		return err
	}

	recipient, ok := fields.GetField(FieldRecipientPublicKey)
	if !ok {
		recipient, ok = fields.GetField(fieldRecipientAlias)
	}
	if !ok {
		return fmt.Errorf("missing required field %s", FieldRecipientPublicKey)
	}
	ephemeral, ok := fields.GetField(FieldEphemeralKeyPair)
	if !ok {
		return fmt.Errorf("missing required field %s", FieldEphemeralKeyPair)
	}
	timestamp, ok := fields.GetField(FieldTimestamp)
	if !ok {
		return fmt.Errorf("missing required field %s", FieldTimestamp)
	}

	recipientStr, ok := recipient.(string)
	if !ok || strings.TrimSpace(recipientStr) == "" {
		return fmt.Errorf("%s must be a non-empty string", FieldRecipientPublicKey)
	}

	if !isPositiveFinite(timestamp) {
		return fmt.Errorf("%s must be a positive finite number", FieldTimestamp)
	}

	if err := checkEphemeralKeyPair(ephemeral); err != nil {
		return err
	}

	if method, ok := fields.GetField(FieldMethod); ok {
		m, isStr := method.(string)
		if !isStr || !Method(m).IsValid() {
			return fmt.Errorf("%s must be %q or %q", FieldMethod, MethodStandard, MethodLegacy)
		}
	}

	if secret, ok := fields.GetField(FieldSharedSecret); ok {
		if _, isStr := secret.(string); !isStr {
			return fmt.Errorf("%s must be a string", FieldSharedSecret)
		}
	}

	return nil
}

func checkEphemeralKeyPair(v any) error {
	var sub FieldGetter
	switch pair := v.(type) {
	case map[string]any:
		sub = mapFields(pair)
	case KeyPair:
		sub = keyPairFields(pair)
	case FieldGetter:
		if pair == nil {
			return fmt.Errorf("%s must be an object", FieldEphemeralKeyPair)
		}
		sub = pair
	default:
		return fmt.Errorf("%s must be an object", FieldEphemeralKeyPair)
	}

	for _, name := range ephemeralKeyFields {
		value, ok := sub.GetField(name)
		if !ok {
			return fmt.Errorf("%s.%s is missing", FieldEphemeralKeyPair, name)
		}
		if s, isStr := value.(string); !isStr || s == "" {
			return fmt.Errorf("%s.%s must be a non-empty string", FieldEphemeralKeyPair, name)
		}
	}
	return nil
}

func recordFields(record any) (FieldGetter, error) {
	switch r := record.(type) {
	case nil:
		return nil, errors.New("record is nil")
	case Announcement:
		return announcementFields(r), nil
	case *Announcement:
		if r == nil {
			return nil, errors.New("record is nil")
		}
		return announcementFields(*r), nil
	case map[string]any:
		if r == nil {
			return nil, errors.New("record is nil")
		}
		return mapFields(r), nil
	case json.RawMessage:
		return decodeRecord(r)
	case []byte:
		return decodeRecord(r)
	case FieldGetter:
		return r, nil
	default:
		return nil, fmt.Errorf("record of type %T is not an object", record)
	}
}

func decodeRecord(raw []byte) (FieldGetter, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("record is not valid JSON: %w", err)
	}
	m, ok := v.(map[string]any)
	if !ok || m == nil {
		return nil, errors.New("record is not an object")
	}
	return mapFields(m), nil
}

func isPositiveFinite(v any) bool {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		return n > 0
	case int32:
		return n > 0
	case int64:
		return n > 0
	case uint:
		return n > 0
	case uint32:
		return n > 0
	case uint64:
		return n > 0
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return false
		}
		f = parsed
	default:
		return false
	}
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

type mapFields map[string]any

func (m mapFields) GetField(name string) (any, bool) {
	v, ok := m[name]
	if ok && v == nil {
		return nil, false
	}
	return v, ok
}

type keyPairFields KeyPair

func (kp keyPairFields) GetField(name string) (any, bool) {
	var v string
	switch name {
	case "signingPublic":
		v = kp.SigningPublic
	case "signingPrivate":
		v = kp.SigningPrivate
	case "encryptionPublic":
		v = kp.EncryptionPublic
	case "encryptionPrivate":
		v = kp.EncryptionPrivate
	}
	return v, v != ""
}

type announcementFields Announcement

func (a announcementFields) GetField(name string) (any, bool) {
	switch name {
	case FieldRecipientPublicKey:
		return a.RecipientPublicKey, true
	case FieldEphemeralKeyPair:
		return a.EphemeralKeyPair, true
	case FieldTimestamp:
		return a.Timestamp, true
	case FieldMethod:
		return string(a.Method), a.Method != ""
	case FieldSharedSecret:
		return a.SharedSecret, a.SharedSecret != ""
	}
	return nil, false
}
