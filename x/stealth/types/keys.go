package types

const (
	// ModuleName defines the module name
	ModuleName = "stealth"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// DefaultHistoryKey is the well-known storage key hosting the serialized
	// announcement history blob
	DefaultHistoryKey = "stealthHistory"

	// IdentityFileName is the file under the home directory holding the
	// local stealth identity
	IdentityFileName = "identity.json"
)

// Store key prefixes
var (
	// HistoryKeyPrefix namespaces the storage items owned by this module
	// inside a shared database. Key: HistoryKeyPrefix | item key
	HistoryKeyPrefix = []byte{0x01}
)

// StorageItemKey returns the raw database key for a storage item
func StorageItemKey(item string) []byte {
	itemBytes := []byte(item)
	key := make([]byte, len(HistoryKeyPrefix)+len(itemBytes))
	copy(key, HistoryKeyPrefix)
	copy(key[len(HistoryKeyPrefix):], itemBytes)
	return key
}
