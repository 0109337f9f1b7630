package store

import (
	"fmt"
	"sync"

	"cosmossdk.io/errors"
	"cosmossdk.io/store/dbadapter"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	dbm "github.com/cosmos/cosmos-db"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/types"
)

var _ types.Storage = (*KVStorage)(nil)

// KVStorage implements types.Storage on top of a cosmos-db database. Items are
// namespaced under types.HistoryKeyPrefix so the database can be shared.
type KVStorage struct {
	mu sync.RWMutex
	kv storetypes.KVStore
}

// NewDBStorage wraps db as a prefixed key-value store
func NewDBStorage(db dbm.DB) *KVStorage {
	return &KVStorage{
		kv: prefix.NewStore(dbadapter.Store{DB: db}, types.HistoryKeyPrefix),
	}
}

// NewMemStorage returns a storage backed by an in-memory database
func NewMemStorage() *KVStorage {
	return NewDBStorage(dbm.NewMemDB())
}

// OpenDB opens (or creates) the named database under dir
func OpenDB(name, dir string, backend dbm.BackendType) (dbm.DB, error) {
	db, err := dbm.NewDB(name, backend, dir)
	if err != nil {
		return nil, errors.Wrapf(types.ErrStorage, "failed to open %s database in %s: %s", backend, dir, err)
	}
	return db, nil
}

// GetItem returns the value stored under key
func (s *KVStorage) GetItem(key string) (value string, found bool, err error) {
	if key == "" {
		return "", false, errors.Wrap(types.ErrStorage, "key cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	defer recoverStorage("get", key, &err)

	k := []byte(key)
	if !s.kv.Has(k) {
		return "", false, nil
	}
	return string(s.kv.Get(k)), true, nil
}

// SetItem stores value under key, replacing any previous value
func (s *KVStorage) SetItem(key, value string) (err error) {
	if key == "" {
		return errors.Wrap(types.ErrStorage, "key cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	defer recoverStorage("set", key, &err)

	s.kv.Set([]byte(key), []byte(value))
	return nil
}

// the store adapters panic on backend errors
func recoverStorage(op, key string, err *error) {
	if r := recover(); r != nil {
		*err = errors.Wrapf(types.ErrStorage, "%s %q: %s", op, key, fmt.Sprint(r))
	}
}
