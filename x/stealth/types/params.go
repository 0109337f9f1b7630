package types

import (
	"fmt"
	"time"
)

// Params configures the stealth engine.
type Params struct {
	// PersistSharedSecret keeps the raw shared secret in saved announcements
	// so the owner can reopen an address without another key agreement.
	PersistSharedSecret bool `json:"persist_shared_secret" yaml:"persist_shared_secret" mapstructure:"persist_shared_secret"`
	// HistoryKey is the storage item hosting the announcement history blob.
	HistoryKey string `json:"history_key" yaml:"history_key" mapstructure:"history_key"`
	// ScanWorkers bounds the number of candidates opened concurrently.
	ScanWorkers int `json:"scan_workers" yaml:"scan_workers" mapstructure:"scan_workers"`
	// SecretCacheSize is the capacity of the shared secret cache, 0 disables it.
	SecretCacheSize int `json:"secret_cache_size" yaml:"secret_cache_size" mapstructure:"secret_cache_size"`
	// ScratchTTL is how long the last ephemeral key stays in memory, 0 disables retention.
	ScratchTTL time.Duration `json:"scratch_ttl" yaml:"scratch_ttl" mapstructure:"scratch_ttl"`
}

// DefaultParams returns default stealth parameters
func DefaultParams() Params {
	return Params{
		PersistSharedSecret: true,
		HistoryKey:          DefaultHistoryKey,
		ScanWorkers:         4,
		SecretCacheSize:     256,
		ScratchTTL:          30 * time.Second,
	}
}

// Validate validates params
func (p Params) Validate() error {
	if p.HistoryKey == "" {
		return fmt.Errorf("history_key cannot be empty")
	}
	if p.ScanWorkers <= 0 {
		return fmt.Errorf("scan_workers must be greater than 0")
	}
	if p.ScanWorkers > 256 {
		return fmt.Errorf("scan_workers cannot exceed 256")
	}
	if p.SecretCacheSize < 0 {
		return fmt.Errorf("secret_cache_size must be non-negative")
	}
	if p.ScratchTTL < 0 {
		return fmt.Errorf("scratch_ttl must be non-negative")
	}
	if p.ScratchTTL > time.Hour {
		return fmt.Errorf("scratch_ttl cannot exceed 1h")
	}
	return nil
}
