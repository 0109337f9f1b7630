package app

import (
	"fmt"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"

	dbm "github.com/cosmos/cosmos-db"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/types"
)

// Application option keys, as spelled in config.toml and on the command line
const (
	FlagDBBackend           = "db-backend"
	FlagPersistSharedSecret = "persist-shared-secret"
	FlagHistoryKey          = "history-key"
	FlagScanWorkers         = "scan-workers"
	FlagSecretCacheSize     = "secret-cache-size"
	FlagScratchTTL          = "scratch-ttl"
)

// AppOptions is the subset of viper used to configure the application.
type AppOptions interface {
	Get(string) interface{}
}

// EmptyAppOptions is a stub implementing AppOptions
type EmptyAppOptions struct{}

// Get implements AppOptions
func (ao EmptyAppOptions) Get(_ string) interface{} {
	return nil
}

// Config is the resolved application configuration.
type Config struct {
	DBBackend dbm.BackendType
	Params    types.Params
}

// AddConfigFlags registers the application options on fs
func AddConfigFlags(fs *pflag.FlagSet) {
	defaults := types.DefaultParams()
	fs.String(FlagDBBackend, string(dbm.GoLevelDBBackend), "Database backend (goleveldb|memdb)")
	fs.Bool(FlagPersistSharedSecret, defaults.PersistSharedSecret, "Keep shared secrets in recorded announcements")
	fs.String(FlagHistoryKey, defaults.HistoryKey, "Storage key of the announcement history")
	fs.Int(FlagScanWorkers, defaults.ScanWorkers, "Number of candidates opened concurrently while scanning")
	fs.Int(FlagSecretCacheSize, defaults.SecretCacheSize, "Capacity of the shared secret cache, 0 disables it")
	fs.Duration(FlagScratchTTL, defaults.ScratchTTL, "How long the last ephemeral key stays in memory, 0 disables it")
}

// ConfigFromAppOptions resolves the configuration, falling back to defaults
// for unset options.
func ConfigFromAppOptions(appOpts AppOptions) (Config, error) {
	cfg := Config{
		DBBackend: dbm.GoLevelDBBackend,
		Params:    types.DefaultParams(),
	}

	var err error
	if v := appOpts.Get(FlagDBBackend); v != nil {
		backend, err := cast.ToStringE(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", FlagDBBackend, err)
		}
		cfg.DBBackend = dbm.BackendType(backend)
	}
	if v := appOpts.Get(FlagPersistSharedSecret); v != nil {
		if cfg.Params.PersistSharedSecret, err = cast.ToBoolE(v); err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", FlagPersistSharedSecret, err)
		}
	}
	if v := appOpts.Get(FlagHistoryKey); v != nil {
		if cfg.Params.HistoryKey, err = cast.ToStringE(v); err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", FlagHistoryKey, err)
		}
	}
	if v := appOpts.Get(FlagScanWorkers); v != nil {
		if cfg.Params.ScanWorkers, err = cast.ToIntE(v); err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", FlagScanWorkers, err)
		}
	}
	if v := appOpts.Get(FlagSecretCacheSize); v != nil {
		if cfg.Params.SecretCacheSize, err = cast.ToIntE(v); err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", FlagSecretCacheSize, err)
		}
	}
	if v := appOpts.Get(FlagScratchTTL); v != nil {
		if cfg.Params.ScratchTTL, err = cast.ToDurationE(v); err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", FlagScratchTTL, err)
		}
	}

	switch cfg.DBBackend {
	case dbm.GoLevelDBBackend, dbm.MemDBBackend:
	default:
		return Config{}, fmt.Errorf("unsupported %s %q", FlagDBBackend, cfg.DBBackend)
	}
	if err := cfg.Params.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
