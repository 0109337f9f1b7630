package app

import (
	"path/filepath"

	"cosmossdk.io/errors"
	"cosmossdk.io/log"
	"github.com/prometheus/client_golang/prometheus"

	dbm "github.com/cosmos/cosmos-db"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/crypto"
	"github.com/Hikari-Chain/hikari-stealth/x/stealth/keeper"
	"github.com/Hikari-Chain/hikari-stealth/x/stealth/store"
	"github.com/Hikari-Chain/hikari-stealth/x/stealth/types"
)

const (
	// Name is the application name
	Name = "hikari-stealth"

	dbName = types.StoreKey
)

// StealthApp wires the stealth keeper to its collaborators and owns them.
type StealthApp struct {
	logger log.Logger
	db     dbm.DB
	config Config

	StealthKeeper *keeper.Keeper
	SecretCache   *crypto.SecretCache
	Scratch       *crypto.ScratchKey
	Registry      *prometheus.Registry
}

// NewStealthApp returns a reference to an initialized StealthApp.
func NewStealthApp(
	logger log.Logger,
	db dbm.DB,
	appOpts AppOptions,
) (*StealthApp, error) {
	cfg, err := ConfigFromAppOptions(appOpts)
	if err != nil {
		return nil, err
	}

	app := &StealthApp{
		logger:   logger,
		db:       db,
		config:   cfg,
		Scratch:  crypto.NewScratchKey(nil, cfg.Params.ScratchTTL),
		Registry: prometheus.NewRegistry(),
	}
	if cfg.Params.SecretCacheSize > 0 {
		if app.SecretCache, err = crypto.NewSecretCache(cfg.Params.SecretCacheSize); err != nil {
			return nil, err
		}
	}

	metrics, err := keeper.NewMetrics(app.Registry)
	if err != nil {
		return nil, err
	}

	app.StealthKeeper, err = keeper.NewKeeper(
		crypto.NewSecp256k1Provider(),
		store.NewDBStorage(db),
		logger,
		cfg.Params,
		keeper.WithSecretCache(app.SecretCache),
		keeper.WithScratchKey(app.Scratch),
		keeper.WithMetrics(metrics),
	)
	if err != nil {
		return nil, err
	}

	return app, nil
}

// OpenDB opens the application database under home
func OpenDB(home string, backend dbm.BackendType) (dbm.DB, error) {
	if backend == dbm.MemDBBackend {
		return dbm.NewMemDB(), nil
	}
	return store.OpenDB(dbName, filepath.Join(home, "data"), backend)
}

// Logger returns the application logger
func (app *StealthApp) Logger() log.Logger {
	return app.logger
}

// Config returns the resolved configuration
func (app *StealthApp) Config() Config {
	return app.config
}

// Close wipes in-memory secrets and closes the database
func (app *StealthApp) Close() error {
	app.StealthKeeper.ClearSecrets()
	if err := app.db.Close(); err != nil {
		return errors.Wrap(types.ErrStorage, err.Error())
	}
	return nil
}
