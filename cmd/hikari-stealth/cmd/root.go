package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cosmossdk.io/log"

	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/version"

	stealthapp "github.com/Hikari-Chain/hikari-stealth/app"
	"github.com/Hikari-Chain/hikari-stealth/x/stealth/client/cli"
	"github.com/Hikari-Chain/hikari-stealth/x/stealth/client/utils"
)

// EnvPrefix prefixes the environment variables overriding configuration
const EnvPrefix = "HIKARI_STEALTH"

// DefaultNodeHome is the default home directory
var DefaultNodeHome = defaultHome()

func defaultHome() string {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		return "." + stealthapp.Name
	}
	return filepath.Join(userHomeDir, "."+stealthapp.Name)
}

// NewRootCmd creates the root command. The application is built before any
// module subcommand runs; the returned cleanup closes it.
func NewRootCmd() (*cobra.Command, func() error) {
	if version.AppName == "" {
		version.AppName = stealthapp.Name
	}

	var app *stealthapp.StealthApp

	rootCmd := &cobra.Command{
		Use:           stealthapp.Name,
		Short:         "Hikari stealth address tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !needsApp(cmd) {
				return nil
			}

			v, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logger, err := newLogger(cmd, v)
			if err != nil {
				return err
			}

			home := v.GetString(flags.FlagHome)
			cfg, err := stealthapp.ConfigFromAppOptions(v)
			if err != nil {
				return err
			}
			db, err := stealthapp.OpenDB(home, cfg.DBBackend)
			if err != nil {
				return err
			}

			app, err = stealthapp.NewStealthApp(logger, db, v)
			if err != nil {
				db.Close()
				return err
			}

			utils.SetCmdClientContext(cmd, utils.ClientContext{
				Keeper:  app.StealthKeeper,
				HomeDir: home,
			})
			return nil
		},
	}

	rootCmd.PersistentFlags().String(flags.FlagHome, DefaultNodeHome, "directory for config and data")
	rootCmd.PersistentFlags().String(flags.FlagLogLevel, zerolog.InfoLevel.String(), "The logging level (trace|debug|info|warn|error|fatal|panic|disabled)")
	stealthapp.AddConfigFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		cli.GetTxCmd(),
		cli.GetQueryCmd(),
		cli.GetHistoryCmd(),
		version.NewVersionCommand(),
	)

	cleanup := func() error {
		if app == nil {
			return nil
		}
		err := app.Close()
		app = nil
		return err
	}
	return rootCmd, cleanup
}

// needsApp reports whether cmd is a module command that uses the keeper
func needsApp(cmd *cobra.Command) bool {
	if cli.IsOffline(cmd) {
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "tx", "query", "history":
			return c.Parent() != nil && c.Parent().Parent() == nil
		}
	}
	return false
}

// loadConfig layers flags over environment over <home>/config.toml
func loadConfig(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.AddConfigPath(v.GetString(flags.FlagHome))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return v, nil
}

func newLogger(cmd *cobra.Command, v *viper.Viper) (log.Logger, error) {
	level, err := zerolog.ParseLevel(v.GetString(flags.FlagLogLevel))
	if err != nil {
		return nil, err
	}
	return log.NewLogger(cmd.ErrOrStderr(), log.LevelOption(level)), nil
}
