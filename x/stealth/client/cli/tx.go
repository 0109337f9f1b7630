package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/version"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/client/utils"
	"github.com/Hikari-Chain/hikari-stealth/x/stealth/types"
)

// GetTxCmd returns the commands that create keys or stealth addresses
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "tx",
		Short:                      fmt.Sprintf("%s key and address generation subcommands", types.ModuleName),
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		GetTxCreateAccountCmd(),
		GetTxDeleteAccountCmd(),
		GetTxEphemeralKeyCmd(),
		GetTxGenerateCmd(),
	)

	return cmd
}

// GetTxCreateAccountCmd returns the command creating the local stealth identity
func GetTxCreateAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-account",
		Short: "Create the local stealth identity",
		Long: `Create a new stealth identity and store it in the home directory.
Share the encryption public key with senders; keep the identity file private.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := utils.GetClientContext(cmd)
			if err != nil {
				return err
			}

			overwrite, _ := cmd.Flags().GetBool(FlagOverwrite)
			path := identityPath(cmd, clientCtx)

			pair, err := clientCtx.Keeper.CreateAccount(cmd.Context())
			if err != nil {
				return err
			}
			if err := utils.SaveIdentity(path, pair, overwrite); err != nil {
				return err
			}

			return printOutput(cmd, pair.Public())
		},
	}

	cmd.Flags().Bool(FlagOverwrite, false, "Replace an existing identity")
	addIdentityFlag(cmd)
	addOutputFlag(cmd)
	return cmd
}

// GetTxDeleteAccountCmd returns the command deleting the local stealth identity
func GetTxDeleteAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete-account",
		Short: "Delete the local stealth identity",
		Long: `Delete the local stealth identity. Addresses sent to it can no longer be
opened unless the history still caches their secrets.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := utils.GetClientContext(cmd)
			if err != nil {
				return err
			}

			path := identityPath(cmd, clientCtx)
			if _, err := utils.LoadIdentity(path); err != nil {
				return err
			}

			skip, _ := cmd.Flags().GetBool(flags.FlagSkipConfirmation)
			if !skip {
				if err := confirm(cmd, fmt.Sprintf("Delete stealth identity %s", path)); err != nil {
					return err
				}
			}

			if err := utils.DeleteIdentity(path); err != nil {
				return err
			}
			clientCtx.Keeper.ClearSecrets()

			cmd.PrintErrln("stealth identity deleted")
			return nil
		},
	}

	cmd.Flags().BoolP(flags.FlagSkipConfirmation, "y", false, "Skip the confirmation prompt")
	addIdentityFlag(cmd)
	return cmd
}

// GetTxEphemeralKeyCmd returns the command generating a single-use key
func GetTxEphemeralKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ephemeral-key",
		Short: "Generate an ephemeral key pair",
		Long: `Generate an ephemeral key pair. Pass the private key to generate with
--ephemeral-key to derive a reproducible stealth address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := utils.GetClientContext(cmd)
			if err != nil {
				return err
			}

			key, err := clientCtx.Keeper.GenerateEphemeralKeyPair(cmd.Context())
			if err != nil {
				return err
			}
			return printOutput(cmd, key)
		},
	}

	addOutputFlag(cmd)
	return cmd
}

// GetTxGenerateCmd returns the command deriving a stealth address for a recipient
func GetTxGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [recipient-public-key]",
		Short: "Generate a stealth address for a recipient",
		Long: `Generate a one-time stealth address for the recipient's encryption public key.
The announcement needed to reopen the address is recorded in the local history.
Share the ephemeral public key with the recipient.`,
		Example: fmt.Sprintf(`
# Generate a stealth address with a fresh ephemeral key
%s tx generate 02abc123...

# Reuse an ephemeral private key
%s tx generate ~02abc123... --ephemeral-key 4f3e...
`, version.AppName, version.AppName),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := utils.GetClientContext(cmd)
			if err != nil {
				return err
			}

			ephemeral, _ := cmd.Flags().GetString(FlagEphemeralKey)
			res, err := clientCtx.Keeper.GenerateStealthAddress(cmd.Context(), args[0], ephemeral)
			if err != nil {
				return err
			}
			return printOutput(cmd, res)
		},
	}

	cmd.Flags().String(FlagEphemeralKey, "", "Ephemeral private key to derive with")
	addOutputFlag(cmd)
	return cmd
}

func confirm(cmd *cobra.Command, label string) error {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    nopWriteCloser{cmd.ErrOrStderr()},
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
			return errors.New("aborted")
		}
		return err
	}
	return nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
