package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/version"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/client/utils"
	"github.com/Hikari-Chain/hikari-stealth/x/stealth/types"
)

// GetQueryCmd returns the commands that open or recognize stealth addresses
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "query",
		Aliases:                    []string{"q"},
		Short:                      fmt.Sprintf("Querying commands for the %s module", types.ModuleName),
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		GetQueryOpenCmd(),
		GetQueryScanCmd(),
		GetQueryFormatKeyCmd(),
	)

	return cmd
}

// GetQueryOpenCmd returns the command recovering the private key of a stealth address
func GetQueryOpenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open [stealth-address]",
		Short: "Recover the private key of a stealth address",
		Long: `Recover the private key of a stealth address using the local history and
the local identity. The ephemeral public key is only needed when the history
holds no announcement for the address.`,
		Example: fmt.Sprintf(`
# Open an address recorded in the local history
%s query open 0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf

# Open an address received from a sender
%s query open 0x7E5F... --ephemeral 03def456...
`, version.AppName, version.AppName),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := utils.GetClientContext(cmd)
			if err != nil {
				return err
			}

			owner, err := loadOwner(cmd, clientCtx)
			if err != nil {
				return err
			}

			ephemeral, _ := cmd.Flags().GetString(FlagEphemeral)
			opened, err := clientCtx.Keeper.OpenStealthAddress(cmd.Context(), args[0], ephemeral, owner)
			if err != nil {
				return err
			}
			return printOutput(cmd, opened)
		},
	}

	cmd.Flags().String(FlagEphemeral, "", "Ephemeral public key announced by the sender")
	addIdentityFlag(cmd)
	addOutputFlag(cmd)
	return cmd
}

// GetQueryScanCmd returns the command filtering announcements owned by the local identity
func GetQueryScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [candidates-file]",
		Short: "List the candidate announcements owned by the local identity",
		Long: `Scan a JSON array of announcements, or an exported history snapshot, and print
the ones the local identity can open. Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := utils.GetClientContext(cmd)
			if err != nil {
				return err
			}

			owner, err := loadOwner(cmd, clientCtx)
			if err != nil {
				return err
			}

			candidates, err := utils.ReadCandidates(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			owned, err := clientCtx.Keeper.ScanStealthAddresses(cmd.Context(), candidates, owner)
			if err != nil {
				return err
			}

			public := make([]types.Announcement, len(owned))
			for i, a := range owned {
				public[i] = a.WithoutSecrets()
			}
			return printOutput(cmd, public)
		},
	}

	addIdentityFlag(cmd)
	addOutputFlag(cmd)
	return cmd
}

// GetQueryFormatKeyCmd returns the command normalizing a public key
func GetQueryFormatKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "format-key [public-key]",
		Short:       "Normalize a public key as accepted by generate",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{AnnotationOffline: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			key, ok := types.FormatPublicKey(args[0])
			if !ok {
				return fmt.Errorf("%q is not a valid public key", args[0])
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), key)
			return err
		},
	}

	return cmd
}
