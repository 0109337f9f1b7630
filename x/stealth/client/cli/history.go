package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth"
	"github.com/Hikari-Chain/hikari-stealth/x/stealth/client/utils"
)

// GetHistoryCmd returns the commands managing the local announcement history
func GetHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "history",
		Short:                      "Manage the local stealth announcement history",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		GetHistoryShowCmd(),
		GetHistoryListCmd(),
		GetHistoryExportCmd(),
		GetHistoryImportCmd(),
		GetHistoryForgetCmd(),
	)

	return cmd
}

// GetHistoryShowCmd returns the command printing one announcement
func GetHistoryShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [stealth-address]",
		Short: "Show the announcement recorded for a stealth address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := utils.GetClientContext(cmd)
			if err != nil {
				return err
			}

			a, err := clientCtx.Keeper.LoadAnnouncement(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a == nil {
				return fmt.Errorf("no announcement recorded for %s", args[0])
			}
			return printOutput(cmd, a.WithoutSecrets())
		},
	}

	addOutputFlag(cmd)
	return cmd
}

// GetHistoryListCmd returns the command listing all recorded announcements
func GetHistoryListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the recorded announcements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := utils.GetClientContext(cmd)
			if err != nil {
				return err
			}

			all, err := clientCtx.Keeper.Announcements(cmd.Context())
			if err != nil {
				return err
			}
			for i := range all {
				all[i] = all[i].WithoutSecrets()
			}
			return printOutput(cmd, all)
		},
	}

	addOutputFlag(cmd)
	return cmd
}

// GetHistoryExportCmd returns the command dumping the history as a snapshot
func GetHistoryExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the history, secrets included, as a JSON snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := utils.GetClientContext(cmd)
			if err != nil {
				return err
			}

			gs, err := stealth.ExportGenesis(cmd.Context(), clientCtx.Keeper)
			if err != nil {
				return err
			}
			return utils.PrintOutput(cmd.OutOrStdout(), utils.OutputFormatJSON, gs)
		},
	}

	return cmd
}

// GetHistoryImportCmd returns the command loading a snapshot into the history
func GetHistoryImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [snapshot-file]",
		Short: "Import a JSON snapshot produced by export",
		Long: `Import a JSON snapshot produced by export. Announcements already recorded for
the same address are replaced. Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := utils.GetClientContext(cmd)
			if err != nil {
				return err
			}

			gs, err := utils.ReadGenesis(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := stealth.InitGenesis(cmd.Context(), clientCtx.Keeper, gs); err != nil {
				return err
			}

			cmd.PrintErrf("imported %d announcements\n", len(gs.Announcements))
			return nil
		},
	}

	return cmd
}

// GetHistoryForgetCmd returns the command removing one announcement
func GetHistoryForgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forget [stealth-address]",
		Short: "Remove the announcement recorded for a stealth address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := utils.GetClientContext(cmd)
			if err != nil {
				return err
			}

			skip, _ := cmd.Flags().GetBool(flags.FlagSkipConfirmation)
			if !skip {
				if err := confirm(cmd, fmt.Sprintf("Forget announcement for %s", args[0])); err != nil {
					return err
				}
			}

			deleted, err := clientCtx.Keeper.DeleteAnnouncement(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("no announcement recorded for %s", args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolP(flags.FlagSkipConfirmation, "y", false, "Skip the confirmation prompt")
	return cmd
}
