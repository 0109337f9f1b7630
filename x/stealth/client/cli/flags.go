package cli

import (
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client/flags"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/client/utils"
	"github.com/Hikari-Chain/hikari-stealth/x/stealth/types"
)

const (
	FlagIdentity     = "identity"
	FlagEphemeralKey = "ephemeral-key"
	FlagEphemeral    = "ephemeral"
	FlagOverwrite    = "overwrite"
)

// AnnotationOffline marks commands that never use the keeper, so the root
// command does not open the database for them.
const AnnotationOffline = "stealth.offline"

// IsOffline reports whether cmd carries AnnotationOffline.
func IsOffline(cmd *cobra.Command) bool {
	return cmd.Annotations[AnnotationOffline] == "true"
}

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(flags.FlagOutput, "o", utils.OutputFormatText, "Output format (text|json)")
}

func addIdentityFlag(cmd *cobra.Command) {
	cmd.Flags().String(FlagIdentity, "", "Identity file to use instead of the one in the home directory")
}

func printOutput(cmd *cobra.Command, v any) error {
	format, err := cmd.Flags().GetString(flags.FlagOutput)
	if err != nil {
		return err
	}
	return utils.PrintOutput(cmd.OutOrStdout(), format, v)
}

func identityPath(cmd *cobra.Command, clientCtx utils.ClientContext) string {
	if path, _ := cmd.Flags().GetString(FlagIdentity); path != "" {
		return path
	}
	return utils.IdentityPath(clientCtx.HomeDir)
}

func loadOwner(cmd *cobra.Command, clientCtx utils.ClientContext) (types.KeyPair, error) {
	return utils.LoadIdentity(identityPath(cmd, clientCtx))
}
