package utils

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/keeper"
)

// ClientContext carries what the stealth commands need from the application.
type ClientContext struct {
	Keeper  *keeper.Keeper
	HomeDir string
}

type clientContextKey struct{}

// SetCmdClientContext stores clientCtx in the command context so that
// subcommands can retrieve it with GetClientContext.
func SetCmdClientContext(cmd *cobra.Command, clientCtx ClientContext) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, clientContextKey{}, clientCtx))
}

// GetClientContext returns the client context set on cmd or one of its
// parents.
func GetClientContext(cmd *cobra.Command) (ClientContext, error) {
	for c := cmd; c != nil; c = c.Parent() {
		if ctx := c.Context(); ctx != nil {
			if clientCtx, ok := ctx.Value(clientContextKey{}).(ClientContext); ok && clientCtx.Keeper != nil {
				return clientCtx, nil
			}
		}
	}
	return ClientContext{}, errors.New("stealth client context is not initialized")
}
