package main

import (
	"fmt"
	"os"

	"github.com/Hikari-Chain/hikari-stealth/cmd/hikari-stealth/cmd"
)

func main() {
	rootCmd, cleanup := cmd.NewRootCmd()
	err := rootCmd.Execute()
	if cerr := cleanup(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}
