package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flashtoast",
		Short: "Flash toast notifications across redirects",
		Long: `flashtoast serves a small web app that queues toast notifications
in the session, carries them across redirects, and shows each one
exactly once on the next page.

The send command talks to a running server over its JSON API and
plays the returned toasts through the client display runtime.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		serveCmd(),
		sendCmd(),
		versionCmd(),
	)
	return cmd
}
