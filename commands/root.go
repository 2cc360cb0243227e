package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the openbill CLI with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "openbill",
		Short: "Shared expense ledger for small groups",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	serveCmd := newServeCommand()
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newBalancesCommand())

	// running the binary without a subcommand starts the server
	rootCmd.RunE = serveCmd.RunE

	return rootCmd
}
