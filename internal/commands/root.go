package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smsledger-dev/smsledger/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "smsledger",
		Short:   "Extract transaction records from bank SMS dumps",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newDecodeCommand())
	rootCmd.AddCommand(newFilterCommand())
	rootCmd.AddCommand(newSendersCommand())

	return rootCmd
}
