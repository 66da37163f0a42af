package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newSendersCommand() *cobra.Command {
	var rulesPath string

	cmd := &cobra.Command{
		Use:   "senders",
		Short: "List registered rule sets and their sender predicates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSenders(cmd.OutOrStdout(), rulesPath)
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "YAML file with additional rule sets")

	return cmd
}

func runSenders(stdout io.Writer, rulesPath string) error {
	registry, err := buildRegistry(rulesPath)
	if err != nil {
		return err
	}
	for _, rs := range registry.RuleSets() {
		fmt.Fprintf(stdout, "%-16s %s %q\n", rs.Label, rs.Match.Kind, rs.Match.Value)
	}
	return nil
}
