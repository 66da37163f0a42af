package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/smsledger-dev/smsledger/internal/ingest"
)

func newFilterCommand() *cobra.Command {
	var entities []string
	var outPath string

	cmd := &cobra.Command{
		Use:   "filter <dump.json>",
		Short: "Keep only messages from known bank senders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], outPath, entities)
		},
	}

	cmd.Flags().StringSliceVar(&entities, "entity", nil, "bank entity substring to keep (repeatable, required)")
	_ = cmd.MarkFlagRequired("entity")
	cmd.Flags().StringVar(&outPath, "out", "", "write filtered dump to this path (default stdout)")

	return cmd
}

func runFilter(stdout, stderr io.Writer, dumpPath, outPath string, entities []string) error {
	f, err := os.Open(dumpPath)
	if err != nil {
		return fmt.Errorf("opening dump: %w", err)
	}
	defer f.Close()

	msgs, err := ingest.ReadDump(f)
	if err != nil {
		return err
	}

	kept := ingest.FilterBankSenders(msgs, entities)

	out := stdout
	if outPath != "" {
		of, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer of.Close()
		out = of
	}
	if err := ingest.WriteDump(out, kept); err != nil {
		return err
	}

	fmt.Fprintf(stderr, "kept %d of %d messages\n", len(kept), len(msgs))
	return nil
}
