package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/smsledger-dev/smsledger/internal/decoder"
	"github.com/smsledger-dev/smsledger/internal/export"
	"github.com/smsledger-dev/smsledger/internal/ingest"
	"github.com/smsledger-dev/smsledger/internal/model"
	"github.com/smsledger-dev/smsledger/internal/rules"
)

func newDecodeCommand() *cobra.Command {
	var rulesPath string
	var outPath string
	var dbPath string

	cmd := &cobra.Command{
		Use:   "decode <dump.json>",
		Short: "Decode an SMS dump into transaction records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], rulesPath, outPath, dbPath)
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "YAML file with additional rule sets")
	cmd.Flags().StringVar(&outPath, "out", "", "write results CSV to this path (default stdout)")
	cmd.Flags().StringVar(&dbPath, "db", "", "also write successful records to this SQLite database")

	return cmd
}

func runDecode(stdout, stderr io.Writer, dumpPath, rulesPath, outPath, dbPath string) error {
	registry, err := buildRegistry(rulesPath)
	if err != nil {
		return err
	}

	f, err := os.Open(dumpPath)
	if err != nil {
		return fmt.Errorf("opening dump: %w", err)
	}
	defer f.Close()

	msgs, err := ingest.ReadDump(f)
	if err != nil {
		return err
	}

	results := decoder.New(registry).DecodeAll(msgs)

	failed := 0
	for _, res := range results {
		if res.Status == model.StatusUnparsed {
			failed++
			fmt.Fprintf(stderr, "unparsed %s (sender %s): %s\n", res.Message.ID, res.Message.Sender, res.Failure.Error())
		}
	}

	out := stdout
	if outPath != "" {
		of, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer of.Close()
		out = of
	}
	if err := export.WriteResults(out, export.Slice(results)); err != nil {
		return err
	}

	if dbPath != "" {
		db, err := export.OpenDB(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		if _, err := export.InsertRecords(db, export.Slice(results)); err != nil {
			return err
		}
	}

	fmt.Fprintf(stderr, "decoded %d of %d messages (%d unparsed)\n", len(results)-failed, len(results), failed)
	return nil
}

func buildRegistry(rulesPath string) (*rules.Registry, error) {
	registry := rules.DefaultRegistry()
	if rulesPath == "" {
		return registry, nil
	}
	sets, err := rules.LoadFile(rulesPath)
	if err != nil {
		return nil, err
	}
	for _, rs := range sets {
		if err := registry.Register(rs); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
