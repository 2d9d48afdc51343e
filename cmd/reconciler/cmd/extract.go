package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"name-reconciliation/internal/domain"
	"name-reconciliation/internal/parser"
	"name-reconciliation/internal/report"
)

func newExtractCommand(a *app) *cobra.Command {
	var (
		pattern string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "extract TEXTFILE",
		Short: "Turn an extracted document text into a dataset file",
		Long: `extract pulls the payee records out of TEXTFILE and writes them as a
"<name>: <amount>" list headed by its totals line, ready for "ledger".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pattern == "" {
				pattern = a.cfg.Extract.Pattern
			}
			extractor, err := parser.NewExtractor(pattern, a.codec)
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return &domain.SourceNotFoundError{Path: args[0], Err: err}
			}
			origin := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			ds, stats := extractor.Extract(origin, string(raw))
			for _, w := range stats.Warnings {
				a.logger.Warn().Err(w).Str("file", args[0]).Msg("skipped record")
			}

			lines := make([]string, 0, ds.Len())
			for _, r := range ds.Records() {
				lines = append(lines, r.Name+": "+a.codec.FormatNull(r.Amount, report.Unknown))
			}

			enc, err := a.cfg.OutputEnc()
			if err != nil {
				return err
			}
			if output == "" {
				output = origin + ".txt"
			}
			if err := report.WriteLinesFile(output, lines, a.codec, enc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Records: %d\nOutput: %s\n", ds.Len(), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "", "extraction regexp with name, amount and optional id groups")
	cmd.Flags().StringVarP(&output, "output", "o", "", "dataset file to write (default the text file's name)")
	return cmd
}
