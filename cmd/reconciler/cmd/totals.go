package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"name-reconciliation/internal/domain"
	"name-reconciliation/internal/report"
	"name-reconciliation/internal/textenc"
)

func newTotalsCommand(a *app) *cobra.Command {
	var encName string

	cmd := &cobra.Command{
		Use:   "totals FILE...",
		Short: "Insert or refresh the totals line of name lists",
		Long: `totals counts the "<name>: <amount>" lines of each FILE and writes
"Total: <count> names, Value: <amount>" as its first line, replacing an
existing totals line. Missing files are reported and skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if encName == "" {
				encName = a.cfg.OutputEncoding
			}
			enc, err := textenc.Lookup(encName)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				count, total, err := report.UpdateTotalsLine(path, a.codec, enc)
				if errors.Is(err, domain.ErrSourceNotFound) {
					a.logger.Warn().Err(err).Str("file", path).Msg("skipped")
					failed++
					continue
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %s\n", path, report.TotalsLine(count, total, a.codec))
			}
			if failed == len(args) {
				return fmt.Errorf("none of the %d files could be read", len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&encName, "file-encoding", "", "encoding of the files (default output_encoding)")
	return cmd
}
