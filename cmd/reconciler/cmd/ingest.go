package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"name-reconciliation/internal/domain"
	"name-reconciliation/internal/parser"
)

func newIngestCommand(a *app) *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "ingest DIR",
		Short: "Build the reference store from extracted document texts",
		Long: `ingest reads every .txt file in DIR, each holding the text extracted
from one payroll document, pulls the payee records out of it and stores one
dataset per document in the reference store. Documents already stored under
the same name are replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pattern == "" {
				pattern = a.cfg.Extract.Pattern
			}
			extractor, err := parser.NewExtractor(pattern, a.codec)
			if err != nil {
				return err
			}
			opts, err := a.options(domain.ModeNameOnly)
			if err != nil {
				return err
			}
			uc, release, err := a.newUseCase(opts, true)
			if err != nil {
				return err
			}
			defer release()

			res, err := uc.Ingest(cmd.Context(), args[0], extractor)
			if err != nil {
				return fmt.Errorf("ingest failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Documents: %d\nRecords: %d\nStore: %s\n",
				res.Documents, res.Records, a.cfg.Reference.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "", "extraction regexp with name, amount and optional id groups")
	return cmd
}
