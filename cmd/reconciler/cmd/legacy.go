package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"name-reconciliation/internal/domain"
	"name-reconciliation/internal/usecase"
)

func newLegacyCommand(a *app) *cobra.Command {
	var req usecase.LegacyRequest

	cmd := &cobra.Command{
		Use:   "legacy DIR",
		Short: "Reconcile legacy fixed-width exports against the reference store",
		Long: `legacy scans every .ret and .txt export in DIR, picks the names from
the fixed-width layout and resolves them by name against the reference
store built with "reconciler ingest".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.options(domain.ModeNameOnly)
			if err != nil {
				return err
			}
			uc, release, err := a.newUseCase(opts, true)
			if err != nil {
				return err
			}
			defer release()

			req.Dir = args[0]
			if req.ReportPath == "" {
				req.ReportPath = defaultReportPath("legacy_report", opts)
			}

			res, err := uc.ReconcileLegacy(cmd.Context(), req, opts, a.progressFunc(cmd.ErrOrStderr()))
			if err != nil {
				return fmt.Errorf("legacy reconciliation failed: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, f := range res.Files {
				fmt.Fprintf(out, "%s: %d names, %d found\n", filepath.Base(f.Path), f.Names, f.Found)
			}
			fmt.Fprintf(out, "Total names found: %d\n", res.Report.TotalCount)
			if res.Report.IncludeAmounts {
				fmt.Fprintf(out, "Total value: %s\n", a.codec.Format(res.Report.TotalAmount))
			}
			fmt.Fprintf(out, "Report: %s\n", req.ReportPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.ReportPath, "report", "o", "", "report path (default legacy_report with the format's extension)")
	return cmd
}
