package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"name-reconciliation/internal/domain"
	"name-reconciliation/internal/usecase"
)

func newLedgerCommand(a *app) *cobra.Command {
	var req usecase.LedgerRequest

	cmd := &cobra.Command{
		Use:   "ledger PROJECT PAYMENTS",
		Short: "Reconcile a project list against a payments list",
		Long: `ledger resolves every name of PROJECT against PAYMENTS. Both files use
the "<name>: <amount>" grammar. By default a name only matches when the
amounts agree as well.

Besides the report it writes the resolved names ("found") in the same
grammar, so the list can be fed to a later stage, and the unresolved ones
("not found").`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.options(domain.ModeNameAndAmount)
			if err != nil {
				return err
			}
			uc, release, err := a.newUseCase(opts, false)
			if err != nil {
				return err
			}
			defer release()

			req.ProjectPath, req.PaymentsPath = args[0], args[1]
			if req.ReportPath == "" {
				req.ReportPath = defaultReportPath("ledger_report", opts)
			}

			res, err := uc.ReconcileLedger(cmd.Context(), req, opts, a.progressFunc(cmd.ErrOrStderr()))
			if err != nil {
				return fmt.Errorf("ledger reconciliation failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Found: %d\nNot found: %d\n", res.Found, res.NotFound)
			if res.Report.IncludeAmounts {
				fmt.Fprintf(out, "Total value: %s\n", a.codec.Format(res.Report.TotalAmount))
			}
			fmt.Fprintf(out, "Report: %s\n", req.ReportPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.ReportPath, "report", "o", "", "report path (default ledger_report with the format's extension)")
	cmd.Flags().StringVar(&req.FoundPath, "found", "found.txt", "found names list; empty to skip")
	cmd.Flags().StringVar(&req.NotFoundPath, "not-found", "not_found.txt", "not found names list; empty to skip")
	return cmd
}
