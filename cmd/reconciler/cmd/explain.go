package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"name-reconciliation/internal/domain"
	"name-reconciliation/internal/matcher"
)

func newExplainCommand(a *app) *cobra.Command {
	var (
		amount  string
		dataset string
		nearest int
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "explain NAME",
		Short: "Show how a name is resolved against the reference",
		Long: `explain runs a single name through the matcher and prints every stage:
the exact lookup, each prefix tried with its candidates, the token fallback
and the outcome, followed by the closest reference names.

The reference is the reference store, or the dataset file given with
--dataset.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.options(domain.ModeNameOnly)
			if err != nil {
				return err
			}
			q := domain.Query{Name: strings.TrimSpace(args[0])}
			if amount != "" {
				d, err := a.codec.Parse(amount)
				if err != nil {
					return err
				}
				q.Amount = decimal.NewNullDecimal(d)
			}

			uc, release, err := a.newUseCase(opts, dataset == "")
			if err != nil {
				return err
			}
			defer release()

			ref, err := uc.LoadReference(cmd.Context(), dataset)
			if err != nil {
				return err
			}

			tr := uc.Explain(q, ref, opts.Mode, nearest)
			if asJSON {
				output, err := json.MarshalIndent(tr, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to generate JSON trace: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(output))
				return nil
			}
			printTrace(cmd.OutOrStdout(), tr)
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "amount to match in name-and-amount mode, e.g. 1.234,56")
	cmd.Flags().StringVar(&dataset, "dataset", "", "resolve against this dataset file instead of the reference store")
	cmd.Flags().IntVar(&nearest, "nearest", 3, "number of closest reference names to list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the trace as JSON")
	return cmd
}

func printTrace(w io.Writer, tr matcher.Trace) {
	fmt.Fprintf(w, "Query: %s (%s)\n", tr.Query, tr.Mode)
	fmt.Fprintf(w, "Exact: %t\n", tr.Exact)
	for _, p := range tr.Prefixes {
		fmt.Fprintf(w, "Prefix %q: %d candidate(s)", p.Prefix, len(p.Candidates))
		if len(p.Candidates) > 0 && len(p.Candidates) <= 5 {
			fmt.Fprintf(w, " %s", strings.Join(p.Candidates, ", "))
		}
		fmt.Fprintln(w)
	}
	if len(tr.Tokens) > 0 {
		fmt.Fprintf(w, "Tokens: %s\n", strings.Join(tr.Tokens, ", "))
		fmt.Fprintf(w, "Fallback candidates: %d\n", len(tr.FallbackCandidates))
	}
	fmt.Fprintf(w, "Outcome: %s\n", tr.Outcome)
	for _, s := range tr.Nearest {
		fmt.Fprintf(w, "  ~ %s (distance %d)\n", s.Name, s.Distance)
	}
}
