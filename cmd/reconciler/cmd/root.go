// Package cmd implements the reconciler command tree.
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"name-reconciliation/internal/config"
	"name-reconciliation/internal/currency"
	"name-reconciliation/internal/domain"
	"name-reconciliation/internal/gateway"
	"name-reconciliation/internal/logging"
	"name-reconciliation/internal/report"
	"name-reconciliation/internal/usecase"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
	codec      currency.Codec
	logger     zerolog.Logger
	progress   bool
}

// flagKeys maps persistent flags to configuration keys.
var flagKeys = map[string]string{
	"mode":              "mode",
	"amounts":           "include_amounts",
	"format":            "output_format",
	"encoding":          "output_encoding",
	"show-id":           "show_secondary_id",
	"reference-backend": "reference.backend",
	"reference":         "reference.path",
	"log-level":         "log.level",
	"log-format":        "log.format",
	"log-output":        "log.output",
}

// NewRootCommand builds the reconciler command tree.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "reconciler",
		Short: "Reconcile name lists across payroll documents",
		Long: `reconciler matches the names of one list against a reference list,
tolerating truncated and abbreviated names, and writes a grouped report of
what was found where.

Reference lists come either from a "<name>: <amount>" file or from the
reference store built by "reconciler ingest".`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default is ./reconciler.yaml or $HOME/.reconciler.yaml)")
	pf.String("mode", "", "match mode: name-only or name-and-amount (default depends on the command)")
	pf.Bool("amounts", true, "include amounts in reports and totals")
	pf.String("format", "", "report format: tabular, grouped or xlsx")
	pf.String("encoding", "", "text report encoding: utf-8 or latin1")
	pf.Bool("show-id", false, "add the secondary identifier to reports")
	pf.String("reference-backend", "", "reference store backend: json or sqlite")
	pf.String("reference", "", "reference store path")
	pf.String("log-level", "", "log level: trace, debug, info, warn or error")
	pf.String("log-format", "", "log format: json, console or auto")
	pf.String("log-output", "", "log output: stderr, stdout or a file path")
	pf.BoolVar(&a.progress, "progress", false, "print progress to stderr")
	bindFlags(a.v, pf)

	root.AddCommand(
		newLedgerCommand(a),
		newLegacyCommand(a),
		newIngestCommand(a),
		newExtractCommand(a),
		newTotalsCommand(a),
		newExplainCommand(a),
	)
	return root
}

// Execute runs the command tree with ctx, which should be cancelled on
// interrupt.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("Failed to bind %s flag: %v", flag, err))
		}
	}
}

// setup is called before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	codec, err := cfg.Codec()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.codec = codec
	a.logger = logging.New(cfg.Logging())

	if cfg.ConfigFile != "" {
		a.logger.Debug().Str("file", cfg.ConfigFile).Msg("using config file")
	}
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))
	return nil
}

// options resolves the run options with the command's default mode.
func (a *app) options(defaultMode domain.Mode) (domain.Options, error) {
	return a.cfg.Options(defaultMode)
}

func (a *app) reportWriter(opts domain.Options) (*report.FileWriter, error) {
	enc, err := a.cfg.OutputEnc()
	if err != nil {
		return nil, err
	}
	return report.NewFileWriter(report.Options{
		Format:          opts.OutputFormat,
		Codec:           a.codec,
		ShowSecondaryID: opts.ShowSecondaryID,
		Encoding:        enc,
	}), nil
}

func (a *app) fileRepository() (*gateway.FileRepository, error) {
	enc, err := a.cfg.LegacyEnc()
	if err != nil {
		return nil, err
	}
	return gateway.NewFileRepository(a.codec, enc, a.cfg.Legacy.ExcludedMarker), nil
}

// openStore opens the configured reference store. The returned function
// releases it.
func (a *app) openStore() (usecase.ReferenceStore, func() error, error) {
	switch a.cfg.Reference.Backend {
	case config.BackendSQLite:
		store, err := gateway.OpenSQLiteStore(a.cfg.Reference.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return gateway.NewJSONStore(a.cfg.Reference.Path), func() error { return nil }, nil
	}
}

// newUseCase wires the usecase. withStore opens the reference store as well.
func (a *app) newUseCase(opts domain.Options, withStore bool) (*usecase.ReconciliationUseCase, func(), error) {
	// --- Dependency Injection (Wiring the application) ---
	repo, err := a.fileRepository()
	if err != nil {
		return nil, nil, err
	}
	writer, err := a.reportWriter(opts)
	if err != nil {
		return nil, nil, err
	}

	var store usecase.ReferenceStore
	closeStore := func() error { return nil }
	if withStore {
		store, closeStore, err = a.openStore()
		if err != nil {
			return nil, nil, err
		}
	}

	uc := usecase.NewReconciliationUseCase(repo, store, writer, a.codec)
	release := func() {
		if err := closeStore(); err != nil {
			a.logger.Warn().Err(err).Msg("closing reference store")
		}
	}
	return uc, release, nil
}

// progressFunc prints percentages to w when --progress is set.
func (a *app) progressFunc(w io.Writer) domain.ProgressFunc {
	if !a.progress {
		return nil
	}
	return func(pct int) {
		fmt.Fprintf(w, "\r%3d%%", pct)
		if pct == 100 {
			fmt.Fprintln(w)
		}
	}
}

func defaultReportPath(base string, opts domain.Options) string {
	return base + opts.OutputFormat.Extension()
}
