package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"name-reconciliation/internal/aggregate"
	"name-reconciliation/internal/currency"
	"name-reconciliation/internal/domain"
	"name-reconciliation/internal/logging"
	"name-reconciliation/internal/matcher"
	"name-reconciliation/internal/parser"
	"name-reconciliation/internal/report"
)

// ReferenceOrigin labels the merged reference built from the store.
const ReferenceOrigin = "reference"

// ErrNoReferenceStore is returned by operations that need a reference store
// when none was configured.
var ErrNoReferenceStore = errors.New("no reference store configured")

// ReconciliationUseCase orchestrates the reconciliation process.
type ReconciliationUseCase struct {
	repo     SourceRepository
	store    ReferenceStore
	writer   ReportWriter
	codec    currency.Codec
	newRunID func() string
}

// NewReconciliationUseCase creates a new instance of the usecase. store may
// be nil when only dataset files are reconciled.
func NewReconciliationUseCase(repo SourceRepository, store ReferenceStore, writer ReportWriter, codec currency.Codec) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		repo:     repo,
		store:    store,
		writer:   writer,
		codec:    codec,
		newRunID: uuid.NewString,
	}
}

// Match resolves every query against ref and aggregates the outcomes.
// Cancellation is checked once per query; on cancellation the report built
// so far is returned together with the context error.
func Match(ctx context.Context, queries []domain.Query, ref *domain.Dataset, opts domain.Options, progress domain.ProgressFunc) (*domain.AggregateReport, error) {
	return match(ctx, queries, ref, opts, progress, nil)
}

func match(ctx context.Context, queries []domain.Query, ref *domain.Dataset, opts domain.Options, progress domain.ProgressFunc, onResult func(domain.Query, domain.MatchResult)) (*domain.AggregateReport, error) {
	engine := matcher.NewEngine(opts.Mode)
	agg := aggregate.New(opts.IncludeAmounts)
	tracker := domain.NewProgress(progress, len(queries))
	log := logging.FromContext(ctx)

	snapshot := func() *domain.AggregateReport {
		r := agg.Report()
		r.RunID = logging.RunID(ctx)
		return r
	}

	for i, q := range queries {
		if err := ctx.Err(); err != nil {
			log.Warn().Int("done", i).Int("total", len(queries)).Msg("matching cancelled")
			return snapshot(), err
		}
		res := engine.Resolve(q, ref)
		agg.AddResult(res)
		if onResult != nil {
			onResult(q, res)
		}
		log.Debug().
			Str("query", q.Name).
			Str("outcome", res.Kind.String()).
			Str("matched", res.MatchedName).
			Msg("resolved")
		tracker.Step(i + 1)
	}
	tracker.Done()
	return snapshot(), nil
}

// LedgerRequest names the inputs and outputs of a ledger reconciliation.
// Empty output paths are not written.
type LedgerRequest struct {
	ProjectPath  string
	PaymentsPath string
	ReportPath   string
	FoundPath    string
	NotFoundPath string
}

// LedgerResult summarises a ledger reconciliation.
type LedgerResult struct {
	Report   *domain.AggregateReport
	Found    int
	NotFound int
	Warnings []error
}

// ReconcileLedger resolves every name of the project dataset against the
// payments dataset and writes the report and the found/not found lists.
func (uc *ReconciliationUseCase) ReconcileLedger(ctx context.Context, req LedgerRequest, opts domain.Options, progress domain.ProgressFunc) (*LedgerResult, error) {
	ctx = uc.startRun(ctx, "ledger")
	log := logging.FromContext(ctx)

	project, projectStats, err := uc.repo.LoadDataset(ctx, req.ProjectPath, nil)
	if err != nil {
		return nil, fmt.Errorf("could not load project dataset: %w", err)
	}
	payments, paymentStats, err := uc.repo.LoadDataset(ctx, req.PaymentsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("could not load payments dataset: %w", err)
	}

	result := &LedgerResult{}
	result.Warnings = append(result.Warnings, projectStats.Warnings...)
	result.Warnings = append(result.Warnings, paymentStats.Warnings...)
	logWarnings(log, result.Warnings)

	log.Info().
		Int("queries", project.Len()).
		Int("reference", payments.Len()).
		Str("mode", opts.Mode.String()).
		Msg("reconciling ledger")

	result.Report, err = match(ctx, domain.QueriesFrom(project), payments, opts, progress, nil)
	if err != nil {
		return result, err
	}

	found := report.FoundLines(result.Report, uc.codec)
	notFound := report.NotFoundLines(result.Report, uc.codec)
	result.Found = len(found)
	result.NotFound = len(notFound)

	if req.ReportPath != "" {
		if err := uc.writer.WriteReport(req.ReportPath, result.Report); err != nil {
			return result, fmt.Errorf("could not write report: %w", err)
		}
	}
	if req.FoundPath != "" {
		if err := uc.writer.WriteLines(req.FoundPath, found); err != nil {
			return result, fmt.Errorf("could not write found list: %w", err)
		}
	}
	if req.NotFoundPath != "" {
		if err := uc.writer.WriteLines(req.NotFoundPath, notFound); err != nil {
			return result, fmt.Errorf("could not write not found list: %w", err)
		}
	}

	logSummary(log, result.Report).Int("found", result.Found).Int("not_found", result.NotFound).Msg("ledger reconciled")
	return result, nil
}

// LegacyRequest names the legacy export folder and the report to write.
type LegacyRequest struct {
	Dir        string
	ReportPath string
}

// FileCount is the number of names scanned from one legacy file and how
// many of them were resolved.
type FileCount struct {
	Path  string
	Names int
	Found int
}

// LegacyResult summarises a legacy reconciliation.
type LegacyResult struct {
	Report   *domain.AggregateReport
	Files    []FileCount
	Warnings []error
}

// ReconcileLegacy resolves the names of every legacy export in a folder
// against the stored reference datasets.
func (uc *ReconciliationUseCase) ReconcileLegacy(ctx context.Context, req LegacyRequest, opts domain.Options, progress domain.ProgressFunc) (*LegacyResult, error) {
	ctx = uc.startRun(ctx, "legacy")
	log := logging.FromContext(ctx)

	ref, err := uc.LoadReference(ctx, "")
	if err != nil {
		return nil, err
	}

	files, warnings, err := uc.repo.LoadLegacyNames(ctx, req.Dir)
	if err != nil {
		return nil, fmt.Errorf("could not scan legacy folder: %w", err)
	}
	logWarnings(log, warnings)

	result := &LegacyResult{Warnings: warnings}
	index := make(map[string]int, len(files))
	var queries []domain.Query
	for i, f := range files {
		index[f.Path] = i
		result.Files = append(result.Files, FileCount{Path: f.Path, Names: len(f.Names)})
		for _, name := range f.Names {
			queries = append(queries, domain.Query{Name: name, Source: f.Path})
		}
	}

	log.Info().
		Int("files", len(files)).
		Int("queries", len(queries)).
		Int("reference", ref.Len()).
		Str("mode", opts.Mode.String()).
		Msg("reconciling legacy exports")

	result.Report, err = match(ctx, queries, ref, opts, progress, func(q domain.Query, res domain.MatchResult) {
		if res.Resolved() {
			result.Files[index[q.Source]].Found++
		}
	})
	if err != nil {
		return result, err
	}

	for _, fc := range result.Files {
		log.Info().Str("file", fc.Path).Int("names", fc.Names).Int("found", fc.Found).Msg("legacy file")
	}

	if req.ReportPath != "" {
		if err := uc.writer.WriteReport(req.ReportPath, result.Report); err != nil {
			return result, fmt.Errorf("could not write report: %w", err)
		}
	}

	logSummary(log, result.Report).Msg("legacy reconciled")
	return result, nil
}

// IngestResult summarises an ingest run.
type IngestResult struct {
	Documents int
	Records   int
	Warnings  []error
}

// Ingest extracts records from every text document in dir and stores one
// dataset per document. Documents already in the store are replaced; other
// stored datasets are kept.
func (uc *ReconciliationUseCase) Ingest(ctx context.Context, dir string, extractor *parser.Extractor) (*IngestResult, error) {
	ctx = uc.startRun(ctx, "ingest")
	log := logging.FromContext(ctx)

	if uc.store == nil {
		return nil, ErrNoReferenceStore
	}
	existing, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load reference store: %w", err)
	}

	docs, warnings, err := uc.repo.LoadTexts(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("could not read documents: %w", err)
	}

	result := &IngestResult{Warnings: warnings}
	position := make(map[string]int, len(existing))
	for i, ds := range existing {
		position[ds.Origin] = i
	}

	for _, doc := range docs {
		ds, stats := extractor.Extract(doc.Origin, doc.Text)
		result.Warnings = append(result.Warnings, stats.Warnings...)
		if ds.Len() == 0 {
			log.Warn().Str("document", doc.Origin).Msg("no records extracted")
		}
		result.Documents++
		result.Records += ds.Len()

		if i, ok := position[doc.Origin]; ok {
			existing[i] = ds
			continue
		}
		position[doc.Origin] = len(existing)
		existing = append(existing, ds)
	}
	logWarnings(log, result.Warnings)

	if err := uc.store.Save(ctx, existing); err != nil {
		return result, fmt.Errorf("could not save reference store: %w", err)
	}

	log.Info().
		Int("documents", result.Documents).
		Int("records", result.Records).
		Int("datasets", len(existing)).
		Msg("reference store updated")
	return result, nil
}

// LoadReference returns the dataset at path, or the merged contents of the
// reference store when path is empty.
func (uc *ReconciliationUseCase) LoadReference(ctx context.Context, path string) (*domain.Dataset, error) {
	if path != "" {
		ds, stats, err := uc.repo.LoadDataset(ctx, path, nil)
		if err != nil {
			return nil, fmt.Errorf("could not load reference dataset: %w", err)
		}
		logWarnings(logging.FromContext(ctx), stats.Warnings)
		return ds, nil
	}

	if uc.store == nil {
		return nil, ErrNoReferenceStore
	}
	sets, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load reference store: %w", err)
	}
	ref := domain.Merge(ReferenceOrigin, sets...)
	if ref.Len() == 0 {
		logging.FromContext(ctx).Warn().Msg("reference store is empty; every name will be unmatched")
	}
	return ref, nil
}

// Explain traces the resolution of one name against ref.
func (uc *ReconciliationUseCase) Explain(q domain.Query, ref *domain.Dataset, mode domain.Mode, nearest int) matcher.Trace {
	return matcher.NewEngine(mode).Explain(q, ref, nearest)
}

func (uc *ReconciliationUseCase) startRun(ctx context.Context, op string) context.Context {
	runID := uc.newRunID()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.FromContext(ctx).With().Str("op", op).Logger()
	return logging.WithLogger(ctx, logger)
}

func logWarnings(log *zerolog.Logger, warnings []error) {
	for _, w := range warnings {
		log.Warn().Err(w).Msg("skipped input")
	}
}

func logSummary(log *zerolog.Logger, r *domain.AggregateReport) *zerolog.Event {
	ev := log.Info().
		Int("entries", r.TotalCount).
		Int("exact", r.Outcomes.Exact).
		Int("partial", r.Outcomes.Partial).
		Int("fallback", r.Outcomes.Fallback).
		Int("unmatched", r.Outcomes.Unmatched)
	if r.IncludeAmounts {
		ev = ev.Str("total_amount", r.TotalAmount.StringFixed(2))
	}
	return ev
}
