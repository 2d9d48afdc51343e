package usecase

import (
	"context"

	"name-reconciliation/internal/domain"
	"name-reconciliation/internal/parser"
)

// SourceRepository defines the interface for reading input documents.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go
type SourceRepository interface {
	LoadDataset(ctx context.Context, path string, progress domain.ProgressFunc) (*domain.Dataset, parser.Stats, error)
	LoadLegacyNames(ctx context.Context, dir string) ([]domain.LegacyFile, []error, error)
	LoadTexts(ctx context.Context, dir string) ([]domain.TextDocument, []error, error)
}

// ReferenceStore persists the extracted reference datasets.
type ReferenceStore interface {
	Load(ctx context.Context) ([]*domain.Dataset, error)
	Save(ctx context.Context, sets []*domain.Dataset) error
}

// ReportWriter writes run outputs.
type ReportWriter interface {
	WriteReport(path string, r *domain.AggregateReport) error
	WriteLines(path string, lines []string) error
}
