package gateway

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding"

	"name-reconciliation/internal/currency"
	"name-reconciliation/internal/domain"
	"name-reconciliation/internal/parser"
	"name-reconciliation/internal/textenc"
)

// LegacyExtensions are the file extensions scanned in a legacy export folder.
var LegacyExtensions = []string{".ret", ".txt"}

// FileRepository reads datasets, legacy exports and extracted texts from the
// local filesystem.
type FileRepository struct {
	parser    *parser.Parser
	legacyEnc encoding.Encoding
	marker    string
}

// NewFileRepository creates a new repository instance. legacyEnc decodes
// legacy exports; marker flags legacy lines to exclude.
func NewFileRepository(codec currency.Codec, legacyEnc encoding.Encoding, marker string) *FileRepository {
	return &FileRepository{
		parser:    parser.New(codec),
		legacyEnc: legacyEnc,
		marker:    marker,
	}
}

// LoadDataset reads and parses a "<name>: <amount>" file. The dataset origin
// is the file name.
func (r *FileRepository) LoadDataset(ctx context.Context, path string, progress domain.ProgressFunc) (*domain.Dataset, parser.Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, parser.Stats{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, parser.Stats{}, openError(path, err)
	}
	defer file.Close()

	ds, stats, err := r.parser.ParseReader(filepath.Base(path), file, progress)
	if err != nil {
		return nil, parser.Stats{}, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	return ds, stats, nil
}

// LoadLegacyNames scans every legacy export in dir, in file name order. A
// file that cannot be read is reported as a warning and skipped; only a
// missing folder is an error.
func (r *FileRepository) LoadLegacyNames(ctx context.Context, dir string) ([]domain.LegacyFile, []error, error) {
	paths, err := listFiles(dir, LegacyExtensions...)
	if err != nil {
		return nil, nil, err
	}

	var files []domain.LegacyFile
	var warnings []error
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return files, warnings, err
		}
		lines, err := r.readLines(path, r.legacyEnc)
		if err != nil {
			warnings = append(warnings, err)
			continue
		}
		files = append(files, domain.LegacyFile{
			Path:  path,
			Names: parser.ParseLegacy(lines, r.marker),
		})
	}
	return files, warnings, nil
}

// LoadTexts reads every extracted-text file (*.txt) in dir. The origin of
// each document is its file name without the .txt extension.
func (r *FileRepository) LoadTexts(ctx context.Context, dir string) ([]domain.TextDocument, []error, error) {
	paths, err := listFiles(dir, ".txt")
	if err != nil {
		return nil, nil, err
	}

	var docs []domain.TextDocument
	var warnings []error
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return docs, warnings, err
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			warnings = append(warnings, openError(path, err))
			continue
		}
		base := filepath.Base(path)
		docs = append(docs, domain.TextDocument{
			Origin: base[:len(base)-len(filepath.Ext(base))],
			Text:   string(raw),
		})
	}
	return docs, warnings, nil
}

func (r *FileRepository) readLines(path string, enc encoding.Encoding) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer file.Close()

	lines, err := parser.ReadLines(textenc.NewReader(file, enc))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return lines, nil
}

// listFiles returns the regular files of dir with one of exts (matched case
// insensitively), sorted by name.
func listFiles(dir string, exts ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, openError(dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, want := range exts {
			if ext == want {
				paths = append(paths, filepath.Join(dir, e.Name()))
				break
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func openError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return &domain.SourceNotFoundError{Path: path, Err: err}
	}
	return fmt.Errorf("failed to open %s: %w", path, err)
}
