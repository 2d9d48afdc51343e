package report

import (
	"os"
	"path/filepath"

	"name-reconciliation/internal/domain"
)

// WriteFileAtomic writes data to a temporary file beside path and renames it
// over path, so readers see either the old or the new content.
func WriteFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &domain.IOFailureError{Path: path, Err: err}
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return &domain.IOFailureError{Path: path, Err: err}
	}
	if err = tmp.Sync(); err != nil {
		return &domain.IOFailureError{Path: path, Err: err}
	}
	if err = tmp.Close(); err != nil {
		return &domain.IOFailureError{Path: path, Err: err}
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return &domain.IOFailureError{Path: path, Err: err}
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return &domain.IOFailureError{Path: path, Err: err}
	}
	return nil
}
