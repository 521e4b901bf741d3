package source

import (
	"context"
	"os"

	"github.com/couchcryptid/office-market-explorer/internal/domain"
)

// FileSource reads the dataset document from a local file.
type FileSource struct {
	path string
}

// NewFileSource creates a source for the dataset at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch reads and decodes the file. Every failure is a *domain.LoadError.
func (s *FileSource) Fetch(ctx context.Context) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.LoadError{Source: s.path, Err: err}
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, &domain.LoadError{Source: s.path, Err: err}
	}
	defer f.Close()

	d, err := domain.DecodeDataset(f)
	if err != nil {
		return nil, &domain.LoadError{Source: s.path, Err: err}
	}
	return d, nil
}

// String identifies the source in logs.
func (s *FileSource) String() string { return s.path }
