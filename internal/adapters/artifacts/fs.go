// Package artifacts reads pre-generated certificate PDFs from a directory.
package artifacts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"eventpass/internal/domain"
)

type directorySource struct {
	dir string
}

// NewDirectorySource returns an ArtifactSource over the *.pdf files directly inside dir.
func NewDirectorySource(dir string) domain.ArtifactSource {
	return &directorySource{dir: dir}
}

func (s *directorySource) List(ctx context.Context) ([]domain.CertificateArtifact, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read certificates directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		names = append(names, e.Name())
	}
	return domain.ScanArtifacts(s.dir, names), nil
}

func (s *directorySource) Read(ctx context.Context, artifact domain.CertificateArtifact) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rel, err := filepath.Rel(s.dir, artifact.Path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil, fmt.Errorf("%w: %s is outside the certificates directory", domain.ErrInvalidInput, artifact.FileName)
	}
	return os.ReadFile(artifact.Path)
}
