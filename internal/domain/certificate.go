package domain

import (
	"context"
	"path/filepath"
	"strings"
)

// CertificateArtifact is an externally supplied PDF whose filename encodes an attendee identifier.
type CertificateArtifact struct {
	FileName   string
	Path       string
	Identifier string
}

// NewCertificateArtifact derives the identifier from the file name: extension stripped,
// surrounding space trimmed, case folded.
func NewCertificateArtifact(fileName, path string) CertificateArtifact {
	return CertificateArtifact{
		FileName:   fileName,
		Path:       path,
		Identifier: NormalizeIdentifier(strings.TrimSuffix(fileName, filepath.Ext(fileName))),
	}
}

// ScanArtifacts turns the file names of a directory listing into artifacts under dir.
func ScanArtifacts(dir string, names []string) []CertificateArtifact {
	out := make([]CertificateArtifact, 0, len(names))
	for _, name := range names {
		out = append(out, NewCertificateArtifact(name, filepath.Join(dir, name)))
	}
	return out
}

// NormalizeIdentifier is the comparison form of an attendee identifier.
func NormalizeIdentifier(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// ArtifactSource lists and reads certificate artifacts. It never mutates them.
type ArtifactSource interface {
	List(ctx context.Context) ([]CertificateArtifact, error)
	Read(ctx context.Context, artifact CertificateArtifact) ([]byte, error)
}

// CertificateRenderer stamps an attendee's name and identifier onto a PDF template.
type CertificateRenderer interface {
	Render(ctx context.Context, template []byte, name, identifier string) ([]byte, error)
}

// CertificateService dispatches certificates in bulk.
type CertificateService interface {
	DispatchFromArtifacts(ctx context.Context) (*DispatchResult, error)
	DispatchFromTemplate(ctx context.Context, template []byte) (*DispatchResult, error)
	Preview(ctx context.Context, template []byte) ([]byte, error)
}
