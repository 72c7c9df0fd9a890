package ports

import (
	"context"
	"io"

	"github.com/bizreel/directory-api/internal/core/domain"
)

// FileMeta is what the transport knows about an incoming file.
type FileMeta struct {
	OriginalName string
	MIMEType     string
}

// FileStore persists uploaded files under a randomized name. Save returns
// only after the content is fully written.
type FileStore interface {
	Save(ctx context.Context, kind domain.UploadKind, meta FileMeta, r io.Reader) (*domain.StoredFile, error)
	// Remove deletes a stored file by its public path. Missing files are not
	// an error.
	Remove(ctx context.Context, path string) error
}
