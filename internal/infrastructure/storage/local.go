package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bizreel/directory-api/internal/core/domain"
	"github.com/bizreel/directory-api/internal/core/ports"
)

// LocalStore writes files below a root directory that is also served
// statically under prefix.
type LocalStore struct {
	root   string
	prefix string
}

func NewLocalStore(root, prefix string) (*LocalStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve %s: %w", root, err)
	}
	for _, kind := range []domain.UploadKind{domain.UploadLogo, domain.UploadVideo} {
		if err := os.MkdirAll(filepath.Join(abs, string(kind)), 0o755); err != nil {
			return nil, fmt.Errorf("storage: create %s dir: %w", kind, err)
		}
	}
	return &LocalStore{root: abs, prefix: "/" + strings.Trim(prefix, "/")}, nil
}

// Root is the directory served under the public prefix.
func (s *LocalStore) Root() string {
	return s.root
}

// Save writes to a temporary file first and renames it into place, so a
// stored path never points at a partial file.
func (s *LocalStore) Save(ctx context.Context, kind domain.UploadKind, meta ports.FileMeta, r io.Reader) (*domain.StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir := filepath.Join(s.root, string(kind))
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("storage: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	size, err := io.Copy(tmp, r)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("storage: write file: %w", err)
	}

	name := storedName(meta.OriginalName)
	if err := os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		return nil, fmt.Errorf("storage: finalize file: %w", err)
	}

	return &domain.StoredFile{
		Kind:         kind,
		Filename:     name,
		OriginalName: meta.OriginalName,
		Path:         path.Join(s.prefix, string(kind), name),
		Size:         size,
		MIMEType:     meta.MIMEType,
	}, nil
}

func (s *LocalStore) Remove(_ context.Context, publicPath string) error {
	full, err := s.resolve(publicPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: remove %s: %w", publicPath, err)
	}
	return nil
}

// resolve maps a public path back to a file below root, rejecting anything
// that escapes it.
func (s *LocalStore) resolve(publicPath string) (string, error) {
	clean := path.Clean("/" + publicPath)
	rel, ok := strings.CutPrefix(clean, s.prefix+"/")
	if !ok || rel == "" {
		return "", fmt.Errorf("storage: %q is not a stored file", publicPath)
	}
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if within, err := filepath.Rel(s.root, full); err != nil || strings.HasPrefix(within, "..") {
		return "", fmt.Errorf("storage: %q is not a stored file", publicPath)
	}
	return full, nil
}
