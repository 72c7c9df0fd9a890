// Package storage persists uploaded logos and videos. Files are stored under
// "<kind>/<uuid><ext>" and addressed by a public path or URL.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bizreel/directory-api/internal/core/ports"
	"github.com/bizreel/directory-api/internal/infrastructure/config"
)

var safeExt = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

// New builds the FileStore selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig, log zerolog.Logger) (ports.FileStore, error) {
	switch cfg.Driver {
	case "local":
		local, err := NewLocalStore(cfg.Dir, cfg.PublicPrefix)
		if err != nil {
			return nil, err
		}
		return local, nil
	case "s3":
		remote, err := NewS3Store(ctx, S3Options{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			UseSSL:    cfg.S3.UseSSL,
			PublicURL: cfg.S3.PublicURL,
		}, log)
		if err != nil {
			return nil, err
		}
		return remote, nil
	}
	return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
}

// storedName returns a random file name that keeps the original extension
// when it is short and alphanumeric.
func storedName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !safeExt.MatchString(ext) {
		ext = ""
	}
	return uuid.NewString() + ext
}

// countingReader records how many bytes passed through it.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
