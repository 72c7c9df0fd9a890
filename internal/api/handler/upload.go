package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bizreel/directory-api/internal/api/metrics"
	"github.com/bizreel/directory-api/internal/core/domain"
	"github.com/bizreel/directory-api/internal/core/ports"
)

// uploadIntake turns a multipart file part into a stored file that satisfies
// its upload policy.
type uploadIntake struct {
	files ports.FileStore
	log   zerolog.Logger
}

// formFile returns the named part, or nil when the request carries none.
func formFile(c echo.Context, field string) (*multipart.FileHeader, error) {
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return nil, nil
	}
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Malformed multipart body")
	}
	return fh, nil
}

// store checks fh against policy, writes it and re-checks the written size.
// The declared part type is trusted unless it is missing or generic, in which
// case the type is sniffed from the content.
func (u *uploadIntake) store(ctx context.Context, fh *multipart.FileHeader, policy domain.UploadPolicy) (*domain.StoredFile, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	mime := strings.TrimSpace(fh.Header.Get(echo.HeaderContentType))
	if mime == "" || strings.HasPrefix(mime, echo.MIMEOctetStream) {
		detected, err := mimetype.DetectReader(f)
		if err != nil {
			return nil, fmt.Errorf("sniff upload: %w", err)
		}
		mime = detected.String()
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewind upload: %w", err)
		}
	}

	if fh.Size > policy.MaxBytes {
		return nil, u.reject(policy, "size", "File too large")
	}
	if err := policy.Check(fh.Size, mime); err != nil {
		metrics.UploadsRejectedTotal.WithLabelValues(string(policy.Kind), "type").Inc()
		return nil, err
	}

	stored, err := u.files.Save(ctx, policy.Kind, ports.FileMeta{OriginalName: fh.Filename, MIMEType: mime}, io.LimitReader(f, policy.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}
	if stored.Size > policy.MaxBytes {
		u.discard(ctx, stored)
		return nil, u.reject(policy, "size", "File too large")
	}

	metrics.UploadSizeBytes.WithLabelValues(string(policy.Kind)).Observe(float64(stored.Size))
	return stored, nil
}

func (u *uploadIntake) reject(policy domain.UploadPolicy, reason, message string) error {
	metrics.UploadsRejectedTotal.WithLabelValues(string(policy.Kind), reason).Inc()
	return domain.RejectUpload(message)
}

// discard removes a stored file whose request failed later on.
func (u *uploadIntake) discard(ctx context.Context, stored *domain.StoredFile) {
	if stored == nil {
		return
	}
	if err := u.files.Remove(context.WithoutCancel(ctx), stored.Path); err != nil {
		u.log.Warn().Err(err).Str("path", stored.Path).Msg("failed to remove orphaned upload")
	}
}
