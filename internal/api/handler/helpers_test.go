package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bizreel/directory-api/internal/api"
	"github.com/bizreel/directory-api/internal/api/handler"
	"github.com/bizreel/directory-api/internal/api/middleware"
	"github.com/bizreel/directory-api/internal/core/domain"
	"github.com/bizreel/directory-api/internal/core/ports"
)

// newEcho mirrors the router's error handling and validation.
func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	e.Validator = handler.NewValidator()
	return e
}

// as stands in for the Auth middleware.
func as(actor domain.Actor) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.CtxUserID, actor.ID)
			c.Set(middleware.CtxRole, actor.Role)
			return next(c)
		}
	}
}

type body struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Details []string        `json:"details"`
	Token   string          `json:"token"`
	User    json.RawMessage `json:"user"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, e *echo.Echo, req *http.Request) (*httptest.ResponseRecorder, body) {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var b body
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
			t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
		}
	}
	return rec, b
}

func jsonRequest(method, target, payload string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

type filePart struct {
	field, name, contentType string
	content                  []byte
}

func multipartRequest(t *testing.T, target string, fields map[string]string, files ...filePart) *http.Request {
	t.Helper()
	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	return multipartValuesRequest(t, target, values, files...)
}

// multipartValuesRequest writes one part per value, so a key may repeat.
func multipartValuesRequest(t *testing.T, target string, fields url.Values, files ...filePart) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, vs := range fields {
		for _, v := range vs {
			if err := w.WriteField(k, v); err != nil {
				t.Fatalf("write field: %v", err)
			}
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.name))
		if f.contentType != "" {
			h.Set("Content-Type", f.contentType)
		}
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(f.content); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

// memFileStore keeps saved files in memory.
type memFileStore struct {
	saved   []*domain.StoredFile
	removed []string
}

func (m *memFileStore) Save(_ context.Context, kind domain.UploadKind, meta ports.FileMeta, r io.Reader) (*domain.StoredFile, error) {
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("file-%d", len(m.saved)+1)
	f := &domain.StoredFile{
		Kind:         kind,
		Filename:     name,
		OriginalName: meta.OriginalName,
		Path:         "/uploads/" + string(kind) + "/" + name,
		Size:         n,
		MIMEType:     meta.MIMEType,
	}
	m.saved = append(m.saved, f)
	return f, nil
}

func (m *memFileStore) Remove(_ context.Context, path string) error {
	m.removed = append(m.removed, path)
	return nil
}
