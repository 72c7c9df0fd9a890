package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bizreel/directory-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, body
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err     error
		code    int
		message string
	}{
		{domain.ErrInvalidCategory, http.StatusBadRequest, "Invalid category selected"},
		{fmt.Errorf("register: %w", domain.ErrDuplicateUser), http.StatusBadRequest, "User already exists"},
		{domain.RejectUpload("File too large"), http.StatusBadRequest, "File too large"},
		{domain.ErrAlreadyExists, http.StatusBadRequest, "Already exists"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
		{domain.ErrAccountDisabled, http.StatusForbidden, "Your account has been deactivated"},
		{domain.ErrForbidden, http.StatusForbidden, "Access denied"},
		{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{fmt.Errorf("get: %w", domain.ErrVideoNotFound), http.StatusNotFound, "Video not found"},
		{domain.ErrCategoryNotFound, http.StatusNotFound, "Category not found"},
		{errors.New("mongo: connection reset"), http.StatusInternalServerError, "Server error"},
	}
	for _, tc := range cases {
		code, body := renderError(t, tc.err)
		if code != tc.code || body.Message != tc.message || body.Error != tc.message || body.Success {
			t.Fatalf("%v: expected %d %q, got %d %+v", tc.err, tc.code, tc.message, code, body)
		}
	}
}

func TestHTTPErrorHandler_ValidationDetails(t *testing.T) {
	code, body := renderError(t, domain.NewValidationError("Phone number is required", "Password is required"))
	if code != http.StatusBadRequest || body.Message != "Validation failed" {
		t.Fatalf("unexpected response: %d %+v", code, body)
	}
	if len(body.Details) != 2 || body.Details[0] != "Phone number is required" {
		t.Fatalf("unexpected details: %v", body.Details)
	}
}

func TestHTTPErrorHandler_EchoErrors(t *testing.T) {
	code, body := renderError(t, echo.ErrNotFound)
	if code != http.StatusNotFound || body.Message != "Route not found" {
		t.Fatalf("unexpected route miss: %d %+v", code, body)
	}

	code, body = renderError(t, echo.ErrStatusRequestEntityTooLarge)
	if code != http.StatusBadRequest || body.Message != "File too large" {
		t.Fatalf("unexpected body limit response: %d %+v", code, body)
	}

	code, body = renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token"))
	if code != http.StatusUnauthorized || body.Message != "Invalid token" {
		t.Fatalf("unexpected http error: %d %+v", code, body)
	}
}
