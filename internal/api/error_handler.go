package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bizreel/directory-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// newErrorResponse repeats message in the error field.
func newErrorResponse(message string, details ...string) errorResponse {
	return errorResponse{Message: message, Error: message, Details: details}
}

// errorKind pairs a domain sentinel with its status and default client
// message. Order matters: the first match wins.
type errorKind struct {
	target  error
	status  int
	message string
}

var errorKinds = []errorKind{
	{domain.ErrValidation, http.StatusBadRequest, "Validation failed"},
	{domain.ErrInvalidCategory, http.StatusBadRequest, "Invalid category selected"},
	{domain.ErrDuplicateUser, http.StatusBadRequest, "User already exists"},
	{domain.ErrUploadRejected, http.StatusBadRequest, "Upload rejected"},
	{domain.ErrAlreadyExists, http.StatusBadRequest, "Already exists"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{domain.ErrAccountDisabled, http.StatusForbidden, "Your account has been deactivated"},
	{domain.ErrForbidden, http.StatusForbidden, "Access denied"},
	{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{domain.ErrVideoNotFound, http.StatusNotFound, "Video not found"},
	{domain.ErrCategoryNotFound, http.StatusNotFound, "Category not found"},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain
// errors to status codes and renders {"success": false, "message", "error",
// "details"}. Unexpected errors are logged and reported as a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return resolveHTTPError(he)
	}

	for _, k := range errorKinds {
		if !errors.Is(err, k.target) {
			continue
		}
		var de *domain.DetailedError
		if errors.As(err, &de) {
			return k.status, newErrorResponse(de.Message, de.Details...)
		}
		return k.status, newErrorResponse(k.message)
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, newErrorResponse("Server error")
}

func resolveHTTPError(he *echo.HTTPError) (int, errorResponse) {
	switch he.Code {
	case http.StatusNotFound:
		if he == echo.ErrNotFound {
			return http.StatusNotFound, newErrorResponse("Route not found")
		}
	case http.StatusRequestEntityTooLarge:
		return http.StatusBadRequest, newErrorResponse("File too large")
	}
	msg := http.StatusText(he.Code)
	if he.Message != nil {
		msg = fmt.Sprintf("%v", he.Message)
	}
	return he.Code, newErrorResponse(msg)
}
