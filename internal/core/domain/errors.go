package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCategory    = errors.New("invalid category selected")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("your account has been deactivated")
	ErrUserNotFound       = errors.New("user not found")
	ErrVideoNotFound      = errors.New("video not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrForbidden          = errors.New("access denied")
	ErrUploadRejected     = errors.New("upload rejected")
	ErrAlreadyExists      = errors.New("already exists")
)

// DetailedError attaches a client-facing message and optional details to one
// of the sentinel errors above. errors.Is sees through it to Kind.
type DetailedError struct {
	Kind    error
	Message string
	Details []string
}

func (e *DetailedError) Error() string {
	return e.Message
}

func (e *DetailedError) Unwrap() error {
	return e.Kind
}

// NewValidationError reports malformed input. details lists one message per
// offending field.
func NewValidationError(details ...string) error {
	return &DetailedError{Kind: ErrValidation, Message: "Validation failed", Details: details}
}

// RejectUpload reports a file that violates its upload policy.
func RejectUpload(message string) error {
	return &DetailedError{Kind: ErrUploadRejected, Message: message}
}
