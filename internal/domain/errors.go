package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services and repositories.
var (
	// ErrNotFound is returned when a looked-up row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the caller is authenticated but not allowed.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput is returned when a request is structurally invalid.
	ErrInvalidInput = errors.New("invalid input")
	// ErrAlreadyRegistered is returned when a participant row already exists for
	// an (event, user) pair. Callers treat it as success, not failure.
	ErrAlreadyRegistered = errors.New("already registered")
	// ErrSlugTaken is returned when an event slug is already in use.
	ErrSlugTaken = errors.New("slug already in use")
	// ErrUserNotFound is returned when no user row exists for an identity.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser is returned when a user row already exists for an identity.
	ErrDuplicateUser = errors.New("user already exists")
)

// ValidationError reports a rejected input field. Code is a stable,
// language-independent message key; localization happens at the delivery layer.
type ValidationError struct {
	Field string
	Code  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %s: %s", e.Field, e.Code)
}

// Validation message keys.
const (
	CodeNameRequired        = "name_required"
	CodeLinkRequired        = "linkedin_url_required"
	CodeLinkInvalid         = "linkedin_url_invalid"
	CodeSlugRequired        = "slug_required"
	CodeSlugInvalid         = "slug_invalid"
	CodeEventNameRequired   = "event_name_required"
	CodeDateRequired        = "date_required"
	CodeLocationRequired    = "location_required"
	CodeAccessDaysInvalid   = "directory_access_days_invalid"
	CodeVisibilityInvalid   = "visibility_invalid"
)
