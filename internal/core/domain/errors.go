package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrValidation          = errors.New("validation failed")
	ErrForbidden           = errors.New("access forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserExists          = errors.New("user already exists")
	ErrUnknownUserType     = errors.New("unknown user type")
	ErrSessionNotFound     = errors.New("session not found")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrCheckoutInProgress  = errors.New("checkout with this idempotency key is in progress")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrKeyNotFound         = errors.New("key not found")
	ErrRemoteUnavailable   = errors.New("remote document store unavailable")
	ErrRemoteNotConfigured = errors.New("remote document store not configured")
	ErrStorageUnavailable  = errors.New("no storage tier accepted the write")
	ErrVersionConflict     = errors.New("document version conflict")
)

// ConflictError reports a write rejected because the stored document moved
// past the version the writer last saw.
type ConflictError struct {
	Path            string
	ExpectedVersion string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("document %s changed since version %q", e.Path, e.ExpectedVersion)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrVersionConflict
}
