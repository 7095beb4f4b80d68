package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidRating indicates a testimonial rating outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrUnauthorized indicates the content API rejected the credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrOffline indicates the content API could not be reached.
	ErrOffline = errors.New("content API unreachable")

	// ErrStorage indicates the local cache could not be read or written.
	ErrStorage = errors.New("local storage unavailable")

	// ErrUploadUnavailable indicates no image host is configured.
	ErrUploadUnavailable = errors.New("image upload not configured")
)

// NetworkError is a transport-level failure talking to the content API.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Is matches ErrOffline.
func (e *NetworkError) Is(target error) bool {
	return target == ErrOffline
}

// HTTPError is a non-success response from the content API.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches ErrUnauthorized for 401 and 403 responses.
func (e *HTTPError) Is(target error) bool {
	if target == ErrUnauthorized {
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}

// NewHTTPError builds an HTTPError, falling back to a status-based message.
func NewHTTPError(status int, message string) *HTTPError {
	if message == "" {
		message = fmt.Sprintf("request failed: %d", status)
	}
	return &HTTPError{Status: status, Message: message}
}

// AuthError is a rejected login.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error { return e.Err }

// Is matches ErrUnauthorized.
func (e *AuthError) Is(target error) bool {
	return target == ErrUnauthorized
}

// StorageError is a failure of the durable local cache.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is matches ErrStorage.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
