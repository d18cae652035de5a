// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input provided")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrDuplicateEnrollment = errors.New("course already present in enrollment")
	ErrRequestTimeout      = errors.New("event reply not received before deadline")
	ErrDuplicateEntry      = errors.New("duplicate entry")
	ErrUnauthenticated     = errors.New("missing or invalid identity")
	ErrStoreUnavailable    = errors.New("store unavailable")

	ErrWalletNotFound     = errors.New("wallet not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrPermissionNotFound = errors.New("user permissions not found")
)

// IsError reports whether err matches the given sentinel in its chain.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
