// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as the auth
// service and handlers to distinguish between failure scenarios without
// inspecting driver-specific errors.
package repository

import "errors"

// ErrDuplicateUser is returned when an insert would violate the unique
// indexes on users.email or users.phone.  The database, not the caller,
// is the authority on uniqueness, so two concurrent signups with the same
// email resolve to exactly one success and one ErrDuplicateUser.
var ErrDuplicateUser = errors.New("email or phone already registered")

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrInsufficientCredits is returned when a purchase asks for more credits
// than a listing has left.  The guarded UPDATE enforces this atomically.
var ErrInsufficientCredits = errors.New("not enough credits available")
