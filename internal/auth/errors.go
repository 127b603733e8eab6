// Package auth orchestrates the credential flow: signup, login, logout and
// current-user resolution.  It owns the error taxonomy; handlers translate
// these sentinels into HTTP responses and never see driver errors.
package auth

import "errors"

var (
	// ErrInvalidInput means a required signup field is missing or the role
	// is not one of the enumerated values.
	ErrInvalidInput = errors.New("missing or invalid field")

	// ErrEmailOrPhoneTaken means the store rejected the insert because the
	// email or phone is already registered.
	ErrEmailOrPhoneTaken = errors.New("email or phone already taken")

	// ErrUserNotFound means no account exists for the login email.  It is
	// deliberately distinct from ErrInvalidPassword: the original service
	// exposed "User not found" and "Invalid password" as separate outcomes
	// and that distinction is part of the preserved contract, information
	// disclosure and all.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidPassword means the account exists but the password did not
	// verify against the stored hash.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrStoreUnavailable wraps connectivity or other transient store
	// failures.  Callers surface it as a generic server error; there is no
	// automatic retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)
