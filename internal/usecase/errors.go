package usecase

import "errors"

var (
	// ErrNotAuthenticated is returned by operations that require a login.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotAuthorized is returned when an account lacks the admin role,
	// including the defense-in-depth check after admin login.
	ErrNotAuthorized = errors.New("not authorized")
)
