package guard

import "errors"

// Sentinel errors for guard operations.
var (
	// ErrAlreadyInitialized is returned when Initialize is called after a
	// previous successful initialization.
	ErrAlreadyInitialized = errors.New("guard: already initialized")

	// ErrNotInitialized is returned when a handle is requested before
	// Initialize has succeeded.
	ErrNotInitialized = errors.New("guard: not initialized")

	// ErrInvalidTarget indicates a malformed connection target.
	ErrInvalidTarget = errors.New("guard: invalid connection target")

	// ErrCredentialExpired indicates the target credential is a bearer
	// token that has already expired.
	ErrCredentialExpired = errors.New("guard: credential expired")

	// ErrMissingConnect indicates Config.Connect was not provided.
	ErrMissingConnect = errors.New("guard: connect function is required")
)
