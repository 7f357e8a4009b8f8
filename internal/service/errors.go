package service

import "errors"

// Sentinel errors shared by the service layer. Handlers map these to HTTP
// statuses; anything else is an internal error.
var (
	// ErrUnauthenticated covers every credential failure: missing, malformed,
	// expired, or forged tokens. The distinction is logged server-side only so
	// responses cannot be used as a verification oracle.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means the credential is valid but names a different document.
	ErrForbidden = errors.New("document identity mismatch")
	// ErrNotFound means the referenced document or blob does not exist.
	ErrNotFound = errors.New("document not found")

	ErrIDRequired         = errors.New("id is required")
	ErrInvalidKind        = errors.New("invalid document kind")
	ErrReaderNil          = errors.New("reader is nil")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
