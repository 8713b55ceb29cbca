package session

import "errors"

var (
	// ErrStoreUnavailable is returned when a store lookup fails for reasons other
	// than "no such session" (transport error, timeout, malformed reply).
	// It never means the credential is invalid.
	ErrStoreUnavailable = errors.New("session store unavailable")

	// ErrConfig is returned for invalid configuration.
	ErrConfig = errors.New("invalid config")

	// ErrBackendMissing is returned when the configured store kind has no backing client.
	ErrBackendMissing = errors.New("session store backend not configured")
)
