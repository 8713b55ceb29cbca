package audit

import "errors"

var (
	// ErrProcedureFailed wraps any failure invoking or reading the audit function.
	ErrProcedureFailed = errors.New("audit: procedure failed")

	// ErrConfig indicates an invalid audit configuration.
	ErrConfig = errors.New("audit: invalid config")
)
