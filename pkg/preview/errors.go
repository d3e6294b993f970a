package preview

import "errors"

var (
	// ErrStart indicates that the server failed to start.
	ErrStart = errors.New("failed to start preview server")
	// ErrShutdown indicates that graceful shutdown failed.
	ErrShutdown = errors.New("failed to shutdown preview server gracefully")
	// ErrNilFactory is returned by NewHandler without a form factory.
	ErrNilFactory = errors.New("form factory is nil")
	// ErrInvalidThrottle is returned by NewThrottle for a non-positive burst or interval.
	ErrInvalidThrottle = errors.New("invalid throttle configuration")
	// ErrTooManySubmissions is reported to clients over the submission limit.
	ErrTooManySubmissions = errors.New("too many submissions")
)
