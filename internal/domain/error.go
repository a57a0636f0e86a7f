package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidAmount      = errors.New("order total must be positive")
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrUnauthenticated    = errors.New("missing or invalid credentials")
	ErrForbidden          = errors.New("operation not permitted")
	ErrPaymentsEnabled    = errors.New("free enrollment disabled while payments are enabled")
	ErrGatewayError       = errors.New("payment gateway request failed")
	ErrRateLimited        = errors.New("too many requests")
	ErrOperationFailed    = errors.New("database operation failed")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
	ErrInvalidExecContext = errors.New("invalid transaction execution context")
)
