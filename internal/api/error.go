package api

import "errors"

var (
	// -- Transport --
	ErrNetwork = errors.New("network failure")

	// -- Server-side rejection --
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("request rejected as invalid")
	ErrNotFound           = errors.New("resource not found")
	ErrOperationRejected  = errors.New("operation rejected by server")

	// -- Payload --
	ErrData = errors.New("malformed response payload")
)
