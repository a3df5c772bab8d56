package session

import "errors"

var (
	// -- Local pre-checks --
	ErrPasswordMismatch        = errors.New("password confirmation does not match")
	ErrRegistrationUnsupported = errors.New("registration is not available for this app")

	// -- Concurrent-mutation guard --
	ErrOperationInProgress = errors.New("another authentication operation is in progress")
)
