package errors

import "fmt"

// Call-level taxonomy. Handlers map these to transport codes,
// everything else is treated as an internal failure.
var (
	ErrUnauthenticated     = fmt.Errorf("authentication required")
	ErrForbidden           = fmt.Errorf("requester is not a participant")
	ErrNotFound            = fmt.Errorf("resource not found")
	ErrInvalidParticipants = fmt.Errorf("participants must be two distinct users")
	ErrInvalidBody         = fmt.Errorf("message body must not be empty")
	ErrUnavailable         = fmt.Errorf("storage temporarily unavailable")
)

// Account layer.
var (
	ErrUserAlreadyExists  = fmt.Errorf("email already registered")
	ErrInvalidCredentials = fmt.Errorf("invalid email or password")
	ErrInvalidPassword    = fmt.Errorf("password does not meet complexity rules")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
)

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")
	ErrEmptyWords  = fmt.Errorf("no words have been found")
)
