package session

import "errors"

// ValidationError is a failed local precondition. No request was sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
