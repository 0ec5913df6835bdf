package services

import (
	"errors"
	"fmt"
)

// ErrValidation marks requests rejected before any store access. The HTTP
// layer maps it to a 400; everything else surfaces as a server fault.
var ErrValidation = errors.New("validation failed")

func validationErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

// IsValidation reports whether err originates from request validation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
