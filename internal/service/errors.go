package service

import (
	"errors"
	"fmt"
)

// ErrValidation marks input rejected before any store access.
var ErrValidation = errors.New("invalid input")

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
