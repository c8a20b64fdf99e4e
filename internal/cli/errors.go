package cli

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCommand is returned for an unrecognised command word.
	ErrUnknownCommand = errors.New("cli: unknown command")
	// ErrInvalidFormat is returned when arguments do not follow a command's usage.
	ErrInvalidFormat = errors.New("cli: invalid command format")
)

func usageError(usage string) error {
	return fmt.Errorf("%w\n%s", ErrInvalidFormat, usage)
}
