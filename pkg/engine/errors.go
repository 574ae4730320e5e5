package engine

import (
	"errors"

	"github.com/herlein/radiocfg/pkg/descriptor"
)

// Engine errors
var (
	// ErrUnknownGroup indicates a protocol group the engine cannot handle
	ErrUnknownGroup = descriptor.ErrUnknownGroup

	// ErrUnknownSetting indicates a setting name with no descriptor
	ErrUnknownSetting = errors.New("no such setting")

	// ErrUnknownCommand indicates a command that is not in the buffer
	ErrUnknownCommand = errors.New("no such command")

	// ErrInvalidCommandSet indicates an unknown command selection
	ErrInvalidCommandSet = errors.New("invalid command selection")

	// ErrMissingParameter indicates an instance without a required value
	ErrMissingParameter = errors.New("missing parameter")

	// ErrInvalidParameter indicates an instance value of the wrong type
	ErrInvalidParameter = errors.New("invalid parameter value")
)
