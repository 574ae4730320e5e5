package cmdbuf

import "errors"

// Command buffer errors
var (
	// ErrFrontEndNotFound indicates the selected front end has no descriptor
	ErrFrontEndNotFound = errors.New("front end not found")

	// ErrUnknownCommand indicates a command that is not in the catalog
	ErrUnknownCommand = errors.New("command not in catalog")

	// ErrUnknownTestFunction indicates a test-function fragment that is not
	// defined
	ErrUnknownTestFunction = errors.New("test function not defined")

	// ErrNoOptions indicates a configurable without an option list
	ErrNoOptions = errors.New("configurable has no options")
)
