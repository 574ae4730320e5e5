package descriptor

import "errors"

// Descriptor errors
var (
	// ErrUnknownGroup indicates a protocol group with no descriptors
	ErrUnknownGroup = errors.New("no such PHY group")

	// ErrInvalidRange indicates a malformed "a..b" index range
	ErrInvalidRange = errors.New("invalid index range")

	// ErrInvalidValue indicates a field value that is not an unsigned number
	ErrInvalidValue = errors.New("invalid field value")
)
