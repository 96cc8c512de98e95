package preset

import "errors"

var (
	// ErrNotFound is returned when a preset or backup path does not exist.
	ErrNotFound = errors.New("preset not found")
	// ErrFormat is returned when file bytes do not parse as the expected syntax.
	ErrFormat = errors.New("invalid preset format")
	// ErrValidation is returned when a preset violates the schema.
	// Format errors are always reported as validation errors as well.
	ErrValidation = errors.New("preset validation failed")
	// ErrIO is returned when writing a preset fails at the filesystem layer.
	ErrIO = errors.New("preset io failure")
	// ErrUnknownVariant is returned for device variants outside the known set.
	ErrUnknownVariant = errors.New("unknown voicemeeter variant")
	// ErrUnsupportedFormat is returned for file extensions no codec handles.
	ErrUnsupportedFormat = errors.New("unsupported preset format")
)
