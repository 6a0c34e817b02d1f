package envmap

import "errors"

// ErrNonStringValue is returned when a batch entry carries anything but a
// string; structured values must be serialized by the caller first.
var ErrNonStringValue = errors.New("batch value is not a string")

// ErrInvalidConflictPolicy is returned for a conflict policy outside
// overwrite|preserve|error.
var ErrInvalidConflictPolicy = errors.New("invalid conflict policy")

// ErrNameConflict is returned under PolicyError when a normalized name is
// already defined in the environment.
var ErrNameConflict = errors.New("environment name already defined")
