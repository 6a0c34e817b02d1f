package core

import "errors"

// ErrCommandFileUnset is returned when a file-command operation runs but the
// runner never provided the corresponding GITHUB_* file path variable.
var ErrCommandFileUnset = errors.New("command file variable not set")

// ErrCommandFileMissing is returned when the runner-provided command file
// path does not exist on disk.
var ErrCommandFileMissing = errors.New("command file missing")

// ErrDelimiterCollision is returned when a key or value contains the freshly
// generated framing token; appending it would corrupt the command file.
var ErrDelimiterCollision = errors.New("delimiter collision in file command")

// ErrInputRequired is returned by GetInput when a required input is absent
// or empty.
var ErrInputRequired = errors.New("input required and not supplied")

// ErrInvalidBool is returned by GetBooleanInput for anything outside the
// YAML 1.2 core-schema booleans (true|True|TRUE|false|False|FALSE).
var ErrInvalidBool = errors.New("input is not a valid boolean")
