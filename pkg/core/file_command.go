package core

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// delimiterPrefix is the fixed part of every framing token. Only the full
// token is checked for collisions; values containing the bare prefix are
// legal.
const delimiterPrefix = "ghadelimiter_"

// newDelimiter returns a framing token unique to this invocation. A var so
// collision handling is testable without brute-forcing a UUID.
var newDelimiter = func() string {
	return delimiterPrefix + uuid.NewString()
}

// frameFileCommand renders the heredoc-style block appended to a command
// file for one key/value record:
//
//	key<<ghadelimiter_<uuid>
//	value
//	ghadelimiter_<uuid>
//
// The value may contain arbitrary newlines; safety comes from the freshness
// of the token, enforced by an exact-substring check on both key and value.
func frameFileCommand(key string, value any) (string, error) {
	v, err := CommandValue(value)
	if err != nil {
		return "", err
	}
	delim := newDelimiter()
	if strings.Contains(key, delim) {
		return "", fmt.Errorf("%w: key %q contains %q", ErrDelimiterCollision, key, delim)
	}
	if strings.Contains(v, delim) {
		return "", fmt.Errorf("%w: value for %q contains %q", ErrDelimiterCollision, key, delim)
	}
	return fmt.Sprintf("%s<<%s\n%s\n%s\n", key, delim, v, delim), nil
}

// appendFileCommand resolves the command file for kind (the value of the
// GITHUB_<kind> variable, already captured at Action construction) and
// appends one framed record. The append is a single write call so records
// from sibling steps do not interleave.
func appendFileCommand(path, kind, key string, value any) error {
	if path == "" {
		return fmt.Errorf("%w: GITHUB_%s", ErrCommandFileUnset, kind)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s (GITHUB_%s)", ErrCommandFileMissing, path, kind)
	}
	block, err := frameFileCommand(key, value)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open command file: %w", err)
	}
	defer f.Close()
	if _, err := f.Write([]byte(block)); err != nil {
		return fmt.Errorf("append command file: %w", err)
	}
	return nil
}
