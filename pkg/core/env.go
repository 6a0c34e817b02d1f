package core

import (
	"os"
	"strings"
)

// Environment abstracts process-environment access so the protocol logic can
// run against an injected map in tests instead of mutating real process
// state.
type Environment interface {
	// Lookup returns the value for key and whether it is defined at all.
	Lookup(key string) (string, bool)
	// Set defines or replaces key in the environment.
	Set(key, value string) error
	// All returns a snapshot of every defined variable.
	All() map[string]string
}

type osEnv struct{}

// OS returns the Environment backed by the real process environment.
func OS() Environment {
	return osEnv{}
}

func (osEnv) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (osEnv) Set(key, value string) error {
	return os.Setenv(key, value)
}

func (osEnv) All() map[string]string {
	environ := os.Environ()
	all := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			all[k] = v
		}
	}
	return all
}

// MapEnv is an in-memory Environment for tests and dry runs.
type MapEnv map[string]string

func (m MapEnv) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MapEnv) Set(key, value string) error {
	m[key] = value
	return nil
}

func (m MapEnv) All() map[string]string {
	all := make(map[string]string, len(m))
	for k, v := range m {
		all[k] = v
	}
	return all
}
