package envmap

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"

	"github.com/mitchellh/mapstructure"

	"github.com/jenseng/dynamic-uses/pkg/core"
)

// ConflictPolicy decides what happens when a normalized name is already
// defined in the target environment.
type ConflictPolicy string

const (
	// PolicyOverwrite exports anyway; the new value wins. The default.
	PolicyOverwrite ConflictPolicy = "overwrite"
	// PolicyPreserve keeps the existing value and skips the entry.
	PolicyPreserve ConflictPolicy = "preserve"
	// PolicyError aborts the batch at the first conflict.
	PolicyError ConflictPolicy = "error"
)

// ParseConflictPolicy validates a policy name. The empty string resolves to
// PolicyOverwrite.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch ConflictPolicy(s) {
	case "":
		return PolicyOverwrite, nil
	case PolicyOverwrite, PolicyPreserve, PolicyError:
		return ConflictPolicy(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidConflictPolicy, s)
}

// Options controls key normalization and conflict handling for a batch.
type Options struct {
	// Prefix is prepended (with a joining underscore) before normalization.
	Prefix string `mapstructure:"prefix"`
	// Upcase selects uppercase names; lowercase otherwise.
	Upcase bool `mapstructure:"upcase"`
	// OnConflict is applied per key; empty means PolicyOverwrite.
	OnConflict ConflictPolicy `mapstructure:"on-conflict"`
}

// DecodeOptions builds Options from a loosely typed map, as delivered by a
// YAML `with:` block or a JSON flag value. Unknown keys are rejected so
// typos surface instead of silently defaulting.
func DecodeOptions(raw map[string]any) (Options, error) {
	var opts Options
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &opts,
		ErrorUnused: true,
		DecodeHook: func(from, to reflect.Type, v any) (any, error) {
			if to != reflect.TypeOf(ConflictPolicy("")) {
				return v, nil
			}
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %v", ErrInvalidConflictPolicy, v)
			}
			return ParseConflictPolicy(s)
		},
	})
	if err != nil {
		return Options{}, fmt.Errorf("build options decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return Options{}, fmt.Errorf("decode export options: %w", err)
	}
	return opts, nil
}

// Exporter normalizes batches of key/value pairs and exports them through a
// core.Action, honoring a per-batch conflict policy.
type Exporter struct {
	action *core.Action
	logger *slog.Logger
}

// NewExporter wires an Exporter to the action whose environment it exports
// into.
func NewExporter(action *core.Action) *Exporter {
	return &Exporter{
		action: action,
		logger: action.Logger(),
	}
}

// ExportBatch normalizes and exports every entry. Keys are processed in
// sorted order so PolicyError aborts at a deterministic point. The batch is
// not transactional: entries exported before a failure stay exported.
func (e *Exporter) ExportBatch(entries map[string]any, opts Options) error {
	policy, err := ParseConflictPolicy(string(opts.OnConflict))
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := e.action.Environment()
	for _, key := range keys {
		value, ok := entries[key].(string)
		if !ok {
			return fmt.Errorf("%w: %q", ErrNonStringValue, key)
		}
		name := Normalize(key, opts)
		if _, exists := env.Lookup(name); exists {
			switch policy {
			case PolicyError:
				return fmt.Errorf("%w: %s", ErrNameConflict, name)
			case PolicyPreserve:
				e.logger.Warn("preserving existing variable", "name", name)
				if err := e.action.Warning(fmt.Sprintf("Skipping %s: already defined", name)); err != nil {
					return err
				}
				continue
			case PolicyOverwrite:
				e.logger.Warn("overwriting existing variable", "name", name)
				if err := e.action.Warning(fmt.Sprintf("Overwriting %s: already defined", name)); err != nil {
					return err
				}
			}
		}
		if err := e.action.ExportVariable(name, value); err != nil {
			return fmt.Errorf("export %s: %w", name, err)
		}
	}
	return nil
}
