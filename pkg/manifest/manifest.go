// Package manifest composes the dynamically generated sub-action manifest:
// a single-step composite action that invokes an arbitrary action reference
// and surfaces that step's outputs. The manifest is thin templating around
// the workflow-command core; all sanitization happens before values reach
// it.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// stepID names the generated step so the outputs passthrough expression can
// reference it.
const stepID = "dynamic"

// ErrInvalidReference is returned for an action reference the runner could
// not resolve: empty, or neither pinned (owner/repo@ref) nor local/docker.
var ErrInvalidReference = errors.New("invalid action reference")

// Step is one entry of a composite action's run sequence.
type Step struct {
	ID    string            `yaml:"id,omitempty"`
	Uses  string            `yaml:"uses"`
	With  map[string]string `yaml:"with,omitempty"`
	Env   map[string]string `yaml:"env,omitempty"`
	Shell string            `yaml:"shell,omitempty"`
	Run   string            `yaml:"run,omitempty"`
}

// Runs describes how the runner executes the action.
type Runs struct {
	Using string `yaml:"using"`
	Steps []Step `yaml:"steps"`
}

// Output declares one named output of the action.
type Output struct {
	Description string `yaml:"description,omitempty"`
	Value       string `yaml:"value"`
}

// Manifest is an action.yml document.
type Manifest struct {
	Name    string            `yaml:"name"`
	Outputs map[string]Output `yaml:"outputs,omitempty"`
	Runs    Runs              `yaml:"runs"`
}

// ValidateReference checks that ref is something the runner can resolve: a
// pinned remote reference (owner/repo@ref), a local path (./...), or a
// docker reference.
func ValidateReference(ref string) error {
	if ref == "" {
		return fmt.Errorf("%w: empty", ErrInvalidReference)
	}
	if strings.HasPrefix(ref, "./") || strings.HasPrefix(ref, "docker://") {
		return nil
	}
	if !strings.Contains(ref, "@") {
		return fmt.Errorf("%w: %q is not pinned (owner/repo@ref)", ErrInvalidReference, ref)
	}
	return nil
}

// Compose builds the manifest for a composite action that invokes ref with
// the given inputs and environment, republishing the step's outputs as a
// single JSON-encoded `outputs` output.
func Compose(ref string, with, env map[string]string) (*Manifest, error) {
	if err := ValidateReference(ref); err != nil {
		return nil, err
	}
	return &Manifest{
		Name: "dynamic-uses shim",
		Outputs: map[string]Output{
			"outputs": {
				Description: "JSON map of the invoked action's outputs",
				Value:       fmt.Sprintf("${{ toJSON(steps.%s.outputs) }}", stepID),
			},
		},
		Runs: Runs{
			Using: "composite",
			Steps: []Step{{
				ID:   stepID,
				Uses: ref,
				With: with,
				Env:  env,
			}},
		},
	}, nil
}

// Encode renders the manifest as YAML.
func (m *Manifest) Encode() ([]byte, error) {
	raw, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return raw, nil
}

// Write encodes the manifest and writes it to dir/action.yml, creating dir
// if needed. It returns the path of the written file.
func (m *Manifest) Write(dir string) (string, error) {
	raw, err := m.Encode()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create manifest dir: %w", err)
	}
	path := filepath.Join(dir, "action.yml")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}
