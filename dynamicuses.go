package dynamicuses

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jenseng/dynamic-uses/pkg/core"
	"github.com/jenseng/dynamic-uses/pkg/envmap"
	"github.com/jenseng/dynamic-uses/pkg/manifest"
)

// Version is the toolkit release version.
const Version = "1.1.0"

// DefaultManifestDir is where the generated sub-action lands when the host
// does not choose a directory. Workspace-relative so the runner can resolve
// it as a local action reference.
const DefaultManifestDir = ".github/dynamic-uses"

// RunOptions adjusts the action entrypoint flow.
type RunOptions struct {
	// ManifestDir overrides DefaultManifestDir.
	ManifestDir string
}

// Run is the action entrypoint: it reads the step inputs through act,
// composes and writes the sub-action manifest, exports the requested
// environment variables, and publishes the manifest path as the `path`
// output. Failures are converted into the runner-visible failure signal on
// act; callers terminate with act.ExitCode.
func Run(act *core.Action, opts RunOptions) error {
	if err := run(act, opts); err != nil {
		act.SetFailed(err.Error())
		return err
	}
	return nil
}

func run(act *core.Action, opts RunOptions) error {
	ref, err := act.GetInput("uses", core.Required())
	if err != nil {
		return err
	}

	with, err := inputStringMap(act, "with")
	if err != nil {
		return err
	}
	envEntries, err := inputMap(act, "env")
	if err != nil {
		return err
	}

	exportOpts, err := exportOptions(act)
	if err != nil {
		return err
	}
	if len(envEntries) > 0 {
		if err := envmap.NewExporter(act).ExportBatch(envEntries, exportOpts); err != nil {
			return err
		}
	}

	m, err := manifest.Compose(ref, with, nil)
	if err != nil {
		return err
	}
	dir := opts.ManifestDir
	if dir == "" {
		dir = DefaultManifestDir
	}
	path, err := m.Write(dir)
	if err != nil {
		return err
	}

	act.Logger().Info("composed dynamic action", "uses", ref, "path", path)
	return act.SetOutput("path", path)
}

// exportOptions assembles the batch export options from the prefix, upcase
// and on-conflict inputs.
func exportOptions(act *core.Action) (envmap.Options, error) {
	prefix, err := act.GetInput("prefix")
	if err != nil {
		return envmap.Options{}, err
	}
	upcase := false
	if raw, rawErr := act.GetInput("upcase"); rawErr == nil && raw != "" {
		if upcase, err = act.GetBooleanInput("upcase"); err != nil {
			return envmap.Options{}, err
		}
	}
	onConflict, err := act.GetInput("on-conflict")
	if err != nil {
		return envmap.Options{}, err
	}
	policy, err := envmap.ParseConflictPolicy(onConflict)
	if err != nil {
		return envmap.Options{}, err
	}
	return envmap.Options{Prefix: prefix, Upcase: upcase, OnConflict: policy}, nil
}

// inputMap parses a YAML/JSON mapping input into its loosely typed form.
func inputMap(act *core.Action, name string) (map[string]any, error) {
	raw, err := act.GetInput(name)
	if err != nil || raw == "" {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("parse %s input: %w", name, err)
	}
	return m, nil
}

// inputStringMap parses a mapping input whose values must all be strings.
func inputStringMap(act *core.Action, name string) (map[string]string, error) {
	raw, err := act.GetInput(name)
	if err != nil || raw == "" {
		return nil, err
	}
	var m map[string]string
	if err := yaml.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("parse %s input: %w", name, err)
	}
	return m, nil
}
