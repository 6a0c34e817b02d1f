package dynamicuses_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	dynamicuses "github.com/jenseng/dynamic-uses"
	"github.com/jenseng/dynamic-uses/internal/logging"
	"github.com/jenseng/dynamic-uses/pkg/core"
)

func newAction(t *testing.T, env core.MapEnv) (*core.Action, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	act, err := core.New(
		core.WithEnvironment(env),
		core.WithStdout(&buf),
		core.WithLogger(logging.NewNop()),
	)
	require.NoError(t, err)
	return act, &buf
}

func TestRun_ComposesManifestAndExportsEnv(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "output")
	require.NoError(t, os.WriteFile(outputFile, nil, 0o644))

	env := core.MapEnv{
		"INPUT_USES":        "actions/setup-node@v4",
		"INPUT_WITH":        "node-version: '22'",
		"INPUT_ENV":         "cacheDir: /tmp/cache",
		"INPUT_PREFIX":      "ci",
		"INPUT_UPCASE":      "true",
		"INPUT_ON-CONFLICT": "error",
		"GITHUB_OUTPUT":     outputFile,
	}
	act, _ := newAction(t, env)

	dir := filepath.Join(t.TempDir(), "gen")
	require.NoError(t, dynamicuses.Run(act, dynamicuses.RunOptions{ManifestDir: dir}))
	require.False(t, act.Failed())

	// Manifest written and referenced by the path output.
	manifestPath := filepath.Join(dir, "action.yml")
	raw, err := os.ReadFile(manifestPath)
	require.NoError(t, err)
	require.Contains(t, string(raw), "uses: actions/setup-node@v4")
	require.Contains(t, string(raw), `node-version: "22"`)

	out, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	require.Contains(t, string(out), "path<<ghadelimiter_")
	require.Contains(t, string(out), manifestPath)

	// Env entry exported under the normalized, prefixed, upcased name.
	require.Equal(t, "/tmp/cache", env["CI_CACHE_DIR"])
}

func TestRun_MissingUsesFails(t *testing.T) {
	act, buf := newAction(t, core.MapEnv{})

	err := dynamicuses.Run(act, dynamicuses.RunOptions{ManifestDir: t.TempDir()})
	require.Error(t, err)
	require.True(t, act.Failed())
	require.Equal(t, 1, act.ExitCode())
	require.Contains(t, buf.String(), "::error::")
}

func TestRun_UnpinnedReferenceFails(t *testing.T) {
	act, _ := newAction(t, core.MapEnv{"INPUT_USES": "actions/checkout"})

	err := dynamicuses.Run(act, dynamicuses.RunOptions{ManifestDir: t.TempDir()})
	require.Error(t, err)
	require.True(t, act.Failed())
}

func TestRun_ConflictErrorStopsBeforeManifest(t *testing.T) {
	env := core.MapEnv{
		"INPUT_USES":        "actions/checkout@v4",
		"INPUT_ENV":         "home: /elsewhere",
		"INPUT_UPCASE":      "true",
		"INPUT_ON-CONFLICT": "error",
		"HOME":              "/root",
	}
	act, buf := newAction(t, env)

	dir := filepath.Join(t.TempDir(), "gen")
	err := dynamicuses.Run(act, dynamicuses.RunOptions{ManifestDir: dir})
	require.Error(t, err)
	require.True(t, act.Failed())
	require.Contains(t, buf.String(), "HOME")
	require.Equal(t, "/root", env["HOME"], "conflicting variable must be unchanged")

	_, statErr := os.Stat(filepath.Join(dir, "action.yml"))
	require.True(t, os.IsNotExist(statErr), "manifest must not be written after an aborted export")
}

func TestRun_NonStringEnvValueFails(t *testing.T) {
	env := core.MapEnv{
		"INPUT_USES": "actions/checkout@v4",
		"INPUT_ENV":  "count: 3",
	}
	act, buf := newAction(t, env)

	err := dynamicuses.Run(act, dynamicuses.RunOptions{ManifestDir: t.TempDir()})
	require.Error(t, err)
	require.True(t, strings.Contains(buf.String(), "::error::"))
}

func TestRun_LegacyOutputWhenNoCommandFile(t *testing.T) {
	env := core.MapEnv{"INPUT_USES": "actions/checkout@v4"}
	act, buf := newAction(t, env)

	require.NoError(t, dynamicuses.Run(act, dynamicuses.RunOptions{ManifestDir: filepath.Join(t.TempDir(), "gen")}))
	require.Contains(t, buf.String(), "::set-output name=path::")
}
