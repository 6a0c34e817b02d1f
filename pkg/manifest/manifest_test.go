package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestValidateReference(t *testing.T) {
	tests := []struct {
		name  string
		ref   string
		fails bool
	}{
		{"Pinned Remote", "actions/checkout@v4", false},
		{"Pinned SHA", "actions/checkout@8f4b7f84864484a7bf31766abe9204da3cbe65b3", false},
		{"Local Path", "./.github/actions/mine", false},
		{"Docker", "docker://alpine:3.20", false},
		{"Empty", "", true},
		{"Unpinned", "actions/checkout", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReference(tt.ref)
			if tt.fails {
				require.ErrorIs(t, err, ErrInvalidReference)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCompose(t *testing.T) {
	m, err := Compose("actions/setup-go@v5", map[string]string{"go-version": "1.25"}, map[string]string{"CGO_ENABLED": "0"})
	require.NoError(t, err)

	require.Equal(t, "composite", m.Runs.Using)
	require.Len(t, m.Runs.Steps, 1)

	step := m.Runs.Steps[0]
	require.Equal(t, "actions/setup-go@v5", step.Uses)
	require.Equal(t, "1.25", step.With["go-version"])
	require.Equal(t, "0", step.Env["CGO_ENABLED"])

	out, ok := m.Outputs["outputs"]
	require.True(t, ok)
	require.Equal(t, "${{ toJSON(steps.dynamic.outputs) }}", out.Value)
}

func TestCompose_InvalidReference(t *testing.T) {
	_, err := Compose("nope", nil, nil)
	require.ErrorIs(t, err, ErrInvalidReference)
}

func TestWrite_RoundTrips(t *testing.T) {
	m, err := Compose("./local", map[string]string{"k": "v"}, nil)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "generated")
	path, err := m.Write(dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "action.yml"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Manifest
	require.NoError(t, yaml.Unmarshal(raw, &decoded))
	require.Equal(t, m.Runs, decoded.Runs)
	require.Equal(t, m.Outputs, decoded.Outputs)
}
