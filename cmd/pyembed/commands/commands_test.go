package commands_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pyembed/cmd/pyembed/commands"
	"go.trai.ch/pyembed/internal/app"
	"go.trai.ch/pyembed/internal/build"
)

func newCLI(args ...string) (*commands.CLI, *bytes.Buffer) {
	cli := commands.New(app.New(nil, nil, nil, nil, nil, nil, nil))
	cli.SetArgs(args)
	var out bytes.Buffer
	cli.SetOutput(&out)
	return cli, &out
}

func TestVersion(t *testing.T) {
	cli, out := newCLI("version")

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "pyembed version "+build.Version+"\n", out.String())
}

func TestVerboseAndVersionFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "short verbose with version flag", args: []string{"-v", "--version"}},
		{name: "long verbose with version flag", args: []string{"--verbose", "--version"}},
		{name: "short verbose with version command", args: []string{"-v", "version"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, out := newCLI(tt.args...)

			require.NotPanics(t, func() {
				require.NoError(t, cli.Execute(context.Background()))
			})
			assert.Equal(t, "pyembed version "+build.Version+"\n", out.String())
		})
	}
}

func TestArgumentValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "init without path", args: []string{"init"}},
		{name: "build with two paths", args: []string{"build", "a", "b"}},
		{name: "run with two paths", args: []string{"run", "a", "b"}},
		{name: "build-artifacts without dest", args: []string{"build-artifacts"}},
		{name: "extract without dest", args: []string{"python-distribution-extract", "a.tar.zst"}},
		{name: "unknown report format", args: []string{"python-distribution-info", "--format", "xml", "a.tar.zst"}},
		{name: "licenses unknown report format", args: []string{"python-distribution-licenses", "--format", "json", "a.tar.zst"}},
		{name: "build script without script", args: []string{"run-build-script"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, _ := newCLI(tt.args...)
			assert.Error(t, cli.Execute(context.Background()))
		})
	}
}
