package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pyembed/internal/adapters/config"
	"go.trai.ch/pyembed/internal/core/domain"
	"go.trai.ch/pyembed/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const fullConfig = `
build {
  application_name = "myapp"
  build_path       = "out"
}

python_distribution {
  local_path = "dist/cpython.tar.zst"
}

embedded_python {
  raw_allocator  = target == "x86_64-pc-windows-msvc" ? "system" : "jemalloc"
  optimize_level = 1
  pip_install    = ["requests==2.22.0"]
}

run {
  mode   = "module"
  module = "myapp.main"
}

install "readme" {
  source = "README.md"
}

install "data" {
  source = "assets/data.bin"
  dest   = "share/data.bin"
}
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), domain.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func newEvaluator(t *testing.T) *config.Evaluator {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	return config.NewEvaluator(log)
}

func TestEvaluator_Evaluate(t *testing.T) {
	path := writeConfig(t, fullConfig)
	dir := filepath.Dir(path)

	cfg, err := newEvaluator(t).Evaluate(path, domain.TargetLinux)
	require.NoError(t, err)

	assert.Equal(t, "myapp", cfg.ApplicationName)
	assert.Equal(t, filepath.Join(dir, "out"), cfg.BuildPath)
	assert.Equal(t, filepath.Join(dir, "dist", "cpython.tar.zst"), cfg.DistributionSource)
	assert.Equal(t, domain.AllocatorJemalloc, cfg.Allocator)
	assert.Equal(t, 1, cfg.OptimizeLevel)
	assert.Equal(t, domain.RunModeModule, cfg.RunMode)
	assert.Equal(t, "myapp.main", cfg.RunValue)
	assert.Equal(t, []string{"requests==2.22.0"}, cfg.PipInstall)
	assert.Equal(t, []domain.InstallRule{
		{Name: "readme", Source: filepath.Join(dir, "README.md"), Dest: "README.md"},
		{Name: "data", Source: filepath.Join(dir, "assets", "data.bin"), Dest: filepath.Join("share", "data.bin")},
	}, cfg.Installs)
}

func TestEvaluator_Evaluate_TargetVariable(t *testing.T) {
	path := writeConfig(t, fullConfig)

	cfg, err := newEvaluator(t).Evaluate(path, domain.TargetWindows)
	require.NoError(t, err)

	assert.Equal(t, domain.AllocatorSystem, cfg.Allocator)
}

func TestEvaluator_Evaluate_Defaults(t *testing.T) {
	path := writeConfig(t, `build { application_name = "minimal" }`)

	cfg, err := newEvaluator(t).Evaluate(path, domain.TargetLinux)
	require.NoError(t, err)

	assert.Equal(t, "minimal", cfg.ApplicationName)
	assert.Empty(t, cfg.BuildPath)
	assert.Equal(t, domain.AllocatorSystem, cfg.Allocator)
	assert.Equal(t, domain.RunModeREPL, cfg.RunMode)
	assert.Empty(t, cfg.Installs)
}

func TestEvaluator_Evaluate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "syntax error",
			content: `build {`,
		},
		{
			name:    "missing build block",
			content: `run { mode = "repl" }`,
		},
		{
			name:    "unknown allocator",
			content: "build { application_name = \"a\" }\nembedded_python { raw_allocator = \"tcmalloc\" }",
		},
		{
			name:    "empty pip package",
			content: "build { application_name = \"a\" }\nembedded_python { pip_install = [\" \"] }",
		},
		{
			name:    "module mode without module",
			content: "build { application_name = \"a\" }\nrun { mode = \"module\" }",
		},
		{
			name:    "unknown run mode",
			content: "build { application_name = \"a\" }\nrun { mode = \"daemon\" }",
		},
		{
			name:    "install escaping app dir",
			content: "build { application_name = \"a\" }\ninstall \"x\" {\n  source = \"a\"\n  dest = \"../a\"\n}",
		},
		{
			name:    "undefined variable",
			content: `build { application_name = host }`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)

			_, err := newEvaluator(t).Evaluate(path, domain.TargetLinux)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConfigEvaluation)
		})
	}
}

func TestEvaluator_Evaluate_MissingFile(t *testing.T) {
	_, err := newEvaluator(t).Evaluate(filepath.Join(t.TempDir(), "nope.hcl"), domain.TargetLinux)
	assert.ErrorIs(t, err, domain.ErrConfigEvaluation)
}
