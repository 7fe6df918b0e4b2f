package generator_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pyembed/internal/adapters/generator"
	"go.trai.ch/pyembed/internal/core/domain"
	"go.trai.ch/pyembed/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newContext(t *testing.T, dist string) *domain.BuildContext {
	t.Helper()
	project := t.TempDir()
	cfg := domain.Config{
		ApplicationName:    "myapp",
		DistributionSource: dist,
		Allocator:          domain.AllocatorJemalloc,
		OptimizeLevel:      1,
		RunMode:            domain.RunModeModule,
		RunValue:           "app.main",
		Installs:           []domain.InstallRule{{Name: "readme", Source: filepath.Join(project, "README.md"), Dest: "README.md"}},
	}
	return domain.NewBuildContext(project, filepath.Join(project, domain.ConfigFileName), domain.TargetLinux, cfg, domain.ContextOptions{
		DistributionPath: dist,
	})
}

type generatorMocks struct {
	analyzer *mocks.MockDistributionAnalyzer
	locator  *mocks.MockRuntimeLocator
	executor *mocks.MockProcessExecutor
}

func newGeneratorWithMocks(t *testing.T) (*generator.Generator, generatorMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := generatorMocks{
		analyzer: mocks.NewMockDistributionAnalyzer(ctrl),
		locator:  mocks.NewMockRuntimeLocator(ctrl),
		executor: mocks.NewMockProcessExecutor(ctrl),
	}
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	return generator.New(m.analyzer, m.locator, m.executor, log), m
}

func newGenerator(t *testing.T) (*generator.Generator, *mocks.MockDistributionAnalyzer) {
	t.Helper()
	g, m := newGeneratorWithMocks(t)
	return g, m.analyzer
}

func TestGenerator_WritesConfigAndManifest(t *testing.T) {
	dist := t.TempDir()
	bc := newContext(t, dist)
	g, analyzer := newGenerator(t)

	analyzer.EXPECT().Inspect(dist).Return(&domain.DistributionInfo{
		Version:   "3.7.4",
		PyModules: []string{"os"},
		ExtensionModules: []domain.ExtensionModule{
			{Name: "_ssl", Variants: []domain.ExtensionVariant{{
				Variant:        "default",
				BuiltinDefault: true,
				Links:          []domain.ExtensionLink{{Name: "ssl"}, {Name: "dl", System: true}},
			}}},
			{Name: "_tkinter", Variants: []domain.ExtensionVariant{{
				Variant: "default",
				Links:   []domain.ExtensionLink{{Name: "tk"}},
			}}},
		},
	}, nil)

	require.NoError(t, g.Generate(context.Background(), bc, domain.DefaultArtifactSelector))

	data, err := os.ReadFile(filepath.Join(bc.ArtifactsPath, domain.EmbeddedConfigFileName))
	require.NoError(t, err)

	var cfg map[string]any
	require.NoError(t, json.Unmarshal(data, &cfg))
	assert.Equal(t, "myapp", cfg["application_name"])
	assert.Equal(t, "jemalloc", cfg["raw_allocator"])
	assert.InDelta(t, 1, cfg["optimize_level"], 0)
	assert.Equal(t, "0", cfg["native_opt_level"])
	assert.Equal(t, "module", cfg["run_mode"])
	assert.Equal(t, []any{"_ssl"}, cfg["extension_modules"])

	raw, err := os.ReadFile(bc.ManifestPath())
	require.NoError(t, err)
	m := domain.ParseManifest(string(raw))

	assert.Equal(t, []string{
		bc.ConfigPath,
		dist,
		filepath.Join(bc.ProjectPath, "README.md"),
	}, m.Dependencies())
	assert.Contains(t, m.Directives, domain.Directive{Kind: domain.DirectiveRustcLinkLib, Value: "static=ssl"})
	assert.Contains(t, m.Directives, domain.Directive{Kind: domain.DirectiveRustcLinkLib, Value: "dylib=dl"})
	assert.NotContains(t, m.Directives, domain.Directive{Kind: domain.DirectiveRustcLinkLib, Value: "static=tk"})
	assert.Contains(t, m.Directives, domain.Directive{Kind: domain.DirectiveRerunIfEnvChanged, Value: domain.EnvConfigPath})
}

func TestGenerator_NoDistribution(t *testing.T) {
	bc := newContext(t, "")
	g, _ := newGenerator(t)

	require.NoError(t, g.Generate(context.Background(), bc, "2"))

	raw, err := os.ReadFile(bc.ManifestPath())
	require.NoError(t, err)
	assert.Equal(t, []string{bc.ConfigPath, filepath.Join(bc.ProjectPath, "README.md")}, domain.ParseManifest(string(raw)).Dependencies())
}

func TestGenerator_InvalidSelector(t *testing.T) {
	bc := newContext(t, "")
	g, _ := newGenerator(t)

	err := g.Generate(context.Background(), bc, "fast")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrArtifactGeneration)
}

func TestGenerator_AnalyzerFailureRemovesManifest(t *testing.T) {
	dist := t.TempDir()
	bc := newContext(t, dist)
	g, analyzer := newGenerator(t)

	require.NoError(t, os.MkdirAll(bc.ArtifactsPath, 0o750))
	require.NoError(t, os.WriteFile(bc.ManifestPath(), []byte("cargo:rerun-if-changed=/old\n"), 0o600))

	analyzer.EXPECT().Inspect(dist).Return(nil, errors.Join(domain.ErrDistributionInvalid, errors.New("no metadata")))

	err := g.Generate(context.Background(), bc, domain.DefaultArtifactSelector)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrArtifactGeneration)
	assert.ErrorIs(t, err, domain.ErrDistributionInvalid)

	_, statErr := os.Stat(bc.ManifestPath())
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerator_GlobInstallsTrackMatches(t *testing.T) {
	bc := newContext(t, "")
	conf := filepath.Join(bc.ProjectPath, "conf")
	require.NoError(t, os.MkdirAll(conf, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(conf, "a.ini"), nil, 0o600))
	bc.Config.Installs = []domain.InstallRule{{Name: "conf", Source: filepath.Join(conf, "*.ini"), Dest: "etc"}}

	g, _ := newGenerator(t)
	require.NoError(t, g.Generate(context.Background(), bc, domain.DefaultArtifactSelector))

	raw, err := os.ReadFile(bc.ManifestPath())
	require.NoError(t, err)
	assert.Equal(t, []string{bc.ConfigPath, filepath.Join(conf, "a.ini")}, domain.ParseManifest(string(raw)).Dependencies())
}

func TestGenerator_PipInstall(t *testing.T) {
	dist := t.TempDir()
	bc := newContext(t, dist)
	bc.Config.PipInstall = []string{"requests==2.22.0"}
	g, m := newGeneratorWithMocks(t)

	python := filepath.Join(dist, "python", "install", "bin", "python3")
	sitePackages := filepath.Join(bc.ArtifactsPath, generator.SitePackagesDirName)

	m.analyzer.EXPECT().Inspect(dist).Return(&domain.DistributionInfo{Version: "3.7.4"}, nil)
	m.locator.EXPECT().InterpreterPath(dist).Return(python, nil)
	m.executor.EXPECT().Run(gomock.Any(), domain.Command{
		Name:    python,
		Args:    []string{"-m", "pip", "install", "--disable-pip-version-check", "--target", sitePackages, "requests==2.22.0"},
		Dir:     bc.ProjectPath,
		Capture: true,
	}).Return(domain.ProcessResult{}, nil)

	require.NoError(t, g.Generate(context.Background(), bc, domain.DefaultArtifactSelector))

	data, err := os.ReadFile(filepath.Join(bc.ArtifactsPath, domain.EmbeddedConfigFileName))
	require.NoError(t, err)
	var cfg map[string]any
	require.NoError(t, json.Unmarshal(data, &cfg))
	assert.Equal(t, sitePackages, cfg["site_packages"])
}

func TestGenerator_PipInstallFailureLeavesNoManifest(t *testing.T) {
	dist := t.TempDir()
	bc := newContext(t, dist)
	bc.Config.PipInstall = []string{"does-not-exist"}
	g, m := newGeneratorWithMocks(t)

	m.analyzer.EXPECT().Inspect(dist).Return(&domain.DistributionInfo{}, nil)
	m.locator.EXPECT().InterpreterPath(dist).Return("python3", nil)
	m.executor.EXPECT().Run(gomock.Any(), gomock.Any()).
		Return(domain.ProcessResult{ExitCode: 1, Stderr: []byte("No matching distribution")}, nil)

	err := g.Generate(context.Background(), bc, domain.DefaultArtifactSelector)
	require.ErrorIs(t, err, domain.ErrArtifactGeneration)
	assert.Contains(t, err.Error(), "pip install failed")
	assert.NoFileExists(t, bc.ManifestPath())
}

func TestGenerator_PipInstallWithoutDistribution(t *testing.T) {
	bc := newContext(t, "")
	bc.Config.PipInstall = []string{"six"}
	g, _ := newGeneratorWithMocks(t)

	err := g.Generate(context.Background(), bc, domain.DefaultArtifactSelector)
	require.ErrorIs(t, err, domain.ErrArtifactGeneration)
}
