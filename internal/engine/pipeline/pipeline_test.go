package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pyembed/internal/adapters/telemetry"
	"go.trai.ch/pyembed/internal/core/domain"
	"go.trai.ch/pyembed/internal/core/ports"
	"go.trai.ch/pyembed/internal/core/ports/mocks"
	"go.trai.ch/pyembed/internal/engine/pipeline"
	"go.trai.ch/pyembed/internal/engine/staleness"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

var versionCmd = domain.Command{
	Name:    domain.ToolchainCompiler,
	Args:    []string{"--version"},
	Capture: true,
}

type fixture struct {
	bc        *domain.BuildContext
	generator *mocks.MockArtifactGenerator
	packager  *mocks.MockPackager
	executor  *mocks.MockProcessExecutor
	locator   *mocks.MockRuntimeLocator
	toolchain *pipeline.ToolchainStage
	artifacts *pipeline.ArtifactStage
	seq       *pipeline.Sequencer
}

func newFixture(t *testing.T, tel ports.Telemetry) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	project := t.TempDir()
	past := time.Now().Add(-time.Hour)

	configPath := filepath.Join(project, domain.ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("build {}"), 0o600))
	require.NoError(t, os.Chtimes(configPath, past, past))

	selfExe := filepath.Join(project, "pyembed-bin")
	require.NoError(t, os.WriteFile(selfExe, nil, 0o600))
	require.NoError(t, os.Chtimes(selfExe, past, past))

	bc := domain.NewBuildContext(project, configPath, domain.TargetLinux,
		domain.Config{ApplicationName: "myapp"}, domain.ContextOptions{})

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	if tel == nil {
		tel = telemetry.NewNoOp()
	}

	f := &fixture{
		bc:        bc,
		generator: mocks.NewMockArtifactGenerator(ctrl),
		packager:  mocks.NewMockPackager(ctrl),
		executor:  mocks.NewMockProcessExecutor(ctrl),
		locator:   mocks.NewMockRuntimeLocator(ctrl),
	}

	f.artifacts = pipeline.NewArtifactStage(staleness.NewTracker(nil, selfExe), f.generator, log)
	f.toolchain = pipeline.NewToolchainStage(f.executor, f.locator, log)
	f.toolchain.SetHostOS("linux")
	f.seq = pipeline.NewSequencer(f.artifacts, f.toolchain, f.packager, pipeline.NewRunStage(f.executor), tel, log)
	f.seq.SetRunIDFunc(func() string { return "run-1" })

	return f
}

// writeManifest mimics a generator run by recording the config file as the only dependency.
func writeManifest(_ context.Context, bc *domain.BuildContext, _ string) error {
	var m domain.Manifest
	m.Add(domain.DirectiveRerunIfChanged, bc.ConfigPath)
	return os.WriteFile(bc.ManifestPath(), []byte(m.Render()), 0o600)
}

func (f *fixture) expectVersion(output string) *gomock.Call {
	return f.executor.EXPECT().
		Run(gomock.Any(), versionCmd).
		Return(domain.ProcessResult{Stdout: []byte(output)}, nil)
}

func TestSequencer_BuildSucceeds(t *testing.T) {
	f := newFixture(t, nil)

	gomock.InOrder(
		f.generator.EXPECT().Generate(gomock.Any(), gomock.Any(), domain.DefaultArtifactSelector).DoAndReturn(writeManifest),
		f.expectVersion("rustc 1.40.0 (73528e339 2019-12-16)\n"),
		f.executor.EXPECT().Run(gomock.Any(), domain.ToolchainCommand(f.bc, "", "linux")).Return(domain.ProcessResult{}, nil),
		f.packager.EXPECT().Package(gomock.Any(), f.bc).Return(nil),
	)

	out, err := f.seq.Build(context.Background(), f.bc)
	require.NoError(t, err)
	assert.Equal(t, domain.StateDone, out.State)
	assert.Equal(t, "run-1", out.RunID)
	assert.True(t, out.Regenerated)
	assert.Empty(t, out.FailedStage)
}

func TestSequencer_ToolchainExitOneSkipsPackaging(t *testing.T) {
	f := newFixture(t, nil)

	f.generator.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(writeManifest)
	f.expectVersion("rustc 1.36.0 (a53f9df32 2019-07-03)")
	f.executor.EXPECT().
		Run(gomock.Any(), domain.ToolchainCommand(f.bc, "", "linux")).
		Return(domain.ProcessResult{ExitCode: 1}, nil)
	f.packager.EXPECT().Package(gomock.Any(), gomock.Any()).Times(0)

	out, err := f.seq.Build(context.Background(), f.bc)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrToolchainBuild)
	assert.Contains(t, err.Error(), "cargo build failed")
	assert.Equal(t, domain.StateFailed, out.State)
	assert.Equal(t, domain.StageToolchain, out.FailedStage)
}

func TestSequencer_FreshProjectGeneratesOnce(t *testing.T) {
	f := newFixture(t, nil)

	f.generator.EXPECT().Generate(gomock.Any(), gomock.Any(), domain.DefaultArtifactSelector).DoAndReturn(writeManifest).Times(1)

	first, err := f.seq.BuildArtifactsOnly(context.Background(), f.bc)
	require.NoError(t, err)
	assert.True(t, first.Regenerated)
	assert.Equal(t, domain.StateDone, first.State)

	second, err := f.seq.BuildArtifactsOnly(context.Background(), f.bc)
	require.NoError(t, err)
	assert.False(t, second.Regenerated)
	assert.Equal(t, domain.StateDone, second.State)
}

func TestSequencer_TouchedConfigRegenerates(t *testing.T) {
	f := newFixture(t, nil)

	f.generator.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(writeManifest).Times(2)

	_, err := f.seq.BuildArtifactsOnly(context.Background(), f.bc)
	require.NoError(t, err)

	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(f.bc.ConfigPath, future, future))

	out, err := f.seq.BuildArtifactsOnly(context.Background(), f.bc)
	require.NoError(t, err)
	assert.True(t, out.Regenerated)
}

func TestSequencer_ArtifactFailureStopsPipeline(t *testing.T) {
	f := newFixture(t, nil)

	f.generator.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
	f.executor.EXPECT().Run(gomock.Any(), gomock.Any()).Times(0)
	f.packager.EXPECT().Package(gomock.Any(), gomock.Any()).Times(0)

	out, err := f.seq.Build(context.Background(), f.bc)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrArtifactGeneration)
	assert.Equal(t, domain.StateFailed, out.State)
	assert.Equal(t, domain.StageArtifacts, out.FailedStage)
}

func TestSequencer_PackagingFailure(t *testing.T) {
	f := newFixture(t, nil)

	f.generator.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(writeManifest)
	f.expectVersion("rustc 1.40.0")
	f.executor.EXPECT().Run(gomock.Any(), gomock.Any()).Return(domain.ProcessResult{}, nil)
	f.packager.EXPECT().Package(gomock.Any(), gomock.Any()).Return(domain.ErrPackaging)

	out, err := f.seq.Build(context.Background(), f.bc)
	assert.ErrorIs(t, err, domain.ErrPackaging)
	assert.Equal(t, domain.StagePackage, out.FailedStage)
}

func TestSequencer_FailureKeepsCollaboratorSentinel(t *testing.T) {
	f := newFixture(t, nil)

	f.generator.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(writeManifest)
	f.expectVersion("rustc 1.40.0")
	f.executor.EXPECT().Run(gomock.Any(), gomock.Any()).Return(domain.ProcessResult{}, nil)
	f.packager.EXPECT().Package(gomock.Any(), gomock.Any()).
		Return(zerr.With(zerr.Wrap(domain.ErrPackaging, ""), "path", f.bc.AppExePath))

	out, err := f.seq.Build(context.Background(), f.bc)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPackaging)
	assert.Equal(t, domain.StateFailed, out.State)
}

func TestSequencer_BuildAndRunForwardsArgs(t *testing.T) {
	f := newFixture(t, nil)
	args := []string{"--flag", "value"}

	gomock.InOrder(
		f.generator.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(writeManifest),
		f.expectVersion("rustc 1.40.0"),
		f.executor.EXPECT().Run(gomock.Any(), domain.ToolchainCommand(f.bc, "", "linux")).Return(domain.ProcessResult{}, nil),
		f.packager.EXPECT().Package(gomock.Any(), f.bc).Return(nil),
		f.executor.EXPECT().
			Run(gomock.Any(), domain.Command{Name: f.bc.AppExePath, Args: args, Dir: f.bc.ProjectPath}).
			Return(domain.ProcessResult{}, nil),
	)

	out, err := f.seq.BuildAndRun(context.Background(), f.bc, args)
	require.NoError(t, err)
	assert.Equal(t, domain.StateDone, out.State)
}

func TestSequencer_RunFailure(t *testing.T) {
	f := newFixture(t, nil)

	f.generator.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(writeManifest)
	f.expectVersion("rustc 1.40.0")
	f.executor.EXPECT().Run(gomock.Any(), domain.ToolchainCommand(f.bc, "", "linux")).Return(domain.ProcessResult{}, nil)
	f.packager.EXPECT().Package(gomock.Any(), gomock.Any()).Return(nil)
	f.executor.EXPECT().
		Run(gomock.Any(), domain.Command{Name: f.bc.AppExePath, Dir: f.bc.ProjectPath}).
		Return(domain.ProcessResult{ExitCode: 3}, nil)

	out, err := f.seq.BuildAndRun(context.Background(), f.bc, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRunLaunch)
	assert.Equal(t, domain.StageRun, out.FailedStage)
}

func TestSequencer_CurrentArtifactsMarkVertexCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	tel := mocks.NewMockTelemetry(ctrl)
	vertex := mocks.NewMockVertex(ctrl)

	f := newFixture(t, tel)

	require.NoError(t, os.MkdirAll(f.bc.ArtifactsPath, 0o750))
	require.NoError(t, writeManifest(context.Background(), f.bc, ""))

	tel.EXPECT().
		Record(gomock.Any(), domain.StageArtifacts, gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ ...ports.VertexOption) (context.Context, ports.Vertex) {
			return ctx, vertex
		})
	gomock.InOrder(
		vertex.EXPECT().Cached(),
		vertex.EXPECT().Complete(nil),
	)
	f.generator.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	out, err := f.seq.BuildArtifactsOnly(context.Background(), f.bc)
	require.NoError(t, err)
	assert.False(t, out.Regenerated)
}

func TestSequencer_FailedStageCompletesVertexWithError(t *testing.T) {
	ctrl := gomock.NewController(t)
	tel := mocks.NewMockTelemetry(ctrl)
	vertex := mocks.NewMockVertex(ctrl)

	f := newFixture(t, tel)

	tel.EXPECT().
		Record(gomock.Any(), domain.StageArtifacts, gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ ...ports.VertexOption) (context.Context, ports.Vertex) {
			return ctx, vertex
		})
	vertex.EXPECT().Complete(gomock.Not(gomock.Nil()))
	f.generator.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.ErrArtifactGeneration)

	_, err := f.seq.BuildArtifactsOnly(context.Background(), f.bc)
	assert.ErrorIs(t, err, domain.ErrArtifactGeneration)
}
