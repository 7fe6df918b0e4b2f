package pipeline

import (
	"context"

	"github.com/google/uuid"
	"go.trai.ch/pyembed/internal/core/domain"
	"go.trai.ch/pyembed/internal/core/ports"
	"go.trai.ch/zerr"
)

// Outcome is the terminal position of one pipeline run.
type Outcome struct {
	RunID string
	State domain.PipelineState
	// FailedStage names the stage that failed. It is empty unless State is StateFailed.
	FailedStage string
	// Regenerated reports whether artifacts were rebuilt during the run.
	Regenerated bool
}

// Sequencer drives the stages of a build in order, stopping at the first failure.
type Sequencer struct {
	artifacts *ArtifactStage
	toolchain *ToolchainStage
	packager  ports.Packager
	runner    *RunStage
	telemetry ports.Telemetry
	logger    ports.Logger
	newRunID  func() string
}

// NewSequencer creates a Sequencer.
func NewSequencer(
	artifacts *ArtifactStage,
	toolchain *ToolchainStage,
	packager ports.Packager,
	runner *RunStage,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Sequencer {
	return &Sequencer{
		artifacts: artifacts,
		toolchain: toolchain,
		packager:  packager,
		runner:    runner,
		telemetry: telemetry,
		logger:    logger,
		newRunID:  uuid.NewString,
	}
}

type step struct {
	name string
	next domain.PipelineState
	// run returns true when the stage found its outputs current.
	run func(ctx context.Context) (bool, error)
}

// Build ensures artifacts, invokes the toolchain and packages the application.
func (s *Sequencer) Build(ctx context.Context, bc *domain.BuildContext) (Outcome, error) {
	var out Outcome
	return s.execute(ctx, &out, s.buildSteps(bc, &out))
}

// BuildAndRun builds the application and then runs it with args.
func (s *Sequencer) BuildAndRun(ctx context.Context, bc *domain.BuildContext, args []string) (Outcome, error) {
	var out Outcome
	steps := append(s.buildSteps(bc, &out), step{
		name: domain.StageRun,
		next: domain.StateRan,
		run: func(ctx context.Context) (bool, error) {
			return false, s.runner.Run(ctx, bc, args)
		},
	})
	return s.execute(ctx, &out, steps)
}

// BuildArtifactsOnly ensures artifacts without compiling.
func (s *Sequencer) BuildArtifactsOnly(ctx context.Context, bc *domain.BuildContext) (Outcome, error) {
	var out Outcome
	return s.execute(ctx, &out, []step{s.artifactStep(bc, &out)})
}

func (s *Sequencer) buildSteps(bc *domain.BuildContext, out *Outcome) []step {
	return []step{
		s.artifactStep(bc, out),
		{
			name: domain.StageToolchain,
			next: domain.StateToolchainInvoked,
			run: func(ctx context.Context) (bool, error) {
				return false, s.toolchain.Invoke(ctx, bc)
			},
		},
		{
			name: domain.StagePackage,
			next: domain.StatePackaged,
			run: func(ctx context.Context) (bool, error) {
				return false, s.packager.Package(ctx, bc)
			},
		},
	}
}

func (s *Sequencer) artifactStep(bc *domain.BuildContext, out *Outcome) step {
	return step{
		name: domain.StageArtifacts,
		next: domain.StateArtifactsEnsured,
		run: func(ctx context.Context) (bool, error) {
			regenerated, err := s.artifacts.Ensure(ctx, bc)
			out.Regenerated = regenerated
			return err == nil && !regenerated, err
		},
	}
}

func (s *Sequencer) execute(ctx context.Context, out *Outcome, steps []step) (Outcome, error) {
	out.RunID = s.newRunID()
	out.State = domain.StateNotStarted

	for _, st := range steps {
		s.logger.Debug("run " + out.RunID + ": " + st.name)

		stageCtx, vertex := s.telemetry.Record(ctx, st.name, ports.WithVertexID(out.RunID))
		current, err := st.run(stageCtx)
		if err != nil {
			vertex.Complete(err)
			out.State = domain.StateFailed
			out.FailedStage = st.name
			return *out, zerr.With(zerr.With(zerr.Wrap(err, ""), "stage", st.name), "run_id", out.RunID)
		}

		if current {
			vertex.Cached()
		}
		vertex.Complete(nil)
		out.State = st.next
	}

	out.State = domain.StateDone
	return *out, nil
}
