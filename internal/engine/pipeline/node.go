package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pyembed/internal/adapters/distribution"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pyembed/internal/adapters/generator"          //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pyembed/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pyembed/internal/adapters/packager"           //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pyembed/internal/adapters/shell"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pyembed/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pyembed/internal/core/ports"
	"go.trai.ch/pyembed/internal/engine/staleness"
)

const (
	// ArtifactStageNodeID is the unique identifier for the artifact stage Graft node.
	ArtifactStageNodeID graft.ID = "engine.pipeline.artifacts"
	// SequencerNodeID is the unique identifier for the pipeline sequencer Graft node.
	SequencerNodeID graft.ID = "engine.pipeline"
)

func init() {
	graft.Register(graft.Node[*ArtifactStage]{
		ID:        ArtifactStageNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{staleness.NodeID, generator.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*ArtifactStage, error) {
			tracker, err := graft.Dep[*staleness.Tracker](ctx)
			if err != nil {
				return nil, err
			}

			gen, err := graft.Dep[ports.ArtifactGenerator](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewArtifactStage(tracker, gen, log), nil
		},
	})

	graft.Register(graft.Node[*Sequencer]{
		ID:        SequencerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			ArtifactStageNodeID,
			shell.NodeID,
			distribution.LocatorNodeID,
			packager.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: runSequencerNode,
	})
}

func runSequencerNode(ctx context.Context) (*Sequencer, error) {
	artifacts, err := graft.Dep[*ArtifactStage](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.ProcessExecutor](ctx)
	if err != nil {
		return nil, err
	}

	locator, err := graft.Dep[ports.RuntimeLocator](ctx)
	if err != nil {
		return nil, err
	}

	pkg, err := graft.Dep[ports.Packager](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return NewSequencer(
		artifacts,
		NewToolchainStage(executor, locator, log),
		pkg,
		NewRunStage(executor),
		telemetry,
		log,
	), nil
}
