package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pyembed/internal/adapters/archive"      //nolint:depguard // Wired in app layer
	"go.trai.ch/pyembed/internal/adapters/distribution" //nolint:depguard // Wired in app layer
	"go.trai.ch/pyembed/internal/adapters/logger"       //nolint:depguard // Wired in app layer
	"go.trai.ch/pyembed/internal/adapters/shell"        //nolint:depguard // Wired in app layer
	"go.trai.ch/pyembed/internal/core/ports"
	"go.trai.ch/pyembed/internal/engine/pipeline"
	"go.trai.ch/pyembed/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			resolver.NodeID,
			pipeline.SequencerNodeID,
			pipeline.ArtifactStageNodeID,
			distribution.AnalyzerNodeID,
			archive.NodeID,
			shell.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	seq, err := graft.Dep[*pipeline.Sequencer](ctx)
	if err != nil {
		return nil, err
	}

	artifacts, err := graft.Dep[*pipeline.ArtifactStage](ctx)
	if err != nil {
		return nil, err
	}

	analyzer, err := graft.Dep[ports.DistributionAnalyzer](ctx)
	if err != nil {
		return nil, err
	}

	extractor, err := graft.Dep[ports.ArchiveExtractor](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.ProcessExecutor](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(res, seq, artifacts, analyzer, extractor, executor, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
