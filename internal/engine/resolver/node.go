package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pyembed/internal/adapters/archive" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pyembed/internal/adapters/config"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pyembed/internal/adapters/logger"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pyembed/internal/core/ports"
)

// NodeID is the unique identifier for the build context resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.EvaluatorNodeID,
			config.FinderNodeID,
			archive.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Resolver, error) {
			evaluator, err := graft.Dep[ports.ConfigEvaluator](ctx)
			if err != nil {
				return nil, err
			}

			finder, err := graft.Dep[ports.ConfigFinder](ctx)
			if err != nil {
				return nil, err
			}

			extractor, err := graft.Dep[ports.ArchiveExtractor](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewResolver(evaluator, finder, extractor, log), nil
		},
	})
}
