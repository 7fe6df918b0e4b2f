package generator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pyembed/internal/adapters/distribution"
	"go.trai.ch/pyembed/internal/adapters/logger"
	"go.trai.ch/pyembed/internal/adapters/shell"
	"go.trai.ch/pyembed/internal/core/ports"
)

// NodeID is the unique identifier for the artifact generator Graft node.
const NodeID graft.ID = "adapter.generator"

func init() {
	graft.Register(graft.Node[ports.ArtifactGenerator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{distribution.AnalyzerNodeID, distribution.LocatorNodeID, shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.ArtifactGenerator, error) {
			analyzer, err := graft.Dep[ports.DistributionAnalyzer](ctx)
			if err != nil {
				return nil, err
			}
			locator, err := graft.Dep[ports.RuntimeLocator](ctx)
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
			return New(analyzer, locator, executor, log), nil
		},
	})
}
