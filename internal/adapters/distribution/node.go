package distribution

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pyembed/internal/adapters/archive"
	"go.trai.ch/pyembed/internal/core/ports"
)

const (
	// AnalyzerNodeID is the unique identifier for the distribution analyzer Graft node.
	AnalyzerNodeID graft.ID = "adapter.distribution_analyzer"
	// LocatorNodeID is the unique identifier for the runtime locator Graft node.
	LocatorNodeID graft.ID = "adapter.runtime_locator"
)

func init() {
	graft.Register(graft.Node[ports.DistributionAnalyzer]{
		ID:        AnalyzerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{archive.NodeID},
		Run: func(ctx context.Context) (ports.DistributionAnalyzer, error) {
			extractor, err := graft.Dep[ports.ArchiveExtractor](ctx)
			if err != nil {
				return nil, err
			}
			return NewAnalyzer(extractor), nil
		},
	})

	graft.Register(graft.Node[ports.RuntimeLocator]{
		ID:        LocatorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{archive.NodeID},
		Run: func(ctx context.Context) (ports.RuntimeLocator, error) {
			extractor, err := graft.Dep[ports.ArchiveExtractor](ctx)
			if err != nil {
				return nil, err
			}
			return NewAnalyzer(extractor), nil
		},
	})
}
