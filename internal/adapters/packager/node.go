package packager

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pyembed/internal/adapters/cas"
	"go.trai.ch/pyembed/internal/adapters/fs"
	"go.trai.ch/pyembed/internal/adapters/logger"
	"go.trai.ch/pyembed/internal/core/ports"
)

// NodeID is the unique identifier for the packager Graft node.
const NodeID graft.ID = "adapter.packager"

func init() {
	graft.Register(graft.Node[ports.Packager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, fs.ResolverNodeID, fs.HasherNodeID, fs.VerifierNodeID},
		Run: func(ctx context.Context) (ports.Packager, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[*fs.Resolver](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[*fs.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			verifier, err := graft.Dep[*fs.Verifier](ctx)
			if err != nil {
				return nil, err
			}
			return New(log, resolver, hasher, verifier, cas.Open), nil
		},
	})
}
