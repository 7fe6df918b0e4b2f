package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pyembed/internal/adapters/logger"
	"go.trai.ch/pyembed/internal/core/ports"
)

// NodeID is the unique identifier for the process executor Graft node.
const NodeID graft.ID = "adapter.executor"

func init() {
	graft.Register(graft.Node[ports.ProcessExecutor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ProcessExecutor, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(log), nil
		},
	})
}
