package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pyembed/internal/adapters/logger"
	"go.trai.ch/pyembed/internal/core/ports"
)

const (
	// EvaluatorNodeID is the unique identifier for the config evaluator Graft node.
	EvaluatorNodeID graft.ID = "adapter.config_evaluator"
	// FinderNodeID is the unique identifier for the config finder Graft node.
	FinderNodeID graft.ID = "adapter.config_finder"
)

func init() {
	graft.Register(graft.Node[ports.ConfigEvaluator]{
		ID:        EvaluatorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigEvaluator, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewEvaluator(log), nil
		},
	})

	graft.Register(graft.Node[ports.ConfigFinder]{
		ID:        FinderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigFinder, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFinder(log), nil
		},
	})
}
