package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pyembed/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the logger Graft node.
	NodeID graft.ID = "adapter.logger"
	// DiagnosticsNodeID is the unique identifier for the diagnostics sink Graft node.
	DiagnosticsNodeID graft.ID = "adapter.diagnostics"
)

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			return New(), nil
		},
	})

	graft.Register(graft.Node[ports.DiagnosticSink]{
		ID:        DiagnosticsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (ports.DiagnosticSink, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewDiagnosticSink(log), nil
		},
	})
}
