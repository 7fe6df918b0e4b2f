package staleness

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/pyembed/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pyembed/internal/core/ports"
)

// NodeID is the unique identifier for the staleness tracker Graft node.
const NodeID graft.ID = "engine.staleness"

func init() {
	graft.Register(graft.Node[*Tracker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.DiagnosticsNodeID},
		Run: func(ctx context.Context) (*Tracker, error) {
			sink, err := graft.Dep[ports.DiagnosticSink](ctx)
			if err != nil {
				return nil, err
			}

			// An unresolvable executable leaves selfExe empty, which the tracker treats as stale.
			self, _ := os.Executable()

			return NewTracker(sink, self), nil
		},
	})
}
