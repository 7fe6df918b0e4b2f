package ports

import (
	"context"
	"io"

	"go.trai.ch/pyembed/internal/core/domain"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records the progress of pipeline stages.
type Telemetry interface {
	// Record starts a vertex for a unit of work and attaches it to the returned context.
	Record(ctx context.Context, name string, opts ...VertexOption) (context.Context, Vertex)
	// Close flushes the recording session.
	Close() error
}

// Vertex is a unit of recorded work.
type Vertex interface {
	Stdout() io.Writer
	Stderr() io.Writer
	Log(level domain.LogLevel, msg string)
	// Complete marks the vertex finished. A nil error means success.
	Complete(err error)
	// Cached marks the vertex as skipped because its outputs were current.
	Cached()
}

// VertexConfig holds configuration for a recorded vertex.
type VertexConfig struct {
	// ID distinguishes vertices that share a name across runs.
	ID string
}

// VertexOption is a functional option for configuring a vertex.
type VertexOption func(*VertexConfig)

// WithVertexID sets the identity a vertex digest is derived from.
func WithVertexID(id string) VertexOption {
	return func(c *VertexConfig) {
		c.ID = id
	}
}

type vertexKey struct{}

// ContextWithVertex returns a copy of ctx carrying v.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex attached to ctx, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexKey{}).(Vertex)
	return v, ok
}
