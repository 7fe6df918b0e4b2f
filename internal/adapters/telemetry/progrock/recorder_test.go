package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pyembed/internal/adapters/telemetry/progrock"
	"go.trai.ch/pyembed/internal/core/domain"
	"go.trai.ch/pyembed/internal/core/ports"
)

func TestNew(t *testing.T) {
	recorder := progrock.New()
	assert.NotNil(t, recorder)
}

func TestRecorder_AttachesVertexToContext(t *testing.T) {
	recorder := progrock.New()

	ctx, vertex := recorder.Record(context.Background(), "toolchain", ports.WithVertexID("run-1"))

	got, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, got)

	vertex.Complete(errors.New("cargo build failed"))
	require.NoError(t, recorder.Close())
}

func TestRecorder_Stages(t *testing.T) {
	recorder := progrock.New()
	ctx := context.Background()

	_, artifacts := recorder.Record(ctx, domain.StageArtifacts)
	artifacts.Log(domain.LogLevelDebug, "artifacts current")
	artifacts.Cached()
	artifacts.Complete(nil)

	_, toolchain := recorder.Record(ctx, domain.StageToolchain)
	_, err := toolchain.Stdout().Write([]byte("Compiling myapp v0.1.0\n"))
	require.NoError(t, err)
	toolchain.Log(domain.LogLevelWarn, "slow build")
	toolchain.Complete(nil)

	require.NoError(t, recorder.Close())
}
