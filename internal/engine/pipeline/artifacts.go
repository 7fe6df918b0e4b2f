// Package pipeline sequences the artifact, toolchain, package and run stages of a build.
package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/pyembed/internal/core/domain"
	"go.trai.ch/pyembed/internal/core/ports"
	"go.trai.ch/zerr"
)

// StalenessChecker decides whether previously generated artifacts can be reused.
type StalenessChecker interface {
	IsCurrent(configPath, manifestDir string) bool
}

// ArtifactStage regenerates embedding artifacts when they are stale.
type ArtifactStage struct {
	tracker   StalenessChecker
	generator ports.ArtifactGenerator
	logger    ports.Logger
}

// NewArtifactStage creates an ArtifactStage.
func NewArtifactStage(tracker StalenessChecker, generator ports.ArtifactGenerator, logger ports.Logger) *ArtifactStage {
	return &ArtifactStage{tracker: tracker, generator: generator, logger: logger}
}

// Ensure makes the artifacts in bc.ArtifactsPath current.
// It reports whether the generator ran.
func (s *ArtifactStage) Ensure(ctx context.Context, bc *domain.BuildContext) (bool, error) {
	if err := os.MkdirAll(bc.ArtifactsPath, domain.DirPerm); err != nil {
		return false, errors.Join(domain.ErrArtifactGeneration,
			zerr.With(zerr.Wrap(err, "failed to create artifacts directory"), "path", bc.ArtifactsPath))
	}

	dir, err := filepath.Abs(bc.ArtifactsPath)
	if err == nil {
		dir, err = filepath.EvalSymlinks(dir)
	}
	if err != nil {
		return false, errors.Join(domain.ErrArtifactGeneration,
			zerr.With(zerr.Wrap(err, "failed to resolve artifacts directory"), "path", bc.ArtifactsPath))
	}

	if s.tracker.IsCurrent(bc.ConfigPath, dir) {
		s.logger.Debug("artifacts in " + dir + " are current")
		return false, nil
	}

	resolved := *bc
	resolved.ArtifactsPath = dir

	if err := s.generator.Generate(ctx, &resolved, domain.DefaultArtifactSelector); err != nil {
		if errors.Is(err, domain.ErrArtifactGeneration) {
			return false, err
		}
		return false, errors.Join(domain.ErrArtifactGeneration, err)
	}

	return true, nil
}
