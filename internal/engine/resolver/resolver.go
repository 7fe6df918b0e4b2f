// Package resolver turns command-line inputs into an immutable build context.
package resolver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"

	"go.trai.ch/pyembed/internal/core/domain"
	"go.trai.ch/pyembed/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver locates the project and its configuration and evaluates it for a target.
type Resolver struct {
	evaluator ports.ConfigEvaluator
	finder    ports.ConfigFinder
	extractor ports.ArchiveExtractor
	logger    ports.Logger
	goos      string
}

// NewResolver creates a Resolver for the host platform.
func NewResolver(
	evaluator ports.ConfigEvaluator,
	finder ports.ConfigFinder,
	extractor ports.ArchiveExtractor,
	logger ports.Logger,
) *Resolver {
	return &Resolver{
		evaluator: evaluator,
		finder:    finder,
		extractor: extractor,
		logger:    logger,
		goos:      runtime.GOOS,
	}
}

// Resolve produces the build context for one pipeline run.
func (r *Resolver) Resolve(ctx context.Context, req domain.ResolveRequest) (*domain.BuildContext, error) {
	projectPath, err := canonicalize(req.ProjectPath)
	if err != nil {
		return nil, errors.Join(domain.ErrNotAProject,
			zerr.With(zerr.Wrap(err, "failed to resolve project path"), "path", req.ProjectPath))
	}

	if !hasProjectFiles(projectPath) {
		return nil, zerr.With(zerr.Wrap(domain.ErrNotAProject, ""), "path", projectPath)
	}

	target := req.Target
	if target == "" {
		target, err = domain.DefaultTarget(r.goos)
		if err != nil {
			return nil, err
		}
	}

	configPath, err := r.configPath(projectPath, req.ConfigPath)
	if err != nil {
		return nil, err
	}

	cfg, err := r.evaluator.Evaluate(configPath, target)
	if err != nil {
		if errors.Is(err, domain.ErrConfigEvaluation) {
			return nil, err
		}
		return nil, errors.Join(domain.ErrConfigEvaluation, zerr.With(zerr.Wrap(err, ""), "path", configPath))
	}

	distPath, err := r.distribution(ctx, projectPath, cfg)
	if err != nil {
		return nil, err
	}

	artifacts := req.ArtifactsPath
	if artifacts != "" {
		if artifacts, err = filepath.Abs(artifacts); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to resolve artifacts path"), "path", req.ArtifactsPath)
		}
	}

	return domain.NewBuildContext(projectPath, configPath, target, *cfg, domain.ContextOptions{
		Release:          req.Release,
		ArtifactsPath:    artifacts,
		DistributionPath: distPath,
		Verbose:          req.Verbose,
	}), nil
}

func (r *Resolver) configPath(projectPath, explicit string) (string, error) {
	if explicit != "" {
		p, err := filepath.Abs(explicit)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to resolve config path"), "path", explicit)
		}
		return p, nil
	}

	p, ok := r.finder.Find(projectPath)
	if !ok {
		return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, ""), "path", projectPath)
	}
	return p, nil
}

// distribution returns a directory holding the configured Python distribution,
// extracting archives under <build>/python_distributions on first use.
func (r *Resolver) distribution(ctx context.Context, projectPath string, cfg *domain.Config) (string, error) {
	src := cfg.DistributionSource
	if src == "" {
		return "", nil
	}
	if !filepath.IsAbs(src) {
		src = filepath.Join(projectPath, src)
	}

	stem, isArchive := domain.ArchiveStem(filepath.Base(src))
	if !isArchive {
		return src, nil
	}

	dest := filepath.Join(cfg.ResolvedBuildPath(projectPath), domain.DistributionsDirName, stem)
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		return dest, nil
	}

	r.logger.Info("extracting python distribution " + src)

	f, err := os.Open(src) //nolint:gosec // Path comes from the project configuration
	if err != nil {
		return "", errors.Join(domain.ErrArchiveIO, zerr.With(zerr.Wrap(err, "failed to open archive"), "path", src))
	}
	defer func() { _ = f.Close() }()

	staging := dest + ".partial"
	if err := os.RemoveAll(staging); err != nil {
		return "", errors.Join(domain.ErrArchiveIO, zerr.With(zerr.Wrap(err, "failed to clear staging directory"), "path", staging))
	}

	if err := r.extractor.Extract(ctx, f, staging); err != nil {
		_ = os.RemoveAll(staging)
		return "", err
	}

	if err := os.Rename(staging, dest); err != nil {
		_ = os.RemoveAll(staging)
		return "", errors.Join(domain.ErrArchiveIO, zerr.With(zerr.Wrap(err, "failed to move distribution into place"), "path", dest))
	}

	return dest, nil
}

func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

func hasProjectFiles(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if domain.IsProjectFile(e.Name()) {
			return true
		}
	}
	return false
}
