// Package config evaluates and discovers pyembed project configuration.
package config

import (
	"errors"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"go.trai.ch/pyembed/internal/core/domain"
	"go.trai.ch/pyembed/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ConfigEvaluator = (*Evaluator)(nil)

// Evaluator implements ports.ConfigEvaluator for HCL files.
type Evaluator struct {
	logger ports.Logger
}

// NewEvaluator creates a new Evaluator.
func NewEvaluator(logger ports.Logger) *Evaluator {
	return &Evaluator{logger: logger}
}

// Evaluate parses the file at path with the variable `target` bound to target.
func (e *Evaluator) Evaluate(path, target string) (*domain.Config, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, evalError(diags, "failed to parse config", path)
	}

	var pf projectFile
	if diags := gohcl.DecodeBody(file.Body, evalContext(target), &pf); diags.HasErrors() {
		return nil, evalError(diags, "failed to decode config", path)
	}

	cfg, err := toConfig(&pf, filepath.Dir(path))
	if err != nil {
		return nil, errors.Join(domain.ErrConfigEvaluation, zerr.With(err, "path", path))
	}

	e.logger.Debug("evaluated " + path + " for " + target)
	return cfg, nil
}

func evalContext(target string) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"target": cty.StringVal(target),
		},
		Functions: map[string]function.Function{
			"concat":   stdlib.ConcatFunc,
			"contains": stdlib.ContainsFunc,
			"format":   stdlib.FormatFunc,
			"join":     stdlib.JoinFunc,
			"lower":    stdlib.LowerFunc,
			"upper":    stdlib.UpperFunc,
		},
	}
}

func evalError(diags hcl.Diagnostics, msg, path string) error {
	return errors.Join(domain.ErrConfigEvaluation, zerr.With(zerr.Wrap(diags, msg), "path", path))
}

// toConfig validates the decoded file and resolves paths against baseDir.
func toConfig(pf *projectFile, baseDir string) (*domain.Config, error) {
	if pf.Build.ApplicationName == "" {
		return nil, zerr.New("build.application_name must not be empty")
	}

	cfg := &domain.Config{
		ApplicationName: pf.Build.ApplicationName,
		Allocator:       domain.AllocatorSystem,
		RunMode:         domain.RunModeREPL,
	}

	if pf.Build.BuildPath != nil {
		cfg.BuildPath = resolvePath(baseDir, *pf.Build.BuildPath)
	}

	if pf.Distribution != nil {
		cfg.DistributionSource = resolvePath(baseDir, pf.Distribution.LocalPath)
	}

	if pf.Embedded != nil {
		if pf.Embedded.RawAllocator != nil {
			alloc := domain.Allocator(*pf.Embedded.RawAllocator)
			if !slices.Contains([]domain.Allocator{domain.AllocatorSystem, domain.AllocatorJemalloc}, alloc) {
				return nil, zerr.With(zerr.New("unknown raw_allocator"), "raw_allocator", alloc)
			}
			cfg.Allocator = alloc
		}
		if pf.Embedded.OptimizeLevel != nil {
			level := *pf.Embedded.OptimizeLevel
			if level < 0 || level > 2 {
				return nil, zerr.With(zerr.New("optimize_level must be 0, 1 or 2"), "optimize_level", strconv.Itoa(level))
			}
			cfg.OptimizeLevel = level
		}
		for _, pkg := range pf.Embedded.PipInstall {
			if strings.TrimSpace(pkg) == "" {
				return nil, zerr.New("pip_install entries must not be empty")
			}
			cfg.PipInstall = append(cfg.PipInstall, pkg)
		}
	}

	if pf.Run != nil {
		if err := applyRun(cfg, pf.Run); err != nil {
			return nil, err
		}
	}

	for _, ib := range pf.Installs {
		dest := filepath.Base(ib.Source)
		if ib.Dest != nil {
			dest = *ib.Dest
		}
		if filepath.IsAbs(dest) || !filepath.IsLocal(dest) {
			return nil, zerr.With(zerr.New("install destination must be relative to the application directory"), "install", ib.Name)
		}
		cfg.Installs = append(cfg.Installs, domain.InstallRule{
			Name:   ib.Name,
			Source: resolvePath(baseDir, ib.Source),
			Dest:   filepath.Clean(dest),
		})
	}

	return cfg, nil
}

func applyRun(cfg *domain.Config, rb *runBlock) error {
	mode := domain.RunMode(rb.Mode)
	switch mode {
	case domain.RunModeREPL, domain.RunModeNoop:
	case domain.RunModeModule:
		if rb.Module == nil || *rb.Module == "" {
			return zerr.New("run mode \"module\" requires module")
		}
		cfg.RunValue = *rb.Module
	case domain.RunModeEval:
		if rb.Code == nil {
			return zerr.New("run mode \"eval\" requires code")
		}
		cfg.RunValue = *rb.Code
	default:
		return zerr.With(zerr.New("unknown run mode"), "mode", rb.Mode)
	}
	cfg.RunMode = mode
	return nil
}

func resolvePath(baseDir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(baseDir, p)
}
