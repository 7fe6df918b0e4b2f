// Package generator writes the embedding artifacts consumed by the toolchain build.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/pyembed/internal/core/domain"
	"go.trai.ch/pyembed/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactGenerator = (*Generator)(nil)

// EnvEmbeddedConfig is exported to the toolchain build and names the embedded config document.
const EnvEmbeddedConfig = "PYEMBED_EMBEDDED_CONFIG"

// SitePackagesDirName is the artifacts subdirectory pip installs packages into.
const SitePackagesDirName = "site-packages"

// validOptLevels are the native optimization levels accepted by the toolchain.
var validOptLevels = map[string]bool{"0": true, "1": true, "2": true, "3": true, "s": true, "z": true}

// embeddedConfig is the document the generated application reads on start.
type embeddedConfig struct {
	ApplicationName  string           `json:"application_name"`
	Target           string           `json:"target"`
	Release          bool             `json:"release"`
	RawAllocator     domain.Allocator `json:"raw_allocator"`
	OptimizeLevel    int              `json:"optimize_level"`
	NativeOptLevel   string           `json:"native_opt_level"`
	RunMode          domain.RunMode   `json:"run_mode"`
	RunValue         string           `json:"run_value,omitempty"`
	PythonVersion    string           `json:"python_version,omitempty"`
	ExtensionModules []string         `json:"extension_modules,omitempty"`
	PyModules        []string         `json:"py_modules,omitempty"`
	SitePackages     string           `json:"site_packages,omitempty"`
}

// Generator implements ports.ArtifactGenerator.
type Generator struct {
	analyzer ports.DistributionAnalyzer
	locator  ports.RuntimeLocator
	executor ports.ProcessExecutor
	logger   ports.Logger
}

// New creates a Generator that reads distribution metadata through analyzer
// and installs pip packages with the distribution's interpreter.
func New(
	analyzer ports.DistributionAnalyzer,
	locator ports.RuntimeLocator,
	executor ports.ProcessExecutor,
	logger ports.Logger,
) *Generator {
	return &Generator{analyzer: analyzer, locator: locator, executor: executor, logger: logger}
}

// Generate writes the embedded config and then the dependency manifest.
// The manifest is written last so an interrupted run leaves the artifacts stale.
func (g *Generator) Generate(ctx context.Context, bc *domain.BuildContext, selector string) error {
	if !validOptLevels[selector] {
		return zerr.With(zerr.Wrap(domain.ErrArtifactGeneration, "invalid native optimization level"), "selector", selector)
	}

	if err := os.MkdirAll(bc.ArtifactsPath, domain.DirPerm); err != nil {
		return errors.Join(domain.ErrArtifactGeneration, zerr.With(zerr.Wrap(err, "failed to create artifacts directory"), "path", bc.ArtifactsPath))
	}

	// Drop the previous manifest first; a failure below must not leave it looking current.
	if err := os.Remove(bc.ManifestPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Join(domain.ErrArtifactGeneration, zerr.With(zerr.Wrap(err, "failed to remove stale manifest"), "path", bc.ManifestPath()))
	}

	var info *domain.DistributionInfo
	if bc.DistributionPath != "" {
		var err error
		info, err = g.analyzer.Inspect(bc.DistributionPath)
		if err != nil {
			return errors.Join(domain.ErrArtifactGeneration, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return errors.Join(domain.ErrArtifactGeneration, err)
	}

	embedded := buildEmbeddedConfig(bc, selector, info)
	if len(bc.Config.PipInstall) > 0 {
		sitePackages, err := g.pipInstall(ctx, bc)
		if err != nil {
			return err
		}
		embedded.SitePackages = sitePackages
	}

	configPath := filepath.Join(bc.ArtifactsPath, domain.EmbeddedConfigFileName)
	if err := writeJSON(configPath, embedded); err != nil {
		return errors.Join(domain.ErrArtifactGeneration, err)
	}

	manifest := buildManifest(bc, configPath, info)
	if err := writeAtomic(bc.ManifestPath(), []byte(manifest.Render())); err != nil {
		return errors.Join(domain.ErrArtifactGeneration, err)
	}

	g.logger.Debug("wrote artifacts to " + bc.ArtifactsPath)
	return nil
}

// pipInstall installs the configured packages into the artifacts directory
// using the interpreter of the resolved distribution.
func (g *Generator) pipInstall(ctx context.Context, bc *domain.BuildContext) (string, error) {
	if bc.DistributionPath == "" {
		return "", zerr.Wrap(domain.ErrArtifactGeneration, "pip_install requires a python distribution")
	}

	python, err := g.locator.InterpreterPath(bc.DistributionPath)
	if err != nil {
		return "", errors.Join(domain.ErrArtifactGeneration, err)
	}

	dest := filepath.Join(bc.ArtifactsPath, SitePackagesDirName)
	if err := os.RemoveAll(dest); err != nil {
		return "", errors.Join(domain.ErrArtifactGeneration, zerr.With(zerr.Wrap(err, "failed to clear site-packages"), "path", dest))
	}

	args := append([]string{"-m", "pip", "install", "--disable-pip-version-check", "--target", dest}, bc.Config.PipInstall...)
	g.logger.Info("pip installing " + strings.Join(bc.Config.PipInstall, " "))

	res, err := g.executor.Run(ctx, domain.Command{Name: python, Args: args, Dir: bc.ProjectPath, Capture: true})
	if err != nil {
		return "", errors.Join(domain.ErrArtifactGeneration, zerr.Wrap(err, "failed to launch pip"))
	}
	if !res.Success() {
		err := zerr.With(zerr.Wrap(domain.ErrArtifactGeneration, "pip install failed"), "exit_code", res.ExitCode)
		if msg := strings.TrimSpace(string(res.Stderr)); msg != "" {
			err = zerr.With(err, "stderr", msg)
		}
		return "", err
	}

	return dest, nil
}

func buildEmbeddedConfig(bc *domain.BuildContext, selector string, info *domain.DistributionInfo) embeddedConfig {
	cfg := embeddedConfig{
		ApplicationName: bc.AppName,
		Target:          bc.Target,
		Release:         bc.Release,
		RawAllocator:    bc.Allocator,
		OptimizeLevel:   bc.Config.OptimizeLevel,
		NativeOptLevel:  selector,
		RunMode:         bc.Config.RunMode,
		RunValue:        bc.Config.RunValue,
	}
	if cfg.RunMode == "" {
		cfg.RunMode = domain.RunModeREPL
	}

	if info != nil {
		cfg.PythonVersion = info.Version
		cfg.PyModules = info.PyModules
		for _, em := range info.ExtensionModules {
			if _, ok := builtinVariant(em); ok {
				cfg.ExtensionModules = append(cfg.ExtensionModules, em.Name)
			}
		}
	}

	return cfg
}

// buildManifest lists every input the artifacts were derived from, followed by
// link directives for the extension modules compiled into the interpreter.
func buildManifest(bc *domain.BuildContext, configPath string, info *domain.DistributionInfo) domain.Manifest {
	var m domain.Manifest

	if bc.ConfigPath != "" {
		m.Add(domain.DirectiveRerunIfChanged, bc.ConfigPath)
	}
	if bc.Config.DistributionSource != "" {
		m.Add(domain.DirectiveRerunIfChanged, bc.Config.DistributionSource)
	}
	if bc.DistributionPath != "" && bc.DistributionPath != bc.Config.DistributionSource {
		m.Add(domain.DirectiveRerunIfChanged, filepath.Join(bc.DistributionPath, domain.DistributionRootDir, domain.DistributionMetadataFile))
	}
	for _, rule := range bc.Config.Installs {
		for _, src := range installInputs(rule.Source) {
			m.Add(domain.DirectiveRerunIfChanged, src)
		}
	}

	m.Add(domain.DirectiveRerunIfEnvChanged, domain.EnvConfigPath)
	m.Add(domain.DirectiveRustcEnv, EnvEmbeddedConfig+"="+configPath)

	if info == nil {
		return m
	}

	seen := make(map[string]bool)
	for _, em := range info.ExtensionModules {
		v, ok := builtinVariant(em)
		if !ok {
			continue
		}
		for _, l := range v.Links {
			lib := linkLib(l)
			if seen[lib] {
				continue
			}
			seen[lib] = true
			m.Add(domain.DirectiveRustcLinkLib, lib)
		}
	}

	return m
}

// installInputs expands glob sources so every tracked path can be stat'ed.
func installInputs(source string) []string {
	if !strings.ContainsAny(source, "*?[") {
		return []string{source}
	}
	matches, _ := filepath.Glob(source)
	return matches
}

// builtinVariant returns the variant compiled into the interpreter by default.
// Required modules without a marked default use their first variant.
func builtinVariant(em domain.ExtensionModule) (domain.ExtensionVariant, bool) {
	for _, v := range em.Variants {
		if v.BuiltinDefault {
			return v, true
		}
	}
	for _, v := range em.Variants {
		if v.Required {
			return v, true
		}
	}
	return domain.ExtensionVariant{}, false
}

func linkLib(l domain.ExtensionLink) string {
	switch {
	case l.Framework:
		return "framework=" + l.Name
	case l.System:
		return "dylib=" + l.Name
	default:
		return "static=" + l.Name
	}
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal embedded config")
	}
	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write artifact"), "path", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, "failed to move artifact into place"), "path", path)
	}
	return nil
}
