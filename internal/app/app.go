// Package app implements the application layer for pyembed.
package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"go.trai.ch/pyembed/internal/adapters/report"
	"go.trai.ch/pyembed/internal/core/domain"
	"go.trai.ch/pyembed/internal/core/ports"
	"go.trai.ch/pyembed/internal/engine/pipeline"
	"go.trai.ch/pyembed/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// Cargo sets these for build scripts.
const (
	envCargoManifestDir = "CARGO_MANIFEST_DIR"
	envCargoTarget      = "TARGET"
	envCargoProfile     = "PROFILE"
	envCargoOutDir      = "OUT_DIR"
)

// BuildOptions are the command-line inputs shared by build, run and build-artifacts.
type BuildOptions struct {
	ProjectPath string
	ConfigPath  string
	Target      string
	Release     bool
	Verbose     bool
}

// InitOptions are the inputs of a new project.
type InitOptions struct {
	Path       string
	Code       string
	PipInstall []string
}

// App represents the main application logic.
type App struct {
	resolver  *resolver.Resolver
	sequencer *pipeline.Sequencer
	artifacts *pipeline.ArtifactStage
	analyzer  ports.DistributionAnalyzer
	extractor ports.ArchiveExtractor
	executor  ports.ProcessExecutor
	logger    ports.Logger
	stdout    io.Writer
	getenv    func(string) string
}

// New creates a new App instance.
func New(
	res *resolver.Resolver,
	seq *pipeline.Sequencer,
	artifacts *pipeline.ArtifactStage,
	analyzer ports.DistributionAnalyzer,
	extractor ports.ArchiveExtractor,
	executor ports.ProcessExecutor,
	logger ports.Logger,
) *App {
	return &App{
		resolver:  res,
		sequencer: seq,
		artifacts: artifacts,
		analyzer:  analyzer,
		extractor: extractor,
		executor:  executor,
		logger:    logger,
		stdout:    os.Stdout,
		getenv:    os.Getenv,
	}
}

// WithOutput sets the writer reports and build script directives are printed to.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithEnv sets the environment lookup used by the build script hook.
func (a *App) WithEnv(getenv func(string) string) *App {
	a.getenv = getenv
	return a
}

// Build produces the packaged application for a project.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	bc, err := a.resolve(ctx, opts, "")
	if err != nil {
		return err
	}

	if _, err := a.sequencer.Build(ctx, bc); err != nil {
		return err
	}

	a.logger.Info("executable path: " + bc.AppExePath)
	return nil
}

// Run builds the application and executes it with args.
func (a *App) Run(ctx context.Context, opts BuildOptions, args []string) error {
	bc, err := a.resolve(ctx, opts, "")
	if err != nil {
		return err
	}

	_, err = a.sequencer.BuildAndRun(ctx, bc, args)
	return err
}

// BuildArtifacts generates the embedding artifacts into dest without building the application.
func (a *App) BuildArtifacts(ctx context.Context, opts BuildOptions, dest string) error {
	if dest == "" {
		return zerr.Wrap(domain.ErrArtifactGeneration, "artifacts destination must not be empty")
	}

	bc, err := a.resolve(ctx, opts, dest)
	if err != nil {
		return err
	}

	out, err := a.sequencer.BuildArtifactsOnly(ctx, bc)
	if err != nil {
		return err
	}

	if out.Regenerated {
		a.logger.Info("wrote artifacts to " + bc.ArtifactsPath)
	} else {
		a.logger.Info("artifacts in " + bc.ArtifactsPath + " are up to date")
	}
	return nil
}

func (a *App) resolve(ctx context.Context, opts BuildOptions, artifacts string) (*domain.BuildContext, error) {
	return a.resolver.Resolve(ctx, domain.ResolveRequest{
		ProjectPath:   opts.ProjectPath,
		ConfigPath:    opts.ConfigPath,
		Target:        opts.Target,
		Release:       opts.Release,
		ArtifactsPath: artifacts,
		Verbose:       opts.Verbose,
	})
}

// Init creates a new application with cargo and writes the pyembed project files into it.
func (a *App) Init(ctx context.Context, opts InitOptions) error {
	if opts.Path == "" {
		return zerr.Wrap(domain.ErrProjectInit, "project path must not be empty")
	}

	path, err := filepath.Abs(opts.Path)
	if err != nil {
		return errors.Join(domain.ErrProjectInit, zerr.With(zerr.Wrap(err, "failed to resolve project path"), "path", opts.Path))
	}

	if _, err := os.Stat(path); err == nil {
		return zerr.With(zerr.Wrap(domain.ErrProjectInit, "destination path already exists"), "path", path)
	}

	res, err := a.executor.Run(ctx, domain.Command{
		Name: domain.ToolchainDriver,
		Args: []string{"init", "--bin", path},
	})
	if err != nil {
		return errors.Join(domain.ErrProjectInit, zerr.Wrap(err, "failed to launch cargo"))
	}
	if !res.Success() {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrProjectInit, "cargo init failed"), "exit_code", res.ExitCode), "path", path)
	}

	data := projectTemplate{
		Name:       filepath.Base(path),
		Code:       opts.Code,
		PipInstall: opts.PipInstall,
	}

	files := []struct {
		path string
		tmpl *template.Template
	}{
		{filepath.Join(path, domain.ConfigFileName), configTemplate},
		{filepath.Join(path, "build.rs"), buildScriptTemplate},
		{filepath.Join(path, "src", "main.rs"), mainTemplate},
	}

	for _, f := range files {
		if err := renderFile(f.path, f.tmpl, data); err != nil {
			return errors.Join(domain.ErrProjectInit, err)
		}
	}

	if err := appendFile(filepath.Join(path, "Cargo.toml"), cargoFeatures); err != nil {
		return errors.Join(domain.ErrProjectInit, err)
	}

	a.printInitHelp(path)
	return nil
}

func (a *App) printInitHelp(path string) {
	_, _ = fmt.Fprintf(a.stdout, `
A new Rust binary application has been created in %[1]s

This application can be built by doing the following:

  $ cd %[1]s
  $ pyembed build
  $ pyembed run

The default configuration is to invoke a Python REPL. You can
edit %[2]s or src/main.rs to change behavior. The application
will need to be rebuilt for configuration changes to take effect.
`, path, domain.ConfigFileName)
}

func renderFile(path string, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to render template"), "path", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", filepath.Dir(path))
	}
	if err := os.WriteFile(path, buf.Bytes(), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write file"), "path", path)
	}
	return nil
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, domain.FilePerm)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return zerr.With(zerr.Wrap(err, "failed to append to file"), "path", path)
	}
	if err := f.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close file"), "path", path)
	}
	return nil
}

// ExtractDistribution unpacks a python distribution archive into dest.
func (a *App) ExtractDistribution(ctx context.Context, archive, dest string) error {
	f, err := openArchive(archive)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	_, _ = fmt.Fprintf(a.stdout, "extracting archive to %s\n", dest)
	return a.extractor.Extract(ctx, f, dest)
}

// DistributionInfo prints the metadata, extension modules and stdlib contents of a distribution.
func (a *App) DistributionInfo(ctx context.Context, archive string, format report.Format) error {
	info, err := a.analyze(ctx, archive)
	if err != nil {
		return err
	}
	return report.NewPrinter(a.stdout, format).Info(info)
}

// DistributionLicenses prints the licensing of a distribution and its linked libraries.
func (a *App) DistributionLicenses(ctx context.Context, archive string, format report.Format) error {
	info, err := a.analyze(ctx, archive)
	if err != nil {
		return err
	}
	return report.NewPrinter(a.stdout, format).Licenses(info)
}

// analyze extracts the archive into a scratch directory that is removed afterwards.
func (a *App) analyze(ctx context.Context, archive string) (*domain.DistributionInfo, error) {
	f, err := openArchive(archive)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	tmp, err := os.MkdirTemp("", "pyembed-distribution-")
	if err != nil {
		return nil, errors.Join(domain.ErrArchiveIO, zerr.Wrap(err, "failed to create temporary directory"))
	}
	defer func() { _ = os.RemoveAll(tmp) }()

	return a.analyzer.Analyze(ctx, f, tmp)
}

func openArchive(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(domain.ErrArchiveIO, zerr.With(zerr.Wrap(err, "failed to open archive"), "path", path))
	}
	return f, nil
}

// RunBuildScript is the hook executed by a project's Cargo build script.
// When the pipeline already generated current artifacts, their manifest is
// replayed as is. Otherwise artifacts are generated into Cargo's OUT_DIR.
func (a *App) RunBuildScript(ctx context.Context, script string) error {
	manifest, err := a.buildScriptManifest(ctx)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(manifest)
	if err != nil {
		return errors.Join(domain.ErrArtifactGeneration, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", manifest))
	}

	if _, err := a.stdout.Write(data); err != nil {
		return zerr.Wrap(err, "failed to write manifest")
	}
	_, err = fmt.Fprintln(a.stdout, domain.Directive{Kind: domain.DirectiveRerunIfChanged, Value: script}.String())
	return err
}

func (a *App) buildScriptManifest(ctx context.Context) (string, error) {
	if a.getenv(domain.EnvReuseArtifacts) == "1" {
		if dir := a.getenv(domain.EnvArtifactDir); dir != "" {
			path := filepath.Join(dir, domain.ManifestFileName)
			if _, err := os.Stat(path); err == nil {
				a.logger.Debug("reusing artifacts from " + dir)
				return path, nil
			}
		}
	}

	env := make(map[string]string)
	for _, key := range []string{envCargoManifestDir, envCargoTarget, envCargoProfile, envCargoOutDir} {
		v := a.getenv(key)
		if v == "" {
			return "", zerr.With(zerr.Wrap(domain.ErrBuildScriptEnv, ""), "var", key)
		}
		env[key] = v
	}

	bc, err := a.resolver.Resolve(ctx, domain.ResolveRequest{
		ProjectPath:   env[envCargoManifestDir],
		Target:        env[envCargoTarget],
		Release:       env[envCargoProfile] == "release",
		ArtifactsPath: env[envCargoOutDir],
	})
	if err != nil {
		return "", err
	}

	if _, err := a.artifacts.Ensure(ctx, bc); err != nil {
		return "", err
	}

	return bc.ManifestPath(), nil
}

// ConfigureLogging applies the global logging flags when the logger supports them.
func (a *App) ConfigureLogging(verbose, json bool) {
	if l, ok := a.logger.(interface{ SetVerbose(bool) }); ok {
		l.SetVerbose(verbose)
	}
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(json)
	}
}
