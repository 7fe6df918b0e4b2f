package domain

import "path/filepath"

// ResolveRequest carries the caller's inputs for build context resolution.
// Empty optional fields are resolved by discovery or defaults.
type ResolveRequest struct {
	ProjectPath   string
	ConfigPath    string
	Target        string
	Release       bool
	ArtifactsPath string
	Verbose       bool
}

// ContextOptions are the mode and path choices applied when creating a BuildContext.
type ContextOptions struct {
	Release          bool
	ArtifactsPath    string
	DistributionPath string
	Verbose          bool
}

// BuildContext is the fully resolved parameter set for one pipeline run.
// It is created once by NewBuildContext and treated as read-only afterwards.
type BuildContext struct {
	ProjectPath string
	ConfigPath  string
	Target      string
	Release     bool
	Verbose     bool

	Config    Config
	AppName   string
	Allocator Allocator

	BuildPath        string
	TargetBasePath   string
	TargetTriplePath string
	ArtifactsPath    string
	ToolchainExePath string
	AppPath          string
	AppExePath       string
	DistributionPath string
}

// NewBuildContext derives every path of a pipeline run from the evaluated config.
// The artifacts path is the explicit override when given, otherwise
// <build>/target/<triple>/<profile>/pyembed.
func NewBuildContext(projectPath, configPath, target string, cfg Config, opts ContextOptions) *BuildContext {
	buildPath := cfg.ResolvedBuildPath(projectPath)
	profile := ProfileDirName(opts.Release)
	targetBase := filepath.Join(buildPath, TargetDirName)
	tripleBase := filepath.Join(targetBase, target, profile)
	exeName := ExecutableName(cfg.ApplicationName, target)
	appPath := filepath.Join(buildPath, AppsDirName, cfg.ApplicationName, target, profile)

	var artifacts string
	if opts.ArtifactsPath != "" {
		artifacts = opts.ArtifactsPath
	} else {
		artifacts = filepath.Join(tripleBase, ArtifactsDirName)
	}

	allocator := cfg.Allocator
	if allocator == "" {
		allocator = AllocatorSystem
	}

	return &BuildContext{
		ProjectPath:      projectPath,
		ConfigPath:       configPath,
		Target:           target,
		Release:          opts.Release,
		Verbose:          opts.Verbose,
		Config:           cfg,
		AppName:          cfg.ApplicationName,
		Allocator:        allocator,
		BuildPath:        buildPath,
		TargetBasePath:   targetBase,
		TargetTriplePath: tripleBase,
		ArtifactsPath:    artifacts,
		ToolchainExePath: filepath.Join(tripleBase, exeName),
		AppPath:          appPath,
		AppExePath:       filepath.Join(appPath, exeName),
		DistributionPath: opts.DistributionPath,
	}
}

// ResolvedBuildPath returns the configured build path, defaulting to <project>/build.
func (c Config) ResolvedBuildPath(projectPath string) string {
	if c.BuildPath != "" {
		return c.BuildPath
	}
	return filepath.Join(projectPath, DefaultBuildDirName)
}

// ManifestPath returns the location of the dependency manifest for this run.
func (bc *BuildContext) ManifestPath() string {
	return filepath.Join(bc.ArtifactsPath, ManifestFileName)
}
