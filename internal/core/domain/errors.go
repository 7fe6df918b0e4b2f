package domain

import "go.trai.ch/zerr"

var (
	// ErrNotAProject is returned when the project path contains no pyembed files.
	ErrNotAProject = zerr.New("no pyembed files in specified path")

	// ErrConfigNotFound is returned when no configuration file is given or discoverable.
	ErrConfigNotFound = zerr.New("unable to find pyembed config file")

	// ErrConfigEvaluation is returned when the configuration file cannot be evaluated.
	ErrConfigEvaluation = zerr.New("failed to evaluate config file")

	// ErrUnsupportedPlatform is returned when no default target exists for the host platform.
	ErrUnsupportedPlatform = zerr.New("unable to resolve target for host platform")

	// ErrToolchainVersion is returned when the toolchain is too old or its version is unknown.
	ErrToolchainVersion = zerr.New("unsupported toolchain version")

	// ErrToolchainInvocation is returned when the toolchain process cannot be started.
	ErrToolchainInvocation = zerr.New("failed to launch toolchain")

	// ErrToolchainBuild is returned when the toolchain process exits non-zero.
	ErrToolchainBuild = zerr.New("cargo build failed")

	// ErrArtifactGeneration is returned when embedding artifacts cannot be produced.
	ErrArtifactGeneration = zerr.New("failed to generate artifacts")

	// ErrPackaging is returned when the application tree cannot be assembled.
	ErrPackaging = zerr.New("failed to package application")

	// ErrRunLaunch is returned when the produced executable fails to start or exits non-zero.
	ErrRunLaunch = zerr.New("application run failed")

	// ErrArchiveIO is returned when a distribution archive cannot be read or extracted.
	ErrArchiveIO = zerr.New("failed to process distribution archive")

	// ErrDistributionInvalid is returned when an extracted distribution lacks usable metadata.
	ErrDistributionInvalid = zerr.New("invalid python distribution")

	// ErrProjectInit is returned when a new project cannot be created.
	ErrProjectInit = zerr.New("failed to initialize project")

	// ErrBuildScriptEnv is returned when the build script hook is missing required Cargo variables.
	ErrBuildScriptEnv = zerr.New("missing cargo build script environment")
)
