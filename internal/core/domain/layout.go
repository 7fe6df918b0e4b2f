package domain

import "strings"

const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "pyembed.hcl"

	// ProjectFilePrefix marks files that identify a pyembed project.
	ProjectFilePrefix = "pyembed"

	// ManifestFileName is the dependency manifest written by artifact generation.
	ManifestFileName = "cargo_metadata.txt"

	// EmbeddedConfigFileName is the evaluated config snapshot consumed by the embedding crate.
	EmbeddedConfigFileName = "embedded_config.json"

	// ArtifactsDirName is the artifacts directory under the target triple base path.
	ArtifactsDirName = "pyembed"

	// DefaultBuildDirName is the build directory used when the config leaves it unset.
	DefaultBuildDirName = "build"

	// TargetDirName is the toolchain output directory under the build path.
	TargetDirName = "target"

	// AppsDirName is the packaged applications directory under the build path.
	AppsDirName = "apps"

	// DistributionsDirName holds extracted Python distributions under the build path.
	DistributionsDirName = "python_distributions"

	// InstallStateFileName records packaged file digests inside an application tree.
	InstallStateFileName = ".pyembed-install.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// ExecPerm is the default permission for executables (rwxr-xr-x).
	ExecPerm = 0o755
)

// Environment variables exchanged with the toolchain and the build script hook.
const (
	EnvArtifactDir      = "PYEMBED_ARTIFACT_DIR"
	EnvReuseArtifacts   = "PYEMBED_REUSE_ARTIFACTS"
	EnvConfigPath       = "PYEMBED_CONFIG"
	EnvPythonExecutable = "PYTHON_SYS_EXECUTABLE"
	EnvRustcBootstrap   = "RUSTC_BOOTSTRAP"
)

// IsProjectFile reports whether a file name marks a pyembed project.
func IsProjectFile(name string) bool {
	return strings.HasPrefix(name, ProjectFilePrefix)
}
