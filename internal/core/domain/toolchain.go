package domain

import (
	"regexp"
	"strings"
)

const (
	// ToolchainDriver is the build driver invoked for the toolchain stage.
	ToolchainDriver = "cargo"

	// ToolchainCompiler is the compiler queried for its version.
	ToolchainCompiler = "rustc"

	// MinimumToolchainVersion is the oldest compiler able to build embedding crates.
	MinimumToolchainVersion = "1.36.0"

	// JemallocFeature is the crate feature enabled for the jemalloc allocator.
	JemallocFeature = "jemalloc"

	// DefaultArtifactSelector is the native optimization level passed to artifact
	// generation when the pipeline regenerates artifacts.
	DefaultArtifactSelector = "0"
)

// Command describes a subprocess invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	// Env holds variables layered over the inherited process environment.
	Env map[string]string
	// Capture buffers stdout and stderr instead of streaming them.
	Capture bool
}

// ProcessResult is the outcome of a subprocess that was started.
type ProcessResult struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Success reports whether the process exited with status zero.
func (r ProcessResult) Success() bool {
	return r.ExitCode == 0
}

// ToolchainCommand builds the cargo invocation for a build context.
// runtimeExe is the embedded interpreter used for crate configuration; it is
// omitted from the environment when empty. hostOS is the GOOS of the build machine.
func ToolchainCommand(bc *BuildContext, runtimeExe, hostOS string) Command {
	args := []string{
		"build",
		"--target", bc.Target,
		"--target-dir", bc.TargetBasePath,
		"--bin", bc.AppName,
	}

	if bc.Release {
		args = append(args, "--release")
	}

	if bc.Allocator == AllocatorJemalloc {
		args = append(args, "--features", JemallocFeature)
	}

	env := map[string]string{
		EnvArtifactDir:    bc.ArtifactsPath,
		EnvReuseArtifacts: "1",
	}

	if runtimeExe != "" {
		env[EnvPythonExecutable] = runtimeExe
	}

	// static-nobundle linking of the interpreter is gated behind an unstable flag on Windows.
	if hostOS == "windows" {
		env[EnvRustcBootstrap] = "1"
	}

	return Command{
		Name: ToolchainDriver,
		Args: args,
		Dir:  bc.ProjectPath,
		Env:  env,
	}
}

var toolchainVersionRe = regexp.MustCompile(`^rustc (\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?)`)

// ParseToolchainVersion extracts the semantic version from `rustc --version` output.
// It returns false when the output is not recognized.
func ParseToolchainVersion(output string) (string, bool) {
	m := toolchainVersionRe.FindStringSubmatch(strings.TrimSpace(output))
	if m == nil {
		return "", false
	}
	return m[1], true
}
