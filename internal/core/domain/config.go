package domain

// Allocator selects the raw memory allocator of the embedded interpreter.
type Allocator string

const (
	// AllocatorSystem uses the platform allocator. It is the default.
	AllocatorSystem Allocator = "system"
	// AllocatorJemalloc links jemalloc and enables the toolchain feature of the same name.
	AllocatorJemalloc Allocator = "jemalloc"
)

// RunMode selects what the produced executable does on start.
type RunMode string

const (
	// RunModeREPL starts an interactive interpreter.
	RunModeREPL RunMode = "repl"
	// RunModeModule runs a named module as __main__.
	RunModeModule RunMode = "module"
	// RunModeEval evaluates a code string.
	RunModeEval RunMode = "eval"
	// RunModeNoop initializes the interpreter and exits.
	RunModeNoop RunMode = "noop"
)

// InstallRule copies a project file into the packaged application tree.
type InstallRule struct {
	Name   string `json:"name"   yaml:"name"`
	Source string `json:"source" yaml:"source"`
	Dest   string `json:"dest"   yaml:"dest"`
}

// Config is the evaluated project configuration for one target.
// Paths are absolute.
type Config struct {
	ApplicationName    string        `json:"application_name" yaml:"application_name"`
	BuildPath          string        `json:"build_path"       yaml:"build_path"`
	DistributionSource string        `json:"distribution"     yaml:"distribution"`
	Allocator          Allocator     `json:"raw_allocator"    yaml:"raw_allocator"`
	OptimizeLevel      int           `json:"optimize_level"   yaml:"optimize_level"`
	RunMode            RunMode       `json:"run_mode"         yaml:"run_mode"`
	RunValue           string        `json:"run_value"        yaml:"run_value,omitempty"`
	PipInstall         []string      `json:"pip_install"      yaml:"pip_install,omitempty"`
	Installs           []InstallRule `json:"installs"         yaml:"installs,omitempty"`
}
