package config

// projectFile is the decoding target of pyembed.hcl.
type projectFile struct {
	Build        buildBlock         `hcl:"build,block"`
	Distribution *distributionBlock `hcl:"python_distribution,block"`
	Embedded     *embeddedBlock     `hcl:"embedded_python,block"`
	Run          *runBlock          `hcl:"run,block"`
	Installs     []installBlock     `hcl:"install,block"`
}

type buildBlock struct {
	ApplicationName string  `hcl:"application_name"`
	BuildPath       *string `hcl:"build_path,optional"`
}

type distributionBlock struct {
	LocalPath string `hcl:"local_path"`
}

type embeddedBlock struct {
	RawAllocator  *string  `hcl:"raw_allocator,optional"`
	OptimizeLevel *int     `hcl:"optimize_level,optional"`
	PipInstall    []string `hcl:"pip_install,optional"`
}

type runBlock struct {
	Mode   string  `hcl:"mode"`
	Module *string `hcl:"module,optional"`
	Code   *string `hcl:"code,optional"`
}

type installBlock struct {
	Name   string  `hcl:"name,label"`
	Source string  `hcl:"source"`
	Dest   *string `hcl:"dest,optional"`
}
