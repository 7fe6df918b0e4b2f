package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"go.trai.ch/pyembed/internal/core/domain"
	"go.trai.ch/pyembed/internal/core/ports"
)

var _ ports.ConfigFinder = (*Finder)(nil)

// userConfigRelPath is the user-level config location under XDG_CONFIG_HOME.
var userConfigRelPath = filepath.Join("pyembed", domain.ConfigFileName)

// Finder implements ports.ConfigFinder.
//
// Lookup order: the PYEMBED_CONFIG environment variable, then pyembed.hcl in
// the project directory or any parent, then the user config directory.
type Finder struct {
	logger    ports.Logger
	lookupEnv func(string) (string, bool)
}

// NewFinder creates a Finder reading the process environment.
func NewFinder(logger ports.Logger) *Finder {
	return &Finder{
		logger:    logger,
		lookupEnv: os.LookupEnv,
	}
}

// Find returns the configuration file for projectPath.
func (f *Finder) Find(projectPath string) (string, bool) {
	if p, ok := f.lookupEnv(domain.EnvConfigPath); ok && p != "" {
		if fileExists(p) {
			return p, true
		}
		f.logger.Warn(domain.EnvConfigPath + " points to missing file " + p)
	}

	currentDir := projectPath
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if fileExists(candidate) {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	if p, err := xdg.SearchConfigFile(userConfigRelPath); err == nil {
		return p, true
	}

	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
