package ports

import "go.trai.ch/pyembed/internal/core/domain"

// ConfigEvaluator evaluates a project configuration file for a target.
//
//go:generate go run go.uber.org/mock/mockgen -source=config.go -destination=mocks/mock_config.go -package=mocks
type ConfigEvaluator interface {
	// Evaluate parses the file at path with target bound as a variable.
	// Relative paths in the result are resolved against the file's directory.
	Evaluate(path, target string) (*domain.Config, error)
}

// ConfigFinder discovers the configuration file of a project.
type ConfigFinder interface {
	// Find returns the configuration path for projectPath, or false when none exists.
	Find(projectPath string) (string, bool)
}
