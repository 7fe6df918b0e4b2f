// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pyembed/internal/adapters/archive"
	_ "go.trai.ch/pyembed/internal/adapters/config"
	_ "go.trai.ch/pyembed/internal/adapters/distribution"
	_ "go.trai.ch/pyembed/internal/adapters/fs"
	_ "go.trai.ch/pyembed/internal/adapters/generator"
	_ "go.trai.ch/pyembed/internal/adapters/logger"
	_ "go.trai.ch/pyembed/internal/adapters/packager"
	_ "go.trai.ch/pyembed/internal/adapters/shell"
	_ "go.trai.ch/pyembed/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/pyembed/internal/app"
	_ "go.trai.ch/pyembed/internal/engine/pipeline"
	_ "go.trai.ch/pyembed/internal/engine/resolver"
	_ "go.trai.ch/pyembed/internal/engine/staleness"
)
