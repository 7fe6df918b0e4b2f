package app

import "go.trai.ch/pyembed/internal/core/ports"

// Components holds what the CLI entry point needs after wiring.
type Components struct {
	App    *App
	Logger ports.Logger
}
