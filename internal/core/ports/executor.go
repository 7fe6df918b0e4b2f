// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/pyembed/internal/core/domain"
)

// ProcessExecutor runs external processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type ProcessExecutor interface {
	// Run starts cmd and waits for it to exit.
	//
	// A process that starts and exits non-zero is not an error: its exit code is
	// reported in the result. An error is returned only when the process could
	// not be launched or the context was cancelled.
	Run(ctx context.Context, cmd domain.Command) (domain.ProcessResult, error)
}
