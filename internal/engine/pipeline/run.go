package pipeline

import (
	"context"
	"errors"

	"go.trai.ch/pyembed/internal/core/domain"
	"go.trai.ch/pyembed/internal/core/ports"
	"go.trai.ch/zerr"
)

// RunStage launches the packaged executable.
type RunStage struct {
	executor ports.ProcessExecutor
}

// NewRunStage creates a RunStage.
func NewRunStage(executor ports.ProcessExecutor) *RunStage {
	return &RunStage{executor: executor}
}

// Run starts bc.AppExePath with args from the project root and waits for it to exit.
func (s *RunStage) Run(ctx context.Context, bc *domain.BuildContext, args []string) error {
	res, err := s.executor.Run(ctx, domain.Command{
		Name: bc.AppExePath,
		Args: args,
		Dir:  bc.ProjectPath,
	})
	if err != nil {
		return errors.Join(domain.ErrRunLaunch,
			zerr.With(zerr.Wrap(err, "failed to launch application"), "path", bc.AppExePath))
	}

	if !res.Success() {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrRunLaunch, "application exited with failure"),
			"exit_code", res.ExitCode), "path", bc.AppExePath)
	}

	return nil
}
