package pipeline

import (
	"context"
	"errors"
	"runtime"
	"strings"

	"go.trai.ch/pyembed/internal/core/domain"
	"go.trai.ch/pyembed/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/mod/semver"
)

// ToolchainStage compiles the application with the native toolchain.
type ToolchainStage struct {
	executor ports.ProcessExecutor
	locator  ports.RuntimeLocator
	logger   ports.Logger
	hostOS   string
}

// NewToolchainStage creates a ToolchainStage for the current host.
func NewToolchainStage(executor ports.ProcessExecutor, locator ports.RuntimeLocator, logger ports.Logger) *ToolchainStage {
	return &ToolchainStage{
		executor: executor,
		locator:  locator,
		logger:   logger,
		hostOS:   runtime.GOOS,
	}
}

// Invoke checks the compiler version and runs the toolchain build for bc.
func (s *ToolchainStage) Invoke(ctx context.Context, bc *domain.BuildContext) error {
	if err := s.checkVersion(ctx); err != nil {
		return err
	}

	var runtimeExe string
	if bc.DistributionPath != "" {
		exe, err := s.locator.InterpreterPath(bc.DistributionPath)
		if err != nil {
			return errors.Join(domain.ErrDistributionInvalid,
				zerr.With(zerr.Wrap(err, "failed to locate interpreter"), "path", bc.DistributionPath))
		}
		runtimeExe = exe
	}

	cmd := domain.ToolchainCommand(bc, runtimeExe, s.hostOS)
	s.logger.Info("building " + bc.AppName + " for " + bc.Target)

	res, err := s.executor.Run(ctx, cmd)
	if err != nil {
		return errors.Join(domain.ErrToolchainInvocation,
			zerr.With(zerr.Wrap(err, "failed to launch toolchain"), "command", cmd.Name))
	}

	if !res.Success() {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrToolchainBuild, ""), "exit_code", res.ExitCode), "target", bc.Target)
	}

	return nil
}

func (s *ToolchainStage) checkVersion(ctx context.Context) error {
	res, err := s.executor.Run(ctx, domain.Command{
		Name:    domain.ToolchainCompiler,
		Args:    []string{"--version"},
		Capture: true,
	})
	if err != nil {
		return errors.Join(domain.ErrToolchainVersion,
			zerr.With(zerr.Wrap(err, "unable to determine toolchain version"), "command", domain.ToolchainCompiler))
	}
	if !res.Success() {
		return zerr.With(zerr.Wrap(domain.ErrToolchainVersion, "unable to determine toolchain version"), "exit_code", res.ExitCode)
	}

	version, ok := domain.ParseToolchainVersion(string(res.Stdout))
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrToolchainVersion, "unrecognized toolchain version"),
			"output", strings.TrimSpace(string(res.Stdout)))
	}

	if semver.Compare("v"+version, "v"+domain.MinimumToolchainVersion) < 0 {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrToolchainVersion, "toolchain too old"),
			"version", version), "minimum", domain.MinimumToolchainVersion)
	}

	s.logger.Debug("using " + domain.ToolchainCompiler + " " + version)
	return nil
}
