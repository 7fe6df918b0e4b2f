// Package shell provides the process executor adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/pyembed/internal/core/domain"
	"go.trai.ch/pyembed/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ProcessExecutor = (*Executor)(nil)

// Executor implements ports.ProcessExecutor using os/exec.
type Executor struct {
	logger ports.Logger

	mu     sync.RWMutex
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewExecutor creates an Executor attached to the standard streams of this process.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// SetStreams replaces the streams inherited by non-capturing commands.
func (e *Executor) SetStreams(stdin io.Reader, stdout, stderr io.Writer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stdin = stdin
	e.stdout = stdout
	e.stderr = stderr
}

// Run executes the command. The environment is the process environment
// overlaid with cmd.Env. Streamed output is also copied to the vertex attached
// to ctx, if any.
func (e *Executor) Run(ctx context.Context, cmd domain.Command) (domain.ProcessResult, error) {
	env := resolveEnvironment(os.Environ(), cmd.Env)

	// Resolve the executable against the new environment's PATH.
	executable := cmd.Name
	if !strings.ContainsRune(cmd.Name, filepath.Separator) {
		if lp, err := lookPath(cmd.Name, env); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, cmd.Args...) //nolint:gosec // Commands are built from the build context

	// exec.CommandContext sets Args[0] to the executable path; keep the name as invoked.
	if len(c.Args) > 0 {
		c.Args[0] = cmd.Name
	}
	c.Dir = cmd.Dir
	c.Env = env

	var stdoutBuf, stderrBuf bytes.Buffer
	if cmd.Capture {
		c.Stdout = &stdoutBuf
		c.Stderr = &stderrBuf
	} else {
		e.mu.RLock()
		c.Stdin = e.stdin
		c.Stdout = e.stdout
		c.Stderr = e.stderr
		e.mu.RUnlock()

		if v, ok := ports.VertexFromContext(ctx); ok {
			c.Stdout = io.MultiWriter(c.Stdout, v.Stdout())
			c.Stderr = io.MultiWriter(c.Stderr, v.Stderr())
		}
	}

	e.logger.Debug("running " + strings.Join(append([]string{cmd.Name}, cmd.Args...), " "))

	err := c.Run()
	result := domain.ProcessResult{
		ExitCode: c.ProcessState.ExitCode(),
		Stdout:   stdoutBuf.Bytes(),
		Stderr:   stderrBuf.Bytes(),
	}

	if err == nil {
		return result, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, zerr.With(zerr.Wrap(ctxErr, "command interrupted"), "command", cmd.Name)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	result.ExitCode = -1
	return result, zerr.With(zerr.Wrap(err, "failed to start command"), "command", cmd.Name)
}

// resolveEnvironment overlays overrides on the system environment.
// The result is sorted so identical inputs yield identical environments.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}

	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if p, ok := strings.CutPrefix(e, "PATH="); ok {
			path = p
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
