// Package runner executes the configured analysis tool and maps its
// outcome onto the wrapper's exit codes.
package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/devgrove/lintrun/internal/config"
	"github.com/devgrove/lintrun/internal/venv"
	"github.com/devgrove/lintrun/pkg/exitcode"
)

// Result is the outcome of one lint run.
type Result struct {
	// Code is the exit status the wrapper should terminate with.
	Code int

	// Tool holds the tool's output when the tool actually ran.
	Tool *ToolOutput
}

// Passed reports whether the analysis found nothing.
func (r *Result) Passed() bool {
	return r.Code == exitcode.Success
}

// Runner wires config, virtualenv activation, and subprocess
// execution into a single blocking lint pass.
//
// Runner is stateless across runs; each Run spawns one subprocess and
// waits for it synchronously.
type Runner struct {
	cfg      *config.Config
	executor *SubprocessExecutor
}

// New creates a runner for cfg.
func New(cfg *config.Config) *Runner {
	executor := NewSubprocessExecutor()
	if t := cfg.Timeout(); t > 0 {
		executor.Timeout = t
	}

	return &Runner{
		cfg:      cfg,
		executor: executor,
	}
}

// Executor exposes the underlying executor so callers can redirect the
// tool's streams.
func (r *Runner) Executor() *SubprocessExecutor {
	return r.executor
}

// Run executes the analysis tool once and returns the mapped result.
//
// Every non-zero tool exit status collapses to exitcode.LintFailure;
// the tool's own status is deliberately not passed through. Failures
// to set up or spawn the tool return exitcode.EnvError together with
// an error describing the cause, and invalid configuration returns
// exitcode.ConfigError.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if err := r.cfg.Validate(); err != nil {
		return &Result{Code: exitcode.ConfigError}, err
	}

	argv, err := r.cfg.ToolArgv()
	if err != nil {
		return &Result{Code: exitcode.ConfigError}, err
	}

	info, err := os.Stat(r.cfg.TargetDir)
	if err != nil {
		if os.IsNotExist(err) {
			return &Result{Code: exitcode.EnvError},
				fmt.Errorf("target directory not found: %s", r.cfg.TargetDir)
		}
		return &Result{Code: exitcode.EnvError},
			fmt.Errorf("failed to stat target directory %s: %w", r.cfg.TargetDir, err)
	}
	if !info.IsDir() {
		return &Result{Code: exitcode.EnvError},
			fmt.Errorf("target is not a directory: %s", r.cfg.TargetDir)
	}

	r.executor.WorkDir = r.cfg.TargetDir

	if r.cfg.VenvDir != "" {
		venvPath := r.cfg.VenvDir
		if !filepath.IsAbs(venvPath) {
			venvPath = filepath.Join(r.cfg.TargetDir, venvPath)
		}
		activation := venv.New(venvPath)
		if err := activation.Validate(); err != nil {
			return &Result{Code: exitcode.EnvError}, err
		}
		for k, v := range activation.Env() {
			r.executor.Env[k] = v
		}
		// The subprocess inherits the activated PATH, but the wrapper
		// resolves the tool name itself, so probe the venv first.
		if path, ok := activation.LookTool(argv[0]); ok {
			argv[0] = path
		}
	}

	output, err := r.executor.Execute(ctx, argv[0], argv[1:]...)
	if err != nil {
		return &Result{Code: exitcode.EnvError}, err
	}

	result := &Result{Code: exitcode.Success, Tool: output}
	if output.ExitCode != 0 {
		result.Code = exitcode.LintFailure
	}
	return result, nil
}
