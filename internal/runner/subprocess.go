package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// killGrace bounds how long Wait keeps draining the tool's pipes after
// a timeout kill, in case a grandchild inherited them.
const killGrace = 2 * time.Second

// ToolOutput is the observed result of one tool execution.
type ToolOutput struct {
	// Stdout and Stderr hold the captured streams. The same bytes are
	// also written through to the executor's writers as they arrive.
	Stdout string
	Stderr string

	// ExitCode is the tool's exit status. Non-zero statuses are
	// reported here, not as an error.
	ExitCode int

	// Duration is how long the tool ran.
	Duration time.Duration
}

// SubprocessExecutor runs external tools as subprocesses.
//
// Diagnostics are passed through to Stdout/Stderr unchanged while
// being captured, so the wrapper stays transparent to the tool's
// console output.
type SubprocessExecutor struct {
	// Timeout is the max execution time. Zero means no timeout: the
	// wrapper blocks until the tool terminates.
	Timeout time.Duration

	// WorkDir is the working directory for the tool.
	WorkDir string

	// Env is environment overrides applied on top of the wrapper's
	// environment. An empty value removes the variable.
	Env map[string]string

	// Stdout and Stderr receive the tool's streams. Nil defaults to
	// the wrapper's own stdout/stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// NewSubprocessExecutor creates an executor with defaults.
func NewSubprocessExecutor() *SubprocessExecutor {
	return &SubprocessExecutor{
		Env: make(map[string]string),
	}
}

// Execute runs name with args and waits for it to finish.
//
// A non-zero exit status is not an error: it is returned in
// ToolOutput.ExitCode. An error means the tool could not be started
// at all (missing executable, missing working directory) or that a
// configured timeout killed it — a killed tool is never reported as
// a lint result.
func (e *SubprocessExecutor) Execute(ctx context.Context, name string, args ...string) (*ToolOutput, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.WorkDir
	cmd.Env = e.buildEnv()
	if e.Timeout > 0 {
		cmd.WaitDelay = killGrace
	}

	stdoutSink := e.Stdout
	if stdoutSink == nil {
		stdoutSink = os.Stdout
	}
	stderrSink := e.Stderr
	if stderrSink == nil {
		stderrSink = os.Stderr
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = io.MultiWriter(stdoutSink, &stdoutBuf)
	cmd.Stderr = io.MultiWriter(stderrSink, &stderrBuf)

	start := time.Now()
	err := cmd.Run()

	output := &ToolOutput{
		Stdout:   stdoutBuf.String(),
		Stderr:   stderrBuf.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%s timed out after %s", name, e.Timeout)
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}
		return nil, fmt.Errorf("failed to execute %s: %w", name, err)
	}

	return output, nil
}

// buildEnv merges e.Env over the wrapper's environment. Empty override
// values unset the variable instead of exporting an empty one.
func (e *SubprocessExecutor) buildEnv() []string {
	if len(e.Env) == 0 {
		return os.Environ()
	}

	env := make([]string, 0, len(os.Environ())+len(e.Env))
	for _, kv := range os.Environ() {
		key := kv
		if i := strings.IndexByte(kv, '='); i >= 0 {
			key = kv[:i]
		}
		if _, overridden := e.Env[key]; overridden {
			continue
		}
		env = append(env, kv)
	}

	for k, v := range e.Env {
		if v == "" {
			continue
		}
		env = append(env, k+"="+v)
	}

	return env
}
