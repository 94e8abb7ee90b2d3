package runner

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestNewSubprocessExecutor(t *testing.T) {
	executor := NewSubprocessExecutor()
	if executor == nil {
		t.Fatal("NewSubprocessExecutor() returned nil")
	}

	if executor.Timeout != 0 {
		t.Errorf("Default timeout = %v, want 0 (unbounded)", executor.Timeout)
	}

	if executor.Env == nil {
		t.Error("Env map should be initialized")
	}
}

func TestExecute_Success(t *testing.T) {
	executor := NewSubprocessExecutor()
	var out bytes.Buffer
	executor.Stdout = &out
	executor.Stderr = &out

	output, err := executor.Execute(context.Background(), "echo", "hello")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if output.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", output.ExitCode)
	}

	if !strings.Contains(output.Stdout, "hello") {
		t.Errorf("Stdout = %q, want to contain %q", output.Stdout, "hello")
	}
}

func TestExecute_PassesThroughDiagnostics(t *testing.T) {
	executor := NewSubprocessExecutor()
	var out, errOut bytes.Buffer
	executor.Stdout = &out
	executor.Stderr = &errOut

	_, err := executor.Execute(context.Background(), "sh", "-c", "echo finding; echo detail >&2")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !strings.Contains(out.String(), "finding") {
		t.Errorf("stdout sink = %q, want tool output passed through", out.String())
	}
	if !strings.Contains(errOut.String(), "detail") {
		t.Errorf("stderr sink = %q, want tool output passed through", errOut.String())
	}
}

func TestExecute_WithWorkDir(t *testing.T) {
	dir := t.TempDir()
	executor := NewSubprocessExecutor()
	executor.WorkDir = dir
	var out bytes.Buffer
	executor.Stdout = &out
	executor.Stderr = &out

	output, err := executor.Execute(context.Background(), "pwd")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if output.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", output.ExitCode)
	}
	if !strings.Contains(output.Stdout, dir) {
		t.Errorf("Stdout = %q, want working directory %q", output.Stdout, dir)
	}
}

func TestExecute_WithEnvOverride(t *testing.T) {
	executor := NewSubprocessExecutor()
	executor.Env["LINTRUN_TEST_VAR"] = "activated"
	var out bytes.Buffer
	executor.Stdout = &out
	executor.Stderr = &out

	output, err := executor.Execute(context.Background(), "sh", "-c", "echo $LINTRUN_TEST_VAR")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !strings.Contains(output.Stdout, "activated") {
		t.Errorf("Stdout = %q, want env override visible", output.Stdout)
	}
}

func TestExecute_EmptyEnvValueUnsets(t *testing.T) {
	t.Setenv("LINTRUN_UNSET_ME", "present")

	executor := NewSubprocessExecutor()
	executor.Env["LINTRUN_UNSET_ME"] = ""
	var out bytes.Buffer
	executor.Stdout = &out
	executor.Stderr = &out

	output, err := executor.Execute(context.Background(), "sh", "-c", "echo \"v=${LINTRUN_UNSET_ME-unset}\"")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !strings.Contains(output.Stdout, "v=unset") {
		t.Errorf("Stdout = %q, want variable removed from environment", output.Stdout)
	}
}

func TestExecute_NonZeroExit(t *testing.T) {
	executor := NewSubprocessExecutor()
	var out bytes.Buffer
	executor.Stdout = &out
	executor.Stderr = &out

	output, err := executor.Execute(context.Background(), "sh", "-c", "exit 1")
	if err != nil {
		t.Fatalf("Execute should not return error for non-zero exit: %v", err)
	}

	if output.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", output.ExitCode)
	}
}

func TestExecute_MissingTool(t *testing.T) {
	executor := NewSubprocessExecutor()

	_, err := executor.Execute(context.Background(), "lintrun-no-such-tool-xyz")
	if err == nil {
		t.Error("expected error for missing executable")
	}
}

func TestExecute_Timeout(t *testing.T) {
	executor := NewSubprocessExecutor()
	executor.Timeout = 50 * time.Millisecond
	var out bytes.Buffer
	executor.Stdout = &out
	executor.Stderr = &out

	output, err := executor.Execute(context.Background(), "sleep", "1")
	if err == nil {
		t.Fatalf("expected error for timed-out tool, got output %+v", output)
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("error = %q, want mention of timeout", err)
	}
}

func TestExecute_NoTimeoutBlocksUntilExit(t *testing.T) {
	// Zero timeout means the wrapper waits for the tool, however long
	// it takes.
	executor := NewSubprocessExecutor()
	var out bytes.Buffer
	executor.Stdout = &out
	executor.Stderr = &out

	output, err := executor.Execute(context.Background(), "sh", "-c", "sleep 0.2; echo done")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if output.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", output.ExitCode)
	}
	if !strings.Contains(output.Stdout, "done") {
		t.Errorf("Stdout = %q, want tool to run to completion", output.Stdout)
	}
}

func TestBuildEnv_OverridesExisting(t *testing.T) {
	t.Setenv("LINTRUN_OVERRIDE", "old")

	executor := NewSubprocessExecutor()
	executor.Env["LINTRUN_OVERRIDE"] = "new"

	var saw []string
	for _, kv := range executor.buildEnv() {
		if strings.HasPrefix(kv, "LINTRUN_OVERRIDE=") {
			saw = append(saw, kv)
		}
	}

	if len(saw) != 1 || saw[0] != "LINTRUN_OVERRIDE=new" {
		t.Errorf("buildEnv() LINTRUN_OVERRIDE entries = %v, want exactly [LINTRUN_OVERRIDE=new]", saw)
	}
}
