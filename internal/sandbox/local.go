//go:build !windows
// +build !windows

package sandbox

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"syscall"

	"github.com/lumynops/sreagent/internal/agent"
)

// LocalEnvironment executes commands directly on the host through
// /bin/bash -c, with stdout and stderr interleaved into one stream.
// There is no isolation; it exists for environments (SRE boxes, CI
// sandboxes) that are already containers themselves.
type LocalEnvironment struct {
	config Config
}

// NewLocalEnvironment creates a host execution environment.
func NewLocalEnvironment(config Config) *LocalEnvironment {
	if config.WorkDir == "" {
		config.WorkDir, _ = os.Getwd()
	}
	return &LocalEnvironment{config: config}
}

// Execute implements agent.Environment.Execute. A command that exceeds the
// configured timeout is killed together with its process group and fails
// with *agent.TimeoutError carrying the output captured so far.
func (e *LocalEnvironment) Execute(ctx context.Context, command string) (agent.ExecutionResult, error) {
	timeout := e.config.CmdTimeout
	if timeout <= 0 {
		timeout = defaultCmdTimeout
	}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.Command("/bin/bash", "-c", command)
	cmd.Dir = e.config.WorkDir
	// New process group so the whole command tree dies on timeout.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	if err := cmd.Start(); err != nil {
		return agent.ExecutionResult{}, err
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-cctx.Done():
			if cmd.Process != nil {
				syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
			}
		case <-done:
		}
	}()

	waitErr := cmd.Wait()
	close(done)

	if errors.Is(cctx.Err(), context.DeadlineExceeded) {
		return agent.ExecutionResult{}, &agent.TimeoutError{Output: buf.String()}
	}

	result := agent.ExecutionResult{
		Output:     buf.String(),
		ReturnCode: 0,
	}
	if waitErr != nil {
		result.ReturnCode = 1
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			result.ReturnCode = exitErr.ExitCode()
		} else {
			// Failed before the command could run (bash missing, fork
			// failure). Not something the model can act on.
			return agent.ExecutionResult{}, waitErr
		}
	}
	return result, nil
}

// TemplateVars implements agent.Environment.TemplateVars.
func (e *LocalEnvironment) TemplateVars() map[string]any {
	timeout := e.config.CmdTimeout
	if timeout <= 0 {
		timeout = defaultCmdTimeout
	}
	return map[string]any{
		"cwd":     e.config.WorkDir,
		"timeout": int(timeout.Seconds()),
	}
}
