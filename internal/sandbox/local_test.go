//go:build !windows
// +build !windows

package sandbox

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lumynops/sreagent/internal/agent"
)

func TestLocalEnvironment_Execute(t *testing.T) {
	env := NewLocalEnvironment(Config{WorkDir: t.TempDir()})
	ctx := context.Background()

	tests := []struct {
		name       string
		command    string
		wantOutput string
		wantRC     int
	}{
		{"echo", "echo hello", "hello\n", 0},
		{"nonzero exit", "exit 7", "", 7},
		{"stderr captured", "echo oops >&2", "oops\n", 0},
		{"stdout and stderr interleaved", "echo out; echo err >&2", "out\nerr\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := env.Execute(ctx, tt.command)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if result.Output != tt.wantOutput {
				t.Errorf("output = %q, want %q", result.Output, tt.wantOutput)
			}
			if result.ReturnCode != tt.wantRC {
				t.Errorf("return code = %d, want %d", result.ReturnCode, tt.wantRC)
			}
		})
	}
}

func TestLocalEnvironment_WorkDir(t *testing.T) {
	dir := t.TempDir()
	env := NewLocalEnvironment(Config{WorkDir: dir})

	result, err := env.Execute(context.Background(), "pwd")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	// macOS may prefix the temp dir with /private.
	if !strings.HasSuffix(strings.TrimSpace(result.Output), dir) {
		t.Errorf("pwd = %q, want suffix %q", result.Output, dir)
	}
}

func TestLocalEnvironment_Timeout(t *testing.T) {
	env := NewLocalEnvironment(Config{
		WorkDir:    t.TempDir(),
		CmdTimeout: 500 * time.Millisecond,
	})

	start := time.Now()
	_, err := env.Execute(context.Background(), "echo partial; sleep 30")
	elapsed := time.Since(start)

	var timeout *agent.TimeoutError
	if !errors.As(err, &timeout) {
		t.Fatalf("Execute() error = %v, want *agent.TimeoutError", err)
	}
	if !strings.Contains(timeout.Output, "partial") {
		t.Errorf("partial output lost: %q", timeout.Output)
	}
	if elapsed > 5*time.Second {
		t.Errorf("timeout took %v, the process group was not killed", elapsed)
	}
}

func TestLocalEnvironment_TemplateVars(t *testing.T) {
	env := NewLocalEnvironment(Config{WorkDir: "/tmp", CmdTimeout: 90 * time.Second})
	vars := env.TemplateVars()
	if vars["cwd"] != "/tmp" {
		t.Errorf("cwd = %v, want /tmp", vars["cwd"])
	}
	if vars["timeout"] != 90 {
		t.Errorf("timeout = %v, want 90", vars["timeout"])
	}
}
