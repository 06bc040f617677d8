// Package sandbox provides agent.Environment implementations: direct host
// execution and isolated Docker containers. Commands run through
// /bin/bash -c with stdout and stderr combined, since the agent replays
// the output to the model as one observation.
package sandbox

import (
	"context"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/lumynops/sreagent/internal/agent"
)

// Mode represents the sandbox execution mode.
type Mode string

const (
	// ModeDocker runs commands in Docker containers for isolation.
	ModeDocker Mode = "docker"
	// ModeHost runs commands directly on the host (no isolation).
	ModeHost Mode = "host"
	// ModeAuto selects Docker if available, otherwise falls back to host.
	ModeAuto Mode = "auto"
)

const defaultCmdTimeout = 2 * time.Minute

// Config holds configuration for sandbox execution.
type Config struct {
	Mode        Mode
	WorkDir     string        // working directory for command execution
	DockerImage string        // Docker image override
	CPU         string        // CPU limit (e.g. "2")
	Memory      string        // memory limit (e.g. "1g")
	CmdTimeout  time.Duration // per-command timeout (0 = default)
}

// DefaultConfig returns the configuration derived from environment
// variables. The SRE agent needs kubectl and network access against the
// live cluster, so the default mode is host execution; Docker mode is for
// tasks that should stay contained.
func DefaultConfig() Config {
	modeStr := strings.ToLower(os.Getenv("AGENT_SANDBOX_MODE"))
	if modeStr == "" {
		modeStr = "host"
	}

	var mode Mode
	switch modeStr {
	case "docker":
		mode = ModeDocker
	case "host":
		mode = ModeHost
	case "auto":
		mode = ModeAuto
	default:
		log.Printf("WARNING: Unknown AGENT_SANDBOX_MODE value '%s', defaulting to 'host'", modeStr)
		mode = ModeHost
	}

	cmdTimeout := defaultCmdTimeout
	if timeoutStr := os.Getenv("AGENT_CMD_TIMEOUT"); timeoutStr != "" {
		if d, err := time.ParseDuration(timeoutStr); err == nil && d > 0 {
			cmdTimeout = d
		} else {
			log.Printf("WARNING: Invalid AGENT_CMD_TIMEOUT value '%s', using default 2m", timeoutStr)
		}
	}

	return Config{
		Mode:        mode,
		DockerImage: getEnvOrDefault("AGENT_DOCKER_IMAGE", defaultDockerImage),
		CPU:         getEnvOrDefault("AGENT_DOCKER_CPU", "2"),
		Memory:      getEnvOrDefault("AGENT_DOCKER_MEMORY", "1g"),
		CmdTimeout:  cmdTimeout,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

// IsDockerAvailable checks if Docker is available and accessible.
func IsDockerAvailable(ctx context.Context) bool {
	cmd := exec.CommandContext(ctx, "docker", "ps")
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}

// New creates an environment for the configured mode. Auto mode prefers
// Docker and falls back to host execution when the daemon is unreachable.
func New(ctx context.Context, config Config) agent.Environment {
	switch config.Mode {
	case ModeDocker:
		env, err := NewDockerEnvironment(config)
		if err != nil {
			log.Printf("WARNING: Failed to create Docker environment: %v. Falling back to host execution.", err)
			return NewLocalEnvironment(config)
		}
		return env

	case ModeAuto:
		if IsDockerAvailable(ctx) {
			env, err := NewDockerEnvironment(config)
			if err == nil {
				return env
			}
			log.Printf("WARNING: Docker available but environment creation failed: %v. Falling back to host execution.", err)
		}
		return NewLocalEnvironment(config)

	default:
		return NewLocalEnvironment(config)
	}
}
