package sandbox

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-units"

	"github.com/lumynops/sreagent/internal/agent"
)

// defaultDockerImage carries the CLI tooling the SRE prompts assume
// (kubectl, curl, standard linux utilities).
const defaultDockerImage = "alpine/k8s:1.29.2"

// DockerEnvironment runs each command in a fresh Docker container. The
// working directory is bind-mounted so artifacts the model writes survive
// the container.
type DockerEnvironment struct {
	client *client.Client
	config Config
}

// NewDockerEnvironment creates a Docker-backed environment and verifies
// the daemon is reachable.
func NewDockerEnvironment(config Config) (*DockerEnvironment, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := cli.Ping(ctx); err != nil {
		return nil, fmt.Errorf("Docker daemon not accessible: %w", err)
	}

	return &DockerEnvironment{client: cli, config: config}, nil
}

// Execute implements agent.Environment.Execute.
func (e *DockerEnvironment) Execute(ctx context.Context, command string) (agent.ExecutionResult, error) {
	timeout := e.config.CmdTimeout
	if timeout <= 0 {
		timeout = defaultCmdTimeout
	}

	imageName := e.config.DockerImage
	if imageName == "" {
		imageName = defaultDockerImage
	}
	if err := e.ensureImage(ctx, imageName); err != nil {
		return agent.ExecutionResult{}, fmt.Errorf("failed to ensure image %s: %w", imageName, err)
	}

	containerConfig := &container.Config{
		Image:      imageName,
		Cmd:        []string{"/bin/sh", "-c", command},
		WorkingDir: "/workspace",
	}
	hostConfig := &container.HostConfig{
		Binds: []string{e.config.WorkDir + ":/workspace"},
		Resources: container.Resources{
			Memory:   parseMemory(e.config.Memory),
			NanoCPUs: parseNanoCPUs(e.config.CPU),
			Ulimits: []*units.Ulimit{
				{Name: "nofile", Soft: 1024, Hard: 1024},
			},
		},
		SecurityOpt: []string{"no-new-privileges"},
	}

	createResp, err := e.client.ContainerCreate(ctx, containerConfig, hostConfig, nil, nil, "")
	if err != nil {
		return agent.ExecutionResult{}, fmt.Errorf("failed to create container: %w", err)
	}
	containerID := createResp.ID

	defer func() {
		removeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.client.ContainerRemove(removeCtx, containerID, container.RemoveOptions{Force: true})
	}()

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := e.client.ContainerStart(execCtx, containerID, container.StartOptions{}); err != nil {
		return agent.ExecutionResult{}, fmt.Errorf("failed to start container: %w", err)
	}

	statusCh, errCh := e.client.ContainerWait(execCtx, containerID, container.WaitConditionNotRunning)

	var exitCode int64
	select {
	case <-execCtx.Done():
		killCtx, killCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer killCancel()
		_ = e.client.ContainerKill(killCtx, containerID, "SIGKILL")
		// Whatever the command printed before the kill is still worth
		// feeding back to the model.
		partial, _ := e.collectLogs(killCtx, containerID)
		return agent.ExecutionResult{}, &agent.TimeoutError{Output: partial}
	case err := <-errCh:
		if err != nil {
			return agent.ExecutionResult{}, fmt.Errorf("container wait error: %w", err)
		}
	case status := <-statusCh:
		exitCode = status.StatusCode
	}

	output, err := e.collectLogs(ctx, containerID)
	if err != nil {
		return agent.ExecutionResult{}, err
	}

	return agent.ExecutionResult{
		Output:     output,
		ReturnCode: int(exitCode),
	}, nil
}

// TemplateVars implements agent.Environment.TemplateVars.
func (e *DockerEnvironment) TemplateVars() map[string]any {
	timeout := e.config.CmdTimeout
	if timeout <= 0 {
		timeout = defaultCmdTimeout
	}
	return map[string]any{
		"cwd":     "/workspace",
		"timeout": int(timeout.Seconds()),
	}
}

func (e *DockerEnvironment) collectLogs(ctx context.Context, containerID string) (string, error) {
	logs, err := e.client.ContainerLogs(ctx, containerID, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Tail:       "all",
	})
	if err != nil {
		return "", fmt.Errorf("failed to read container logs: %w", err)
	}
	defer logs.Close()
	return demuxLogs(logs), nil
}

// ensureImage checks if the image exists locally, and pulls it if not.
func (e *DockerEnvironment) ensureImage(ctx context.Context, imageName string) error {
	if _, _, err := e.client.ImageInspectWithRaw(ctx, imageName); err == nil {
		return nil
	}

	reader, err := e.client.ImagePull(ctx, imageName, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("failed to pull image: %w", err)
	}
	defer reader.Close()

	// Drain the pull output (required for pull to complete).
	_, _ = io.Copy(io.Discard, reader)
	return nil
}

// demuxLogs strips the Docker log multiplexing headers and interleaves
// stdout and stderr payloads in arrival order, which mirrors what a shell
// user would see.
// Header format: [STREAM_TYPE (1 byte)][RESERVED (3 bytes)][SIZE (4 bytes, big-endian)].
func demuxLogs(reader io.Reader) string {
	var sb strings.Builder

	header := make([]byte, 8)
	for {
		if _, err := io.ReadFull(reader, header); err != nil {
			break
		}
		size := int(header[4])<<24 | int(header[5])<<16 | int(header[6])<<8 | int(header[7])
		if size <= 0 || size > 10*1024*1024 {
			continue
		}
		payload := make([]byte, size)
		if _, err := io.ReadFull(reader, payload); err != nil {
			break
		}
		sb.Write(payload)
	}
	return sb.String()
}

// parseMemory converts a memory limit string (e.g. "1g", "512m") to bytes.
func parseMemory(memStr string) int64 {
	memStr = strings.TrimSpace(memStr)
	if memStr == "" {
		return 1 * units.GiB
	}
	bytes, err := units.RAMInBytes(memStr)
	if err != nil || bytes <= 0 {
		return 1 * units.GiB
	}
	return bytes
}

// parseNanoCPUs converts a CPU limit string (e.g. "2", "0.5") to Docker
// NanoCPUs. Scaling before the integer conversion keeps fractional limits
// intact.
func parseNanoCPUs(cpuStr string) int64 {
	cpuStr = strings.TrimSpace(cpuStr)
	if cpuStr == "" {
		return 2e9
	}
	var value float64
	fmt.Sscanf(cpuStr, "%f", &value)
	if value <= 0 {
		return 2e9
	}
	return int64(value * 1e9)
}
