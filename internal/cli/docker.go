package cli

import (
	"context"
	"strconv"
	"strings"
)

// ContainerClient is the narrow view of the container runtime the samplers
// need: enumerate instances, run a command against one, tail its logs.
type ContainerClient interface {
	ListContainers(ctx context.Context, filter string) ([]string, error)
	Exec(ctx context.Context, container string, cmd ...string) (string, error)
	Logs(ctx context.Context, container string, tail int) (string, error)
}

// Docker shells out to the docker CLI. It never interprets command output;
// parsing belongs to the samplers.
type Docker struct {
	bin    string
	runner Commander
}

func NewDocker(bin string, runner Commander) *Docker {
	if bin == "" {
		bin = "docker"
	}
	return &Docker{bin: bin, runner: runner}
}

func (d *Docker) ListContainers(ctx context.Context, filter string) ([]string, error) {
	out, err := d.runner.Output(ctx, d.bin, "ps", "--format", "{{.Names}}")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if filter == "" || strings.Contains(line, filter) {
			names = append(names, line)
		}
	}
	return names, nil
}

func (d *Docker) Exec(ctx context.Context, container string, cmd ...string) (string, error) {
	args := append([]string{"exec", container}, cmd...)
	return d.runner.Output(ctx, d.bin, args...)
}

// Logs returns the last tail lines of the container's log. Stdout and stderr
// are merged because cache nodes write access logs to stderr.
func (d *Docker) Logs(ctx context.Context, container string, tail int) (string, error) {
	return d.runner.CombinedOutput(ctx, d.bin, "logs", "--tail", strconv.Itoa(tail), container)
}
