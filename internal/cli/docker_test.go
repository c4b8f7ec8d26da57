package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommander struct {
	lastName string
	lastArgs []string
	out      string
	err      error
}

func (f *fakeCommander) Output(_ context.Context, name string, args ...string) (string, error) {
	f.lastName, f.lastArgs = name, args
	return f.out, f.err
}

func (f *fakeCommander) CombinedOutput(ctx context.Context, name string, args ...string) (string, error) {
	return f.Output(ctx, name, args...)
}

func TestDocker_ListContainersFilters(t *testing.T) {
	runner := &fakeCommander{out: "proj-cache-node-1-1\nunrelated\nproj-cache-node-2-1\n"}
	d := NewDocker("docker", runner)

	names, err := d.ListContainers(context.Background(), "cache-node-")
	require.NoError(t, err)
	assert.Equal(t, []string{"proj-cache-node-1-1", "proj-cache-node-2-1"}, names)
	assert.Equal(t, "docker", runner.lastName)
	assert.Equal(t, []string{"ps", "--format", "{{.Names}}"}, runner.lastArgs)
}

func TestDocker_ExecBuildsCommand(t *testing.T) {
	runner := &fakeCommander{out: "1000\t/cache/disk1"}
	d := NewDocker("docker", runner)

	out, err := d.Exec(context.Background(), "cache-node-1", "du", "-sb", "/cache/disk1")
	require.NoError(t, err)
	assert.Equal(t, "1000\t/cache/disk1", out)
	assert.Equal(t, []string{"exec", "cache-node-1", "du", "-sb", "/cache/disk1"}, runner.lastArgs)
}

func TestDocker_LogsBuildsCommand(t *testing.T) {
	runner := &fakeCommander{out: "line"}
	d := NewDocker("docker", runner)

	_, err := d.Logs(context.Background(), "cache-node-1", 1000)
	require.NoError(t, err)
	assert.Equal(t, []string{"logs", "--tail", "1000", "cache-node-1"}, runner.lastArgs)
}
