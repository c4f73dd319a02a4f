package hdfs

import (
	"context"
	"os/exec"

	"github.com/cockroachdb/errors"
)

// CommandRunner executes a command and returns its combined output.
// Injected so tests never shell out.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// DockerClient implements Uploader by driving the hdfs CLI inside a docker
// container (docker exec / docker cp).
type DockerClient struct {
	container string
	run       CommandRunner
}

// Option configures a DockerClient.
type Option func(*DockerClient)

// WithRunner replaces the command runner. Used by tests.
func WithRunner(run CommandRunner) Option {
	return func(c *DockerClient) { c.run = run }
}

// NewDockerClient creates a client for the named container.
func NewDockerClient(container string, opts ...Option) *DockerClient {
	c := &DockerClient{
		container: container,
		run:       execRunner,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateDirectory runs `hdfs dfs -mkdir -p` inside the container.
func (c *DockerClient) CreateDirectory(ctx context.Context, dir string) error {
	return c.docker(ctx, "exec", c.container, "hdfs", "dfs", "-mkdir", "-p", dir)
}

// CopyIn copies a local file into the container with `docker cp`.
func (c *DockerClient) CopyIn(ctx context.Context, localPath, remotePath string) error {
	return c.docker(ctx, "cp", localPath, c.container+":"+remotePath)
}

// PutFile moves a staged container file into HDFS with `hdfs dfs -put -f`.
func (c *DockerClient) PutFile(ctx context.Context, remotePath, hdfsPath string) error {
	return c.docker(ctx, "exec", c.container, "hdfs", "dfs", "-put", "-f", remotePath, hdfsPath)
}

func (c *DockerClient) docker(ctx context.Context, args ...string) error {
	out, err := c.run(ctx, "docker", args...)
	if err != nil {
		return errors.Wrapf(err, "docker %s: %s", args[0], string(out))
	}
	return nil
}
