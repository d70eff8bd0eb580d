package aws

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single aws CLI invocation
const DefaultTimeout = 30 * time.Second

// CommandRunner runs an external command and returns its stdout and stderr.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout []byte, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Client executes AWS CLI commands
type Client struct {
	path    string
	profile string
	region  string
	timeout time.Duration
	runner  CommandRunner
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithCLIPath sets the aws executable, "aws" by default
func WithCLIPath(path string) ClientOption {
	return func(c *Client) {
		if path != "" {
			c.path = path
		}
	}
}

// WithProfile passes --profile to every command
func WithProfile(profile string) ClientOption {
	return func(c *Client) { c.profile = profile }
}

// WithRegion passes --region to every command
func WithRegion(region string) ClientOption {
	return func(c *Client) { c.region = region }
}

// WithTimeout overrides DefaultTimeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithRunner replaces process execution, for tests
func WithRunner(runner CommandRunner) ClientOption {
	return func(c *Client) { c.runner = runner }
}

// NewClient creates a new AWS CLI client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		path:    "aws",
		timeout: DefaultTimeout,
		runner:  execRunner{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute runs an aws CLI command with the given arguments and returns its
// JSON output
func (c *Client) Execute(ctx context.Context, args ...string) ([]byte, error) {
	// Create context with timeout
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	output, stderr, err := c.runner.Run(ctx, c.path, c.buildArgs(args)...)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("command timed out after %v", c.timeout)
		}

		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("aws cli not found (%s): %w", c.path, err)
		}

		if errMsg := strings.TrimSpace(string(stderr)); errMsg != "" {
			return nil, fmt.Errorf("aws cli error: %s", errMsg)
		}

		return nil, fmt.Errorf("aws cli command failed: %w", err)
	}

	return output, nil
}

func (c *Client) buildArgs(args []string) []string {
	full := make([]string, 0, len(args)+6)
	full = append(full, args...)
	full = append(full, "--output", "json")
	if c.profile != "" {
		full = append(full, "--profile", c.profile)
	}
	if c.region != "" {
		full = append(full, "--region", c.region)
	}
	return full
}
