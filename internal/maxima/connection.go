package maxima

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"
)

const (
	// DefaultCommand is the usual install location on Linux.
	DefaultCommand = "/usr/bin/maxima"

	// DefaultTimeout bounds a single CAS run.
	DefaultTimeout = 30 * time.Second

	// waitDelay is how long Wait keeps draining output after the
	// process was killed.
	waitDelay = time.Second

	// maxStderr is how much trailing stderr is kept for error messages.
	maxStderr = 512
)

// Connection optimizes a batch of CAS input lines and returns the lines
// the CAS printed.
type Connection interface {
	Optimize(ctx context.Context, lines []string) ([]string, error)
}

// ProcessConnection runs the CAS as a subprocess per call.
//
// Thread Safety: Safe for concurrent use. Every call gets its own
// temporary file.
type ProcessConnection struct {
	command string
	args    []string
	timeout time.Duration
	tempDir string
	logger  *slog.Logger
}

var _ Connection = (*ProcessConnection)(nil)

// Option configures a ProcessConnection.
type Option func(*ProcessConnection)

// WithArgs replaces the arguments placed before the input file path.
// The default is "-b" (batch mode).
func WithArgs(args ...string) Option {
	return func(c *ProcessConnection) {
		c.args = slices.Clone(args)
	}
}

// WithTimeout sets the per-call timeout. Non-positive values keep the
// default.
func WithTimeout(d time.Duration) Option {
	return func(c *ProcessConnection) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithTempDir sets the directory for request files. Empty means
// os.TempDir().
func WithTempDir(dir string) Option {
	return func(c *ProcessConnection) {
		c.tempDir = dir
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *ProcessConnection) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewProcessConnection creates a connection running command. An empty
// command means DefaultCommand.
func NewProcessConnection(command string, opts ...Option) *ProcessConnection {
	if command == "" {
		command = DefaultCommand
	}
	c := &ProcessConnection{
		command: command,
		args:    []string{"-b"},
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Command returns the CAS executable.
func (c *ProcessConnection) Command() string {
	return c.command
}

// Timeout returns the per-call timeout.
func (c *ProcessConnection) Timeout() time.Duration {
	return c.timeout
}

// Optimize writes lines to a temporary file, one per line, runs the CAS on
// it and returns its stdout lines. The temporary file is removed before
// Optimize returns.
//
// Errors:
//
//	*Error matching ErrUnavailable - spawn, I/O, non-zero exit or timeout
func (c *ProcessConnection) Optimize(ctx context.Context, lines []string) ([]string, error) {
	ctx, span := startOptimizeSpan(ctx, c.command, len(lines))
	defer span.End()
	start := time.Now()

	c.logger.Debug("optimizer started",
		slog.String("command", c.command),
		slog.Int("lines", len(lines)),
	)

	out, err := c.run(ctx, lines)
	elapsed := time.Since(start)

	setOptimizeSpanResult(span, len(out), err)
	recordOptimizeMetrics(ctx, c.command, elapsed, err == nil)

	if err != nil {
		c.logger.Debug("optimizer failed",
			slog.String("command", c.command),
			slog.Duration("duration", elapsed),
			slog.Any("error", err),
		)
		return nil, err
	}

	c.logger.Debug("optimizer finished",
		slog.String("command", c.command),
		slog.Duration("duration", elapsed),
		slog.Int("output_lines", len(out)),
	)
	return out, nil
}

func (c *ProcessConnection) run(ctx context.Context, lines []string) ([]string, error) {
	path, err := c.writeRequest(lines)
	if path != "" {
		defer os.Remove(path)
	}
	if err != nil {
		return nil, c.fail("write", err, nil)
	}

	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := append(slices.Clone(c.args), path)
	cmd := exec.CommandContext(runCtx, c.command, args...)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, c.fail("start", err, nil)
	}
	waitErr := cmd.Wait()

	switch {
	case ctx.Err() != nil:
		return nil, c.fail("wait", ctx.Err(), &stderr)
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		return nil, c.fail("timeout", fmt.Errorf("no result within %s", c.timeout), &stderr)
	case waitErr != nil:
		return nil, c.fail("wait", waitErr, &stderr)
	}

	out, err := readLines(&stdout)
	if err != nil {
		return nil, c.fail("read", err, &stderr)
	}
	return out, nil
}

// writeRequest writes one input line per line to a fresh temporary file
// and returns its path. The path is returned even on error so the caller
// can remove the file.
func (c *ProcessConnection) writeRequest(lines []string) (string, error) {
	f, err := os.CreateTemp(c.tempDir, "gapp-maxima-*.txt")
	if err != nil {
		return "", err
	}
	path := f.Name()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		w.WriteString(line)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return path, err
	}
	return path, f.Close()
}

func (c *ProcessConnection) fail(op string, err error, stderr *bytes.Buffer) *Error {
	e := &Error{Op: op, Command: c.command, Err: err}
	if stderr != nil {
		e.Stderr = tail(strings.TrimSpace(stderr.String()), maxStderr)
	}
	return e
}

// readLines splits output into lines until EOF.
func readLines(r *bytes.Buffer) ([]string, error) {
	out := []string{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
