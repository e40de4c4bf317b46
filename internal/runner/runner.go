// Package runner executes external commands synchronously. Commands inherit
// the caller's standard streams and block until the child exits; a non-zero
// exit status is returned as *ExitError.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/proseby/devkit/internal/logger"
)

// Command is a program invocation in argv form.
type Command struct {
	Name string
	Args []string
}

// Cmd builds a Command.
func Cmd(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// String renders the command the way a user would type it.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, a := range c.Args {
		if strings.ContainsAny(a, " \t\"") {
			a = fmt.Sprintf("%q", a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// ExitError reports a command that ran but exited non-zero.
type ExitError struct {
	Command Command
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command failed: %s (exit status %d)", e.Command, e.Code)
}

// Runner is the interface for running external commands.
type Runner interface {
	// Run executes cmd with inherited standard streams.
	Run(ctx context.Context, cmd Command) error
	// Output executes cmd and returns its trimmed standard output.
	Output(ctx context.Context, cmd Command) (string, error)
}

// Exec is the os/exec implementation of Runner.
type Exec struct {
	// Dir is the working directory; empty means the current directory.
	Dir string

	// Stdin, Stdout and Stderr default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns an Exec rooted at dir.
func New(dir string) *Exec {
	return &Exec{Dir: dir}
}

// Run executes the command and waits for it to finish.
func (e *Exec) Run(ctx context.Context, c Command) error {
	cmd := e.command(ctx, c)
	cmd.Stdin = orReader(e.Stdin, os.Stdin)
	cmd.Stdout = orWriter(e.Stdout, os.Stdout)
	cmd.Stderr = orWriter(e.Stderr, os.Stderr)

	logger.G(ctx).WithField("command", c.String()).Debug("running command")
	return classify(c, cmd.Run())
}

// Output executes the command and captures standard output.
func (e *Exec) Output(ctx context.Context, c Command) (string, error) {
	cmd := e.command(ctx, c)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = orWriter(e.Stderr, os.Stderr)

	logger.G(ctx).WithField("command", c.String()).Debug("querying command output")
	if err := classify(c, cmd.Run()); err != nil {
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (e *Exec) command(ctx context.Context, c Command) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	if e.Dir != "" {
		cmd.Dir = e.Dir
	}
	return cmd
}

func classify(c Command, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Command: c, Code: exitErr.ExitCode()}
	}
	return fmt.Errorf("running %s: %w", c, err)
}

func orReader(r, fallback io.Reader) io.Reader {
	if r == nil {
		return fallback
	}
	return r
}

func orWriter(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}
