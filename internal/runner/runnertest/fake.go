// Package runnertest provides a recording Runner for tests.
package runnertest

import (
	"context"
	"fmt"
	"sync"

	"github.com/proseby/devkit/internal/runner"
)

// Response is the scripted result for one command line.
type Response struct {
	Output string
	Err    error
}

// Fake records every command and answers from Responses, keyed by
// Command.String(). Unscripted commands succeed with empty output.
type Fake struct {
	Responses map[string]Response

	// OnRun, when set, is called for every Run before the scripted response
	// is returned. Tests use it to emulate side effects such as hook files.
	OnRun func(cmd runner.Command) error

	mu    sync.Mutex
	calls []runner.Command
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{Responses: map[string]Response{}}
}

// Script sets the response for the given command line.
func (f *Fake) Script(line string, resp Response) *Fake {
	f.Responses[line] = resp
	return f
}

// Fail scripts the command line to exit with code.
func (f *Fake) Fail(name string, code int, args ...string) *Fake {
	c := runner.Cmd(name, args...)
	f.Responses[c.String()] = Response{Err: &runner.ExitError{Command: c, Code: code}}
	return f
}

// Run implements runner.Runner.
func (f *Fake) Run(_ context.Context, cmd runner.Command) error {
	f.record(cmd)
	if f.OnRun != nil {
		if err := f.OnRun(cmd); err != nil {
			return err
		}
	}
	return f.Responses[cmd.String()].Err
}

// Output implements runner.Runner.
func (f *Fake) Output(_ context.Context, cmd runner.Command) (string, error) {
	f.record(cmd)
	resp := f.Responses[cmd.String()]
	return resp.Output, resp.Err
}

// Calls returns the recorded command lines in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.String()
	}
	return out
}

// Called reports whether line was executed.
func (f *Fake) Called(line string) bool {
	for _, c := range f.Calls() {
		if c == line {
			return true
		}
	}
	return false
}

func (f *Fake) record(cmd runner.Command) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, cmd)
}

// String implements fmt.Stringer for test failure messages.
func (f *Fake) String() string {
	return fmt.Sprintf("%v", f.Calls())
}
