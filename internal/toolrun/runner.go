// internal/toolrun/runner.go
package toolrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Command describes one external tool invocation.
type Command struct {
	Argv   []string
	Stdin  io.Reader
	Stdout io.Writer
	Dir    string
}

// Runner executes external tools. Implementations must surface a non-zero
// tool exit as *ExitError so callers can propagate the code.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExitError reports a tool that exited non-zero.
type ExitError struct {
	Argv   []string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s: exit status %d", strings.Join(e.Argv, " "), e.Code)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// ExitCode extracts a propagatable exit code from err.
// It returns 0, false when err carries no tool exit status.
func ExitCode(err error) (int, bool) {
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code, true
	}
	return 0, false
}

// stderr capture is capped; diagnostics don't need a tool's full chatter.
const maxStderr = 8 << 10

// boundedBuffer keeps the first maxStderr bytes written and drops the rest.
type boundedBuffer struct {
	buf bytes.Buffer
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	if room := maxStderr - b.buf.Len(); room > 0 {
		if len(p) > room {
			b.buf.Write(p[:room])
		} else {
			b.buf.Write(p)
		}
	}
	return len(p), nil
}

// ExecRunner runs commands on the host via os/exec.
type ExecRunner struct{}

// Run executes cmd, wiring the provided stdin/stdout and capturing stderr
// for error reporting. Context cancellation kills the process.
func (ExecRunner) Run(ctx context.Context, cmd Command) error {
	if len(cmd.Argv) == 0 {
		return errors.New("toolrun: empty command")
	}
	ec := exec.CommandContext(ctx, cmd.Argv[0], cmd.Argv[1:]...)
	ec.Dir = cmd.Dir
	ec.Stdin = cmd.Stdin
	ec.Stdout = cmd.Stdout
	var stderr boundedBuffer
	ec.Stderr = &stderr

	err := ec.Run()
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var xe *exec.ExitError
	if errors.As(err, &xe) {
		return &ExitError{Argv: cmd.Argv, Code: xe.ExitCode(), Stderr: stderr.buf.String()}
	}
	return fmt.Errorf("toolrun: %s: %w", cmd.Argv[0], err)
}
