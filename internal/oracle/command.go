package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const DefaultCommandTimeout = 2 * time.Minute

// Command generates by running an external program. The request is written
// to stdin as JSON and stdout is the generated text.
type Command struct {
	Command  string
	Args     []string
	UseShell bool
	Timeout  time.Duration
}

type Diagnostics struct {
	Stdout string
	Stderr string
}

type CommandError struct {
	Message string
	Cause   error
	Diag    Diagnostics
}

func (e CommandError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e CommandError) Unwrap() error {
	return e.Cause
}

// NewShellCommand runs line through sh -c.
func NewShellCommand(line string, timeout time.Duration) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}, fmt.Errorf("oracle command is empty")
	}
	return Command{Command: line, UseShell: true, Timeout: timeout}, nil
}

func (c Command) Generate(ctx context.Context, req Request) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload, err := json.Marshal(req)
	if err != nil {
		return "", CommandError{Message: "encode request", Cause: err}
	}

	var cmd *exec.Cmd
	if c.UseShell {
		cmd = exec.CommandContext(ctx, "sh", "-c", c.Command)
	} else {
		cmd = exec.CommandContext(ctx, c.Command, c.Args...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		diag := Diagnostics{Stdout: stdout.String(), Stderr: stderr.String()}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", CommandError{Message: "oracle command timed out", Cause: err, Diag: diag}
		}
		return "", CommandError{Message: "oracle command failed", Cause: err, Diag: diag}
	}
	return stdout.String(), nil
}
