package paymenter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// StepResult is the normalized outcome of one external-command invocation.
// Failure is always expressed here, never as a Go error escaping the runner:
// a missing binary, a spawn failure and a non-zero exit all land in OK=false.
type StepResult struct {
	OK       bool
	ExitCode int
	Message  string
}

func okResult() StepResult {
	return StepResult{OK: true}
}

func failResult(code int, format string, args ...any) StepResult {
	return StepResult{OK: false, ExitCode: code, Message: fmt.Sprintf(format, args...)}
}

// Runner shells out to the host's external tools. Success and failure are
// decided by exit code alone, never by parsing output.
type Runner struct {
	log *Logger
	env []string
}

func NewRunner(log *Logger) *Runner {
	return &Runner{log: log}
}

// WithEnv returns a runner whose children get extra environment entries on
// top of the current process environment.
func (r *Runner) WithEnv(kv ...string) *Runner {
	return &Runner{log: r.log, env: append(append([]string{}, r.env...), kv...)}
}

// Run executes a command streaming its output into the log sink.
func (r *Runner) Run(name string, args ...string) StepResult {
	return r.run(name, args, nil, r.log.Writer())
}

// RunInput executes a command feeding data on stdin. Used for SQL statements
// so credentials never appear in a command line.
func (r *Runner) RunInput(stdin string, name string, args ...string) StepResult {
	return r.run(name, args, strings.NewReader(stdin), r.log.Writer())
}

// RunCapture executes a command and returns its combined output alongside the
// result.
func (r *Runner) RunCapture(name string, args ...string) (string, StepResult) {
	var buf bytes.Buffer
	res := r.run(name, args, nil, &buf)
	return buf.String(), res
}

// RunInteractive attaches the operator's terminal to the child. Used only for
// the target application's own interactive prompts (admin account creation).
func (r *Runner) RunInteractive(name string, args ...string) StepResult {
	r.log.Infof("exec (interactive): %s %s", name, strings.Join(args, " "))
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), r.env...)
	return r.finish(name, cmd.Run())
}

// RunTo executes a command with stdout redirected to the given writer and
// stderr into the log sink. Used for database dumps.
func (r *Runner) RunTo(out io.Writer, name string, args ...string) StepResult {
	r.log.Infof("exec: %s %s", name, strings.Join(args, " "))
	cmd := exec.Command(name, args...)
	cmd.Stdout = out
	cmd.Stderr = r.log.Writer()
	cmd.Env = append(os.Environ(), r.env...)
	return r.finish(name, cmd.Run())
}

func (r *Runner) run(name string, args []string, stdin io.Reader, out io.Writer) StepResult {
	r.log.Infof("exec: %s %s", name, strings.Join(args, " "))
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = out
	cmd.Stderr = out
	cmd.Env = append(os.Environ(), r.env...)
	return r.finish(name, cmd.Run())
}

func (r *Runner) finish(name string, err error) StepResult {
	if err == nil {
		r.log.Infof("ok: %s", name)
		return okResult()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res := failResult(exitErr.ExitCode(), "%s exited with status %d", name, exitErr.ExitCode())
		r.log.Errorf("%s", res.Message)
		return res
	}

	// Spawn failure or missing binary; no exit code exists, use -1.
	res := failResult(-1, "%s could not be started: %v", name, err)
	r.log.Errorf("%s", res.Message)
	return res
}
