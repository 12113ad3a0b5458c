package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/atomic"
)

// DefaultTimeout bounds a single engine invocation.
const DefaultTimeout = 5 * time.Second

// baseArgs select deterministic, non-interactive, terse output without
// currency lookups (which would hit the network).
var baseArgs = []string{"-defaults", "-nocurrencies", "-terse"}

// Evaluator runs one qalc process per query and returns its first line.
// The timeout may be changed while queries are running.
type Evaluator struct {
	Logger  *slog.Logger
	timeout atomic.Duration

	// commandContext is overridable for testing.
	commandContext func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewEvaluator creates an Evaluator. A non-positive timeout means DefaultTimeout.
func NewEvaluator(timeout time.Duration, logger *slog.Logger) *Evaluator {
	e := &Evaluator{
		Logger:         logger,
		commandContext: exec.CommandContext,
	}
	e.SetTimeout(timeout)
	return e
}

// Timeout returns the per-invocation time limit.
func (e *Evaluator) Timeout() time.Duration { return e.timeout.Load() }

// SetTimeout changes the limit for invocations started afterwards. A
// non-positive timeout means DefaultTimeout.
func (e *Evaluator) SetTimeout(timeout time.Duration) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	e.timeout.Store(timeout)
}

// Evaluate runs the engine at enginePath on query. ok is false when the
// engine closed stdout without writing anything; an empty line is returned
// as ("", true, nil). Once ctx is done or the timeout expires the call
// returns promptly, even if a process started by the engine keeps stdout open.
func (e *Evaluator) Evaluate(ctx context.Context, enginePath, query string) (line string, ok bool, err error) {
	if enginePath == "" {
		return "", false, ErrEngineUnavailable
	}

	timeout := e.Timeout()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := Args(query)
	e.Logger.Debug("running qalc", "cmd", CommandLine(enginePath, query))

	// The read end is ours so it can be closed on expiry; a pipe from
	// StdoutPipe is only closed by Wait, which runs after the read.
	stdout, stdoutW, err := os.Pipe()
	if err != nil {
		return "", false, fmt.Errorf("%w: stdout pipe: %w", ErrInvocationFailed, err)
	}
	defer func() { _ = stdout.Close() }()

	cmd := e.commandContext(ctx, enginePath, args...)
	cmd.Stdout = stdoutW
	cmd.WaitDelay = time.Second

	err = cmd.Start()
	_ = stdoutW.Close()
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrInvocationFailed, err)
	}

	read := make(chan firstLine, 1)
	go func() { read <- readFirstLine(stdout) }()

	var first firstLine
	select {
	case first = <-read:
	case <-ctx.Done():
		_ = stdout.Close()
		first = <-read
	}
	ctxErr := ctx.Err()

	// The first line is all we want; stop the process if it is still talking
	// and reap it. The exit status is deliberately ignored.
	cancel()
	_ = cmd.Wait()

	switch {
	case first.complete:
		return first.text, true, nil
	case errors.Is(ctxErr, context.DeadlineExceeded):
		return "", false, fmt.Errorf("%w after %s", ErrTimeout, timeout)
	case ctxErr != nil:
		return "", false, fmt.Errorf("%w: %w", ErrInvocationFailed, ctxErr)
	case first.err != nil:
		return "", false, fmt.Errorf("%w: reading output: %w", ErrInvocationFailed, first.err)
	case first.ok:
		return first.text, true, nil
	}
	return "", false, nil
}

// Args returns the engine arguments for query. The query is a single argv
// element, so no shell quoting is involved.
func Args(query string) []string {
	return append(append([]string(nil), baseArgs...), query)
}

// CommandLine renders the invocation the way a command shell would see it,
// with the query double-quoted and embedded quotes escaped.
func CommandLine(enginePath, query string) string {
	return enginePath + " " + strings.Join(baseArgs, " ") + " " + quoteArg(query)
}

func quoteArg(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// firstLine is what readFirstLine saw before the first newline.
type firstLine struct {
	text string
	// ok is false only when the reader ended before producing a single byte.
	ok bool
	// complete is true when text was terminated by a newline.
	complete bool
	err      error
}

func readFirstLine(r io.Reader) firstLine {
	text, err := bufio.NewReader(r).ReadString('\n')
	switch {
	case err == nil:
		return firstLine{text: trimEOL(text), ok: true, complete: true}
	case errors.Is(err, io.EOF) || errors.Is(err, fs.ErrClosed):
		return firstLine{text: trimEOL(text), ok: text != ""}
	case text == "":
		return firstLine{err: err}
	}
	return firstLine{text: trimEOL(text), ok: true}
}

func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
