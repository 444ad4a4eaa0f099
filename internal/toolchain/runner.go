package toolchain

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/plang/ptool/internal/logging"
)

// Result is the outcome of one subprocess run. Output holds everything the
// process wrote, including partial output from failed runs, because the
// artifact scrape is strictly additive and still applies to it.
type Result struct {
	Output   string
	ExitCode int
	Duration time.Duration
}

// Success reports whether the subprocess exited cleanly.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// LineFunc receives each output line as the subprocess produces it.
type LineFunc func(line string)

// RunFunc is the subprocess-spawning contract, split out so tests and the
// test-case lookup can substitute a canned runner.
type RunFunc func(ctx context.Context, argv []string, onLine LineFunc) (Result, error)

// Run spawns one subprocess, streaming combined stdout and stderr line by
// line to onLine while collecting the full output. A non-zero exit is not
// an error here: the exit status lands in Result and the caller decides.
// Cancelling the context kills the child process.
func Run(ctx context.Context, argv []string, onLine LineFunc) (Result, error) {
	if len(argv) == 0 {
		return Result{}, errors.New("empty command line")
	}

	logging.Debug("Spawning subprocess", "argv", strings.Join(argv, " "))
	start := time.Now()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pw.Close()
		pr.Close()
		return Result{}, fmt.Errorf("starting %s: %w", argv[0], err)
	}

	var output strings.Builder
	scanned := make(chan struct{})
	go func() {
		defer close(scanned)
		scanner := bufio.NewScanner(pr)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			output.WriteString(line)
			output.WriteByte('\n')
			if onLine != nil {
				onLine(line)
			}
		}
	}()

	waitErr := cmd.Wait()
	pw.Close()
	<-scanned
	pr.Close()

	result := Result{
		Output:   output.String(),
		Duration: time.Since(start),
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		logging.Debug("Subprocess exited with failure", "exit_code", result.ExitCode)
		return result, nil
	}

	logging.Debug("Subprocess completed", "duration", result.Duration)
	return result, nil
}
