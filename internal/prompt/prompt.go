// Package prompt implements the multi-step input pipeline shared by the
// interactive commands. Each step declares its input contract (prompt,
// optional selectable options, validator); invalid input re-asks in place
// and a step can only complete with a value its validator accepts. The
// pipeline runs against an Input, so tests drive it headlessly.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrCancelled aborts a pipeline without applying the current step.
var ErrCancelled = errors.New("prompt cancelled")

// Step is one prompt in a pipeline.
type Step struct {
	Name    string
	Prompt  string
	Default string

	// Options supplies a selectable list. Nil or an empty result degrades
	// the step to free-text entry.
	Options func() []string

	// Validate rejects input with a reason; nil accepts anything.
	Validate func(value string) error

	// Apply consumes the accepted value.
	Apply func(value string)
}

// Input supplies answers to pipeline steps. lastErr carries the previous
// attempt's validation failure so interactive inputs can show it.
type Input interface {
	Ask(step Step, options []string, lastErr error) (string, error)
}

// Run executes the steps in order. Validation failures re-ask the same
// step; an Input error cancels the whole pipeline and no later step's
// Apply runs.
func Run(steps []Step, in Input) error {
	for _, step := range steps {
		var options []string
		if step.Options != nil {
			options = step.Options()
		}

		var lastErr error
		for {
			value, err := in.Ask(step, options, lastErr)
			if err != nil {
				return fmt.Errorf("step %s: %w", step.Name, err)
			}
			if value == "" {
				value = step.Default
			}

			if step.Validate != nil {
				if err := step.Validate(value); err != nil {
					lastErr = err
					continue
				}
			}

			if step.Apply != nil {
				step.Apply(value)
			}
			break
		}
	}
	return nil
}

// ValidateWholeNumber accepts only base-10 whole numbers: "0", "1", "42".
// Fractions, signs, words, and empty input are rejected.
func ValidateWholeNumber(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errors.New("a whole number is required")
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 || strings.HasPrefix(value, "+") {
		return fmt.Errorf("%q is not a whole number", value)
	}
	return nil
}

// ValidateNonEmpty rejects blank input.
func ValidateNonEmpty(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("a value is required")
	}
	return nil
}

// ValidateFileExists rejects paths that do not point at a regular file.
func ValidateFileExists(value string) error {
	info, err := os.Stat(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("file not found: %s", value)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", value)
	}
	return nil
}

// ReaderInput asks on a writer and reads answers line by line, numbering
// options for quick selection. EOF cancels.
type ReaderInput struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewReaderInput creates an Input over an io.Reader / io.Writer pair.
func NewReaderInput(r io.Reader, w io.Writer) *ReaderInput {
	return &ReaderInput{scanner: bufio.NewScanner(r), out: w}
}

// Ask prints the prompt (and numbered options, when present), then reads
// one line. A number selecting an option resolves to the option's value;
// anything else passes through as free text.
func (ri *ReaderInput) Ask(step Step, options []string, lastErr error) (string, error) {
	if lastErr != nil {
		fmt.Fprintf(ri.out, "  %v\n", lastErr)
	}

	for i, opt := range options {
		fmt.Fprintf(ri.out, "  %d) %s\n", i+1, opt)
	}

	if step.Default != "" {
		fmt.Fprintf(ri.out, "%s [%s]: ", step.Prompt, step.Default)
	} else {
		fmt.Fprintf(ri.out, "%s: ", step.Prompt)
	}

	if !ri.scanner.Scan() {
		return "", ErrCancelled
	}
	value := strings.TrimSpace(ri.scanner.Text())

	if len(options) > 0 {
		if n, err := strconv.Atoi(value); err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
	}

	return value, nil
}
