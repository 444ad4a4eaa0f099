package prompt

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedInput feeds canned answers and records every ask.
type scriptedInput struct {
	answers []string
	asks    int
}

func (si *scriptedInput) Ask(step Step, options []string, lastErr error) (string, error) {
	if len(si.answers) == 0 {
		return "", ErrCancelled
	}
	si.asks++
	answer := si.answers[0]
	si.answers = si.answers[1:]
	return answer, nil
}

func TestValidateWholeNumber(t *testing.T) {
	accept := []string{"0", "1", "42", " 7 "}
	reject := []string{"", "abc", "3.5", "-1", "+3", "1e3", "  "}

	for _, v := range accept {
		if err := ValidateWholeNumber(v); err != nil {
			t.Errorf("ValidateWholeNumber(%q) = %v, want accept", v, err)
		}
	}
	for _, v := range reject {
		if err := ValidateWholeNumber(v); err == nil {
			t.Errorf("ValidateWholeNumber(%q) accepted, want reject", v)
		}
	}
}

func TestRunReasksUntilValid(t *testing.T) {
	var applied string
	in := &scriptedInput{answers: []string{"abc", "3.5", "42"}}

	steps := []Step{{
		Name:     "iterations",
		Prompt:   "Schedule iterations",
		Validate: ValidateWholeNumber,
		Apply:    func(v string) { applied = v },
	}}

	require.NoError(t, Run(steps, in))
	assert.Equal(t, "42", applied)
	assert.Equal(t, 3, in.asks, "invalid input must re-ask in place")
}

func TestRunCancelStopsPipeline(t *testing.T) {
	var applied []string
	in := &scriptedInput{answers: []string{"first"}}

	steps := []Step{
		{Name: "one", Apply: func(v string) { applied = append(applied, v) }},
		{Name: "two", Apply: func(v string) { applied = append(applied, v) }},
	}

	err := Run(steps, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCancelled))
	assert.Equal(t, []string{"first"}, applied, "steps after the cancel must not apply")
}

func TestRunEmptyInputUsesDefault(t *testing.T) {
	var applied string
	in := &scriptedInput{answers: []string{""}}

	steps := []Step{{
		Name:     "iterations",
		Default:  "1",
		Validate: ValidateWholeNumber,
		Apply:    func(v string) { applied = v },
	}}

	require.NoError(t, Run(steps, in))
	assert.Equal(t, "1", applied)
}

func TestReaderInputNumberSelectsOption(t *testing.T) {
	in := NewReaderInput(strings.NewReader("2\n"), &strings.Builder{})

	value, err := in.Ask(Step{Prompt: "Test case"}, []string{"tcOne", "tcTwo"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "tcTwo", value)
}

func TestReaderInputFreeTextFallback(t *testing.T) {
	// With no options the prompt accepts free text, so an empty test-case
	// list still lets the user type a name.
	in := NewReaderInput(strings.NewReader("tcManual\n"), &strings.Builder{})

	value, err := in.Ask(Step{Prompt: "Test case"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "tcManual", value)
}

func TestReaderInputEOFCancels(t *testing.T) {
	in := NewReaderInput(strings.NewReader(""), &strings.Builder{})

	_, err := in.Ask(Step{Prompt: "Test case"}, nil, nil)
	assert.True(t, errors.Is(err, ErrCancelled))
}

func TestReaderInputShowsValidationError(t *testing.T) {
	var out strings.Builder
	in := NewReaderInput(strings.NewReader("1\n"), &out)

	_, err := in.Ask(Step{Prompt: "Iterations"}, nil, errors.New("\"abc\" is not a whole number"))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "not a whole number")
}
