// Package toolchain builds and runs P compiler and model-checker command
// lines and parses their output.
package toolchain

import (
	"fmt"
	"strconv"
)

// Config names the external tools and the artifact extensions their output
// is trusted to produce.
type Config struct {
	Compiler     string
	Checker      string
	ArtifactExts []string
}

// DefaultConfig returns the stock tool configuration.
func DefaultConfig() Config {
	return Config{
		Compiler:     "pc",
		Checker:      "coyote",
		ArtifactExts: []string{".dll"},
	}
}

// CompileArgs builds the compiler invocation for a project file:
// <compiler> -proj:<project-file>
func (c Config) CompileArgs(projectFile string) []string {
	return []string{c.Compiler, "-proj:" + projectFile}
}

// CheckArgs builds the checker invocation for one test-case run:
// <checker> test <artifact> -m <test-case> -i <iterations>
func (c Config) CheckArgs(artifact, testCase string, iterations int) []string {
	return []string{
		c.Checker, "test", artifact,
		"-m", testCase,
		"-i", strconv.Itoa(iterations),
	}
}

// ListTestsArgs builds the checker invocation that enumerates the test
// cases registered in an artifact: <checker> test <artifact>
func (c Config) ListTestsArgs(artifact string) []string {
	return []string{c.Checker, "test", artifact}
}

// Describe renders an argv for logging and the results view header.
func Describe(argv []string) string {
	out := ""
	for i, a := range argv {
		if i > 0 {
			out += " "
		}
		out += a
	}
	return fmt.Sprintf("$ %s", out)
}
