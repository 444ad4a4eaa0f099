package toolchain

import (
	"context"
	"os"
	"regexp"
	"strings"

	"github.com/plang/ptool/internal/logging"
	"github.com/plang/ptool/internal/session"
)

// Output scraping patterns
var (
	// Compiler artifact lines: <model> -> <path>
	artifactLineRegex = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_.]*)\s*->\s*(\S.*?)\s*$`)

	// Checker test-case listing: one identifier per line
	testCaseRegex = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)
)

// FileExists is the default existence probe for scraped artifact paths.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ParseCompileOutput scrapes compiler output for artifact lines and returns
// the artifacts whose path ends in a known extension and exists on disk, in
// production order. It is safe on partial output from a failed compile:
// matches found there are still valid. The exists probe is injectable so
// tests run without a real toolchain.
func ParseCompileOutput(output string, exts []string, exists func(string) bool) []session.Artifact {
	if exists == nil {
		exists = FileExists
	}

	var artifacts []session.Artifact
	for _, line := range strings.Split(output, "\n") {
		m := artifactLineRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		model, path := m[1], m[2]
		if !hasAnySuffix(path, exts) {
			continue
		}
		if !exists(path) {
			logging.Debug("Skipping scraped artifact with missing file", "model", model, "path", path)
			continue
		}

		artifacts = append(artifacts, session.Artifact{Model: model, Path: path})
	}

	return artifacts
}

// ParseTestList parses checker output into test-case names, keeping only
// lines that look like plain identifiers so banners and progress lines
// fall out.
func ParseTestList(output string) []string {
	var cases []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if testCaseRegex.MatchString(line) {
			cases = append(cases, line)
		}
	}
	return cases
}

// ListTestCases runs the checker's test enumeration for an artifact and
// returns the discovered test cases. A missing artifact or a failed
// subprocess yields an empty list, never an error, so the calling prompt
// can degrade to free-text entry.
func ListTestCases(ctx context.Context, cfg Config, artifact string, run RunFunc) []string {
	if artifact == "" || !FileExists(artifact) {
		logging.Debug("Test lookup skipped: artifact not on disk", "artifact", artifact)
		return nil
	}
	if run == nil {
		run = Run
	}

	result, err := run(ctx, cfg.ListTestsArgs(artifact), nil)
	if err != nil || !result.Success() {
		logging.Debug("Test lookup failed", "artifact", artifact, "error", err, "exit_code", result.ExitCode)
		return nil
	}

	return ParseTestList(result.Output)
}

func hasAnySuffix(path string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
