package params

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"

	"github.com/plang/ptool/internal/session"
	"github.com/plang/ptool/internal/toolchain"
)

// DefaultIterations is the schedule-iteration count used when nothing
// overrides it.
const DefaultIterations = 1

// ParameterResolver handles resolution of common parameters from multiple sources
type ParameterResolver struct {
	// Sources in priority order: CLI args > flags > env vars > config > defaults
}

// NewParameterResolver creates a new parameter resolver
func NewParameterResolver() *ParameterResolver {
	return &ParameterResolver{}
}

// ParameterInfo provides information about where a parameter came from
type ParameterInfo struct {
	Value  string
	Source string // "argument", "environment", "session", "discovered", "default"
}

// ResolveProjectFile resolves the project file from arguments, environment,
// or by discovering a single .pproj file in the working directory.
// Priority: explicit argument > PTOOL_PROJECT env var / config > discovery > error
func (r *ParameterResolver) ResolveProjectFile(args []string, argIndex int) (string, error) {
	info, err := r.ResolveProjectFileWithInfo(args, argIndex)
	return info.Value, err
}

// ResolveProjectFileWithInfo returns the project file and source information
func (r *ParameterResolver) ResolveProjectFileWithInfo(args []string, argIndex int) (ParameterInfo, error) {
	// 1. Explicit argument (highest priority)
	if argIndex >= 0 && argIndex < len(args) && args[argIndex] != "" {
		return ParameterInfo{Value: args[argIndex], Source: "argument"}, nil
	}

	// 2. Environment variable or config file
	if viper.IsSet("project") {
		project := viper.GetString("project")
		if project != "" {
			return ParameterInfo{Value: project, Source: "environment"}, nil
		}
	}

	// 3. Discovery: exactly one project file in the working directory
	matches, err := filepath.Glob("*.pproj")
	if err == nil && len(matches) > 0 {
		sort.Strings(matches)
		return ParameterInfo{Value: matches[0], Source: "discovered"}, nil
	}

	return ParameterInfo{}, fmt.Errorf("project file is required: provide as argument or set PTOOL_PROJECT")
}

// ResolveArtifact resolves the compiled artifact path.
// Priority: explicit argument > PTOOL_ARTIFACT env var / config > session selection > empty
func (r *ParameterResolver) ResolveArtifact(args []string, argIndex int, sess *session.Session) string {
	if argIndex >= 0 && argIndex < len(args) && args[argIndex] != "" {
		return args[argIndex]
	}

	if viper.IsSet("artifact") {
		artifact := viper.GetString("artifact")
		if artifact != "" {
			return artifact
		}
	}

	if sess != nil {
		return sess.Artifact
	}
	return ""
}

// ResolveTestCase resolves the test-case name.
// Priority: flag value > PTOOL_TEST_CASE env var / config > empty
func (r *ParameterResolver) ResolveTestCase(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if viper.IsSet("test_case") {
		testCase := viper.GetString("test_case")
		if testCase != "" {
			return testCase
		}
	}
	return ""
}

// ResolveIterations resolves the schedule-iteration count.
// Priority: flag value (when changed from default) > PTOOL_ITERATIONS env var / config > default
func (r *ParameterResolver) ResolveIterations(flagValue int) int {
	if flagValue != DefaultIterations {
		return flagValue
	}

	if viper.IsSet("iterations") {
		iterations := viper.GetInt("iterations")
		if iterations > 0 {
			return iterations
		}
	}
	return DefaultIterations
}

// ResolveToolConfig builds the toolchain configuration from config and
// environment, falling back to the stock tool names.
func (r *ParameterResolver) ResolveToolConfig() toolchain.Config {
	cfg := toolchain.DefaultConfig()

	if viper.IsSet("compiler") {
		if compiler := viper.GetString("compiler"); compiler != "" {
			cfg.Compiler = compiler
		}
	}
	if viper.IsSet("checker") {
		if checker := viper.GetString("checker"); checker != "" {
			cfg.Checker = checker
		}
	}
	if viper.IsSet("artifact_exts") {
		if exts := viper.GetStringSlice("artifact_exts"); len(exts) > 0 {
			cfg.ArtifactExts = exts
		}
	}

	return cfg
}
