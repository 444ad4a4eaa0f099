package validation

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/plang/ptool/internal/toolchain"
)

// ValidationError represents a configuration validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Rule    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// ValidationResult holds the results of configuration validation
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []string
}

// AddError adds a validation error
func (vr *ValidationResult) AddError(field string, value interface{}, rule string, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	})
}

// AddWarning adds a validation warning
func (vr *ValidationResult) AddWarning(message string) {
	vr.Warnings = append(vr.Warnings, message)
}

// ConfigValidator validates tool configuration and run parameters before a
// subprocess is spawned.
type ConfigValidator struct{}

// NewConfigValidator creates a new configuration validator
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateCompileRun checks everything a compile invocation needs.
func (cv *ConfigValidator) ValidateCompileRun(cfg toolchain.Config, projectFile string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if projectFile == "" {
		result.AddError("project", projectFile, "required", "project file path is empty")
	} else if info, err := os.Stat(projectFile); err != nil {
		result.AddError("project", projectFile, "exists", "project file does not exist")
	} else if info.IsDir() {
		result.AddError("project", projectFile, "file", "project path is a directory")
	} else if !strings.HasSuffix(projectFile, ".pproj") {
		result.AddWarning(fmt.Sprintf("project file %s does not use the .pproj extension", projectFile))
	}

	cv.validateTool(result, "compiler", cfg.Compiler)
	return result
}

// ValidateCheckRun checks everything a checker invocation needs.
func (cv *ConfigValidator) ValidateCheckRun(cfg toolchain.Config, artifact, testCase string, iterations int) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if artifact == "" {
		result.AddError("artifact", artifact, "required", "compiled artifact path is empty; compile first or pass one explicitly")
	} else if !toolchain.FileExists(artifact) {
		result.AddError("artifact", artifact, "exists", "compiled artifact does not exist")
	} else if !hasAnySuffix(artifact, cfg.ArtifactExts) {
		result.AddWarning(fmt.Sprintf("artifact %s does not use a known artifact extension %v", artifact, cfg.ArtifactExts))
	}

	if testCase == "" {
		result.AddError("test_case", testCase, "required", "test-case name is empty")
	}

	if iterations < 0 {
		result.AddError("iterations", iterations, "range", "schedule iterations must be a whole number")
	}

	cv.validateTool(result, "checker", cfg.Checker)
	return result
}

// validateTool warns when a tool executable cannot be found. A missing tool
// is a warning, not an error: the subprocess spawn reports the authoritative
// failure and PATH may differ at run time.
func (cv *ConfigValidator) validateTool(result *ValidationResult, field, tool string) {
	if tool == "" {
		result.AddError(field, tool, "required", "tool executable name is empty")
		return
	}

	if strings.ContainsRune(tool, filepath.Separator) {
		if !toolchain.FileExists(tool) {
			result.AddWarning(fmt.Sprintf("%s %s not found on disk", field, tool))
		}
		return
	}

	if _, err := exec.LookPath(tool); err != nil {
		result.AddWarning(fmt.Sprintf("%s %s not found in PATH", field, tool))
	}
}

func hasAnySuffix(path string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
