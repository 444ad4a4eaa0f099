// Package utils holds the shared error-exit helpers the commands use so
// failures report and exit the same way everywhere.
package utils

import (
	"fmt"
	"os"

	"github.com/plang/ptool/internal/logging"
)

// ErrorExitCode represents different types of errors with their exit codes
type ErrorExitCode int

const (
	ExitCodeGeneral    ErrorExitCode = 1
	ExitCodeValidation ErrorExitCode = 1
	ExitCodeToolchain  ErrorExitCode = 2
	ExitCodeFileSystem ErrorExitCode = 3
)

// FatalError handles fatal errors with consistent logging and exit behavior
func FatalError(err error, context string) {
	logging.Error(fmt.Sprintf("%s: %v", context, err))
	os.Exit(int(ExitCodeGeneral))
}

// FatalErrorWithCode handles fatal errors with specific exit codes
func FatalErrorWithCode(err error, context string, exitCode ErrorExitCode) {
	logging.Error(fmt.Sprintf("%s: %v", context, err))
	os.Exit(int(exitCode))
}

// ValidationError handles argument validation errors
func ValidationError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(int(ExitCodeValidation))
}

// ToolchainError handles compiler and checker invocation failures
func ToolchainError(tool string, err error) {
	logging.Error(fmt.Sprintf("Failed to run %s: %v", tool, err))
	os.Exit(int(ExitCodeToolchain))
}

// FileSystemError handles file operation errors
func FileSystemError(operation string, path string, err error) {
	logging.Error(fmt.Sprintf("Failed to %s '%s': %v", operation, path, err))
	os.Exit(int(ExitCodeFileSystem))
}

// WarnOnError logs a warning for non-fatal errors
func WarnOnError(err error, context string) {
	if err != nil {
		logging.Warn(fmt.Sprintf("%s: %v", context, err))
	}
}

// CheckError is a convenience function for common error checking patterns
func CheckError(err error, context string) {
	if err != nil {
		FatalError(err, context)
	}
}
