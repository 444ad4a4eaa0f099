package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plang/ptool/internal/toolchain"
)

func writeFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestValidateCompileRun(t *testing.T) {
	cfg := toolchain.DefaultConfig()
	validator := NewConfigValidator()

	t.Run("valid project file", func(t *testing.T) {
		project := writeFile(t, "Demo.pproj")
		result := validator.ValidateCompileRun(cfg, project)
		if !result.Valid {
			t.Errorf("expected valid, got errors: %v", result.Errors)
		}
	})

	t.Run("missing project file", func(t *testing.T) {
		result := validator.ValidateCompileRun(cfg, "/nope/Demo.pproj")
		if result.Valid {
			t.Errorf("expected invalid for missing project file")
		}
	})

	t.Run("empty project file", func(t *testing.T) {
		result := validator.ValidateCompileRun(cfg, "")
		if result.Valid {
			t.Errorf("expected invalid for empty project file")
		}
	})

	t.Run("odd extension warns but passes", func(t *testing.T) {
		project := writeFile(t, "Demo.proj")
		result := validator.ValidateCompileRun(cfg, project)
		if !result.Valid {
			t.Errorf("unexpected errors: %v", result.Errors)
		}
		if len(result.Warnings) == 0 {
			t.Errorf("expected extension warning")
		}
	})
}

func TestValidateCheckRun(t *testing.T) {
	cfg := toolchain.DefaultConfig()
	validator := NewConfigValidator()
	artifact := writeFile(t, "Demo.dll")

	t.Run("valid parameters", func(t *testing.T) {
		result := validator.ValidateCheckRun(cfg, artifact, "tcBasic", 100)
		if !result.Valid {
			t.Errorf("expected valid, got errors: %v", result.Errors)
		}
	})

	t.Run("missing artifact", func(t *testing.T) {
		result := validator.ValidateCheckRun(cfg, "/nope/Demo.dll", "tcBasic", 100)
		if result.Valid {
			t.Errorf("expected invalid for missing artifact")
		}
	})

	t.Run("empty test case", func(t *testing.T) {
		result := validator.ValidateCheckRun(cfg, artifact, "", 100)
		if result.Valid {
			t.Errorf("expected invalid for empty test case")
		}
	})

	t.Run("negative iterations", func(t *testing.T) {
		result := validator.ValidateCheckRun(cfg, artifact, "tcBasic", -1)
		if result.Valid {
			t.Errorf("expected invalid for negative iterations")
		}
	})
}
