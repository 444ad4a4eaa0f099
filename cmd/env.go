package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/plang/ptool/internal/params"
	"github.com/plang/ptool/internal/styles"
	"github.com/plang/ptool/internal/toolchain"
)

// EnvVar represents an environment variable with its metadata
type EnvVar struct {
	Name         string
	Description  string
	DefaultValue string
	Category     string
	CurrentValue string
	IsSet        bool
}

// envCmd represents the env command
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Display environment variable configuration",
	Long: `Display all supported PTOOL_* environment variables with their current
values and descriptions.

Environment variables override config file values but are overridden by
command-line flags and arguments.`,
	Run: func(cmd *cobra.Command, args []string) {
		displayEnvironmentVariables()
	},
}

func init() {
	rootCmd.AddCommand(envCmd)
}

// getAllEnvVars returns all supported environment variables with metadata
func getAllEnvVars() []EnvVar {
	defaults := toolchain.DefaultConfig()

	envVars := []EnvVar{
		// Core Configuration
		{
			Name:         "PTOOL_LOG_LEVEL",
			Description:  "Logging level (trace, debug, info, warn, error)",
			DefaultValue: "info",
			Category:     "Core",
		},
		{
			Name:         "PTOOL_PROJECT",
			Description:  "Default project file for compile",
			DefaultValue: "(discovered from *.pproj)",
			Category:     "Core",
		},

		// Toolchain Configuration
		{
			Name:         "PTOOL_COMPILER",
			Description:  "Compiler executable",
			DefaultValue: defaults.Compiler,
			Category:     "Toolchain",
		},
		{
			Name:         "PTOOL_CHECKER",
			Description:  "Model checker executable",
			DefaultValue: defaults.Checker,
			Category:     "Toolchain",
		},
		{
			Name:         "PTOOL_ARTIFACT",
			Description:  "Default compiled artifact for check and tests",
			DefaultValue: "(last compile)",
			Category:     "Toolchain",
		},
		{
			Name:         "PTOOL_TEST_CASE",
			Description:  "Default test case for check",
			DefaultValue: "(none)",
			Category:     "Toolchain",
		},
		{
			Name:         "PTOOL_ITERATIONS",
			Description:  "Default schedule iterations for check",
			DefaultValue: strconv.Itoa(params.DefaultIterations),
			Category:     "Toolchain",
		},
	}

	for i := range envVars {
		value, isSet := os.LookupEnv(envVars[i].Name)
		envVars[i].CurrentValue = value
		envVars[i].IsSet = isSet
	}

	return envVars
}

// displayEnvironmentVariables prints the variables grouped by category
func displayEnvironmentVariables() {
	envVars := getAllEnvVars()

	var lastCategory string
	for _, ev := range envVars {
		if ev.Category != lastCategory {
			if lastCategory != "" {
				fmt.Println()
			}
			styles.PrintStyledln(os.Stdout, styles.HeaderStyle, ev.Category)
			lastCategory = ev.Category
		}

		fmt.Printf("  %s\n", styles.KeyStyle.Render(ev.Name))
		fmt.Printf("    %s\n", styles.DescriptionStyle.Render(ev.Description))
		if ev.IsSet {
			fmt.Printf("    current: %s\n", styles.ValueStyle.Render(ev.CurrentValue))
		} else {
			fmt.Printf("    default: %s\n", styles.DescriptionStyle.Render(ev.DefaultValue))
		}
	}
}
