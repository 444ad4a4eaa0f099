package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/plang/ptool/internal/styles"
	"github.com/plang/ptool/internal/utils"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage ptool configuration files and settings",
	Long: `Manage configuration files and settings for ptool.

Configuration files are searched in this order:
1. ./.ptool.yaml (project config)
2. ~/.ptool.yaml (user config)
3. /etc/ptool/.ptool.yaml (system config)

Environment variables (PTOOL_*) override config file values.
Command-line flags override both config files and environment variables.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// configInitCmd creates a sample configuration file
var configInitCmd = &cobra.Command{
	Use:   "init [config-file]",
	Short: "Create a sample configuration file",
	Long: `Generate a sample configuration file with all available options.

If no file is specified, creates ~/.ptool.yaml in the user's home directory.

Examples:
  ptool config init                # Create ~/.ptool.yaml
  ptool config init .ptool.yaml    # Create local project config`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var configPath string
		if len(args) > 0 {
			configPath = args[0]
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				utils.FatalError(err, "determining home directory")
			}
			configPath = filepath.Join(home, ".ptool.yaml")
		}

		absPath, err := filepath.Abs(configPath)
		if err != nil {
			utils.FatalError(err, "resolving config path")
		}

		if _, err := os.Stat(absPath); err == nil {
			utils.ValidationError(fmt.Errorf("config file already exists: %s", absPath))
		}

		if err := os.WriteFile(absPath, []byte(sampleConfig), 0644); err != nil {
			utils.FileSystemError("write", absPath, err)
		}

		fmt.Printf("Sample configuration written to %s\n", absPath)
	},
}

// configShowCmd displays the resolved configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	Long: `Show every configuration value after merging defaults, the config
file, environment variables, and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		styles.PrintStyledln(os.Stdout, styles.HeaderStyle, "Resolved configuration")

		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Printf("  config file: %s\n\n", styles.ValueStyle.Render(used))
		} else {
			fmt.Printf("  config file: %s\n\n", styles.DescriptionStyle.Render("(none found)"))
		}

		for _, key := range []string{"log_level", "project", "compiler", "checker", "artifact", "test_case", "iterations", "artifact_exts"} {
			value := viper.Get(key)
			if value == nil || value == "" {
				fmt.Printf("  %-14s %s\n", key, styles.DescriptionStyle.Render("(unset)"))
				continue
			}
			fmt.Printf("  %-14s %s\n", key, styles.KeyStyle.Render(strings.TrimSpace(fmt.Sprintf("%v", value))))
		}
	},
}

const sampleConfig = `# ptool configuration
#
# Every key can also be set through a PTOOL_* environment variable,
# e.g. PTOOL_COMPILER overrides "compiler".

# Logging level: trace, debug, info, warn, error
log_level: info

# Default project file for compile. When unset, a single *.pproj file in
# the working directory is discovered automatically.
# project: ClientServer.pproj

# Toolchain executables.
# compiler: pc
# checker: coyote

# Extensions recognized as compiled artifacts in compiler output.
# artifact_exts:
#   - .dll

# Default schedule iterations for check.
# iterations: 100
`

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
