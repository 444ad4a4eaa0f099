package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/plang/ptool/internal/logging"
	"github.com/plang/ptool/internal/params"
	"github.com/plang/ptool/internal/session"
	"github.com/plang/ptool/internal/toolchain"
)

var (
	cfgFile  string
	logLevel string

	// Shared session for the subcommands that run the toolchain
	currentSession *session.Session
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ptool",
	Short: "ptool is language support and a toolchain front end for P",
	Long: `ptool bundles editor-style language support for the P model-checker
language (syntax highlighting, snippets, grammar generation) with a
front end over the P compiler and the coyote model checker.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Default to info level if not specified
		if logLevel == "" {
			logLevel = "info"
		}

		logging.InitWithLevel(logLevel)
		logging.Debug("Logging initialized", "level", logLevel)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig, initSession)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ptool.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initSession creates the process-wide session that the toolchain commands
// share, so a compile followed by a check carries its artifact selection.
func initSession() {
	if currentSession == nil {
		currentSession = session.New()
		logging.Debug("Session initialized")
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Set environment variable prefix for our app
	viper.SetEnvPrefix("PTOOL")

	// Enable automatic environment variable binding (PTOOL_PROJECT, PTOOL_COMPILER, etc.)
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("log_level", "info")
	viper.SetDefault("iterations", params.DefaultIterations)

	// Config file setup
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in standard locations

		// 1. Current directory
		viper.AddConfigPath(".")

		// 2. User's home directory
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home))
		}

		// 3. System config directories
		viper.AddConfigPath("/etc/ptool")

		// Set config name and type
		viper.SetConfigType("yaml")
		viper.SetConfigName(".ptool")
	}

	// Read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error occurred
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
		// It's okay if no config file is found - we'll use defaults and env vars
	}

	// Update variables from viper
	if logLevel == "" {
		logLevel = viper.GetString("log_level")
	}
}

// toolConfig builds the toolchain configuration from config and environment.
// This centralizes the common pattern used across the compile, check, tests,
// and menu commands.
func toolConfig() toolchain.Config {
	return params.NewParameterResolver().ResolveToolConfig()
}
