package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/plang/ptool/internal/logging"
	"github.com/plang/ptool/internal/params"
	"github.com/plang/ptool/internal/prompt"
	"github.com/plang/ptool/internal/session"
	"github.com/plang/ptool/internal/toolchain"
	"github.com/plang/ptool/internal/utils"
	"github.com/plang/ptool/internal/validation"
)

var (
	checkTestCase   string
	checkIterations int
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [artifact]",
	Short: "Run the model checker against a compiled artifact",
	Long: `Run the model checker against a compiled artifact for one test case.

The artifact can be provided as an argument, set via the PTOOL_ARTIFACT
environment variable, or carried over from a previous compile in the same
session. When no test case is given, the available test cases are listed
and asked for interactively.

Examples:
  # Explicit artifact and test case
  ptool check out/ClientServer.dll -t tcSingleClient -i 100

  # Artifact from the last compile
  ptool compile && ptool check -t tcSingleClient`,
	Args: cobra.RangeArgs(0, 1),
	Run: func(cmd *cobra.Command, args []string) {
		resolver := params.NewParameterResolver()
		cfg := toolConfig()

		artifact := resolver.ResolveArtifact(args, 0, currentSession)
		testCase := resolver.ResolveTestCase(checkTestCase)
		iterations := resolver.ResolveIterations(checkIterations)

		// Ask for whatever is still missing
		var steps []prompt.Step
		if artifact == "" {
			steps = append(steps, prompt.Step{
				Name:     "artifact",
				Prompt:   "Artifact",
				Validate: prompt.ValidateFileExists,
				Apply:    func(v string) { artifact = v },
			})
		}
		if testCase == "" {
			steps = append(steps, prompt.Step{
				Name:   "test-case",
				Prompt: "Test case",
				Options: func() []string {
					return toolchain.ListTestCases(cmd.Context(), cfg, artifact, nil)
				},
				Validate: prompt.ValidateNonEmpty,
				Apply:    func(v string) { testCase = v },
			})
		}
		if len(steps) > 0 {
			in := prompt.NewReaderInput(os.Stdin, os.Stderr)
			if err := prompt.Run(steps, in); err != nil {
				utils.ValidationError(err)
			}
		}

		result := validation.NewConfigValidator().ValidateCheckRun(cfg, artifact, testCase, iterations)
		for _, warning := range result.Warnings {
			logging.Warn(warning)
		}
		if !result.Valid {
			utils.ValidationError(fmt.Errorf("%v", result.Errors[0]))
		}

		argv := cfg.CheckArgs(artifact, testCase, iterations)
		logging.Info("Checking",
			"artifact", artifact,
			"test_case", testCase,
			"iterations", iterations,
			"command", toolchain.Describe(argv))

		runResult, err := toolchain.Run(cmd.Context(), argv, func(line string) {
			fmt.Println(line)
		})
		if err != nil {
			utils.ToolchainError(cfg.Checker, err)
		}

		currentSession.LastRun = session.RunCheck
		currentSession.Artifact = artifact
		currentSession.TestCase = testCase
		currentSession.Iterations = iterations

		if !runResult.Success() {
			logging.Error("Check failed", "exit_code", runResult.ExitCode, "duration", runResult.Duration)
			os.Exit(runResult.ExitCode)
		}

		logging.Info("Check finished",
			"test_case", testCase,
			"iterations", iterations,
			"duration", runResult.Duration)
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkTestCase, "test-case", "t", "", "test case to run")
	checkCmd.Flags().IntVarP(&checkIterations, "iterations", "i", params.DefaultIterations,
		"schedule iterations ("+strconv.Itoa(params.DefaultIterations)+" by default)")
	rootCmd.AddCommand(checkCmd)
}
