package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plang/ptool/internal/logging"
	"github.com/plang/ptool/internal/params"
	"github.com/plang/ptool/internal/session"
	"github.com/plang/ptool/internal/styles"
	"github.com/plang/ptool/internal/toolchain"
	"github.com/plang/ptool/internal/utils"
	"github.com/plang/ptool/internal/validation"
)

// compileCmd represents the compile command
var compileCmd = &cobra.Command{
	Use:   "compile [project-file]",
	Short: "Compile a P project",
	Long: `Compile a P project and record the produced artifacts.

The project file can be provided as an argument, set via the PTOOL_PROJECT
environment variable, or discovered as the only .pproj file in the working
directory.

Examples:
  # Explicit project file
  ptool compile ClientServer.pproj

  # Using environment variable
  export PTOOL_PROJECT=ClientServer.pproj
  ptool compile`,
	Args: cobra.RangeArgs(0, 1),
	Run: func(cmd *cobra.Command, args []string) {
		resolver := params.NewParameterResolver()
		projectInfo, err := resolver.ResolveProjectFileWithInfo(args, 0)
		if err != nil {
			utils.ValidationError(err)
		}
		project := projectInfo.Value

		if projectInfo.Source != "argument" {
			logging.Debug("Parameter resolved from non-argument source",
				"project", project,
				"source", projectInfo.Source)
		}

		cfg := toolConfig()
		result := validation.NewConfigValidator().ValidateCompileRun(cfg, project)
		for _, warning := range result.Warnings {
			logging.Warn(warning)
		}
		if !result.Valid {
			utils.ValidationError(fmt.Errorf("%v", result.Errors[0]))
		}

		argv := cfg.CompileArgs(project)
		logging.Info("Compiling", "project", project, "command", toolchain.Describe(argv))

		runResult, err := toolchain.Run(cmd.Context(), argv, func(line string) {
			fmt.Println(line)
		})
		if err != nil {
			utils.ToolchainError(cfg.Compiler, err)
		}

		produced := toolchain.ParseCompileOutput(runResult.Output, cfg.ArtifactExts, nil)
		currentSession.LastRun = session.RunCompile
		currentSession.ProjectFile = project
		currentSession.Retarget(produced)

		if len(produced) > 0 {
			fmt.Println()
			styles.PrintStyledln(os.Stdout, styles.HeaderStyle, "Artifacts")
			for _, a := range produced {
				marker := "  "
				if a.Path == currentSession.Artifact {
					marker = styles.BoldStyle.Render("* ")
				}
				fmt.Printf("%s%s  %s\n", marker, styles.KeyStyle.Render(a.Model), a.Path)
			}
		}

		if !runResult.Success() {
			logging.Error("Compile failed", "exit_code", runResult.ExitCode, "duration", runResult.Duration)
			os.Exit(runResult.ExitCode)
		}

		logging.Info("Compile finished",
			"artifacts", len(produced),
			"duration", runResult.Duration)
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
}
