package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plang/ptool/internal/params"
	"github.com/plang/ptool/internal/styles"
	"github.com/plang/ptool/internal/toolchain"
	"github.com/plang/ptool/internal/utils"
)

// testsCmd represents the tests command
var testsCmd = &cobra.Command{
	Use:   "tests [artifact]",
	Short: "List the test cases in a compiled artifact",
	Long: `List the test cases the model checker can run against a compiled
artifact. The artifact resolves the same way the check command resolves it.

Examples:
  ptool tests out/ClientServer.dll`,
	Args: cobra.RangeArgs(0, 1),
	Run: func(cmd *cobra.Command, args []string) {
		resolver := params.NewParameterResolver()
		cfg := toolConfig()

		artifact := resolver.ResolveArtifact(args, 0, currentSession)
		if artifact == "" {
			utils.ValidationError(fmt.Errorf("artifact is required: provide as argument, set PTOOL_ARTIFACT, or compile first"))
		}

		cases := toolchain.ListTestCases(cmd.Context(), cfg, artifact, nil)
		if len(cases) == 0 {
			utils.FatalError(fmt.Errorf("no test cases found in %s", artifact), "listing test cases")
		}

		styles.PrintStyledln(os.Stdout, styles.HeaderStyle, fmt.Sprintf("Test cases in %s", artifact))
		for _, tc := range cases {
			fmt.Printf("  %s\n", tc)
		}
	},
}

func init() {
	rootCmd.AddCommand(testsCmd)
}
