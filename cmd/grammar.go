package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plang/ptool/internal/grammar"
	"github.com/plang/ptool/internal/lexicon"
	"github.com/plang/ptool/internal/logging"
	"github.com/plang/ptool/internal/utils"
)

var grammarOutputDir string

// grammarCmd represents the grammar command
var grammarCmd = &cobra.Command{
	Use:   "grammar",
	Short: "Generate a TextMate grammar and VSCode extension scaffold",
	Long: `Generate a TextMate grammar for P from the same rule set the
highlight command uses, wrapped in a VSCode extension scaffold.

Examples:
  ptool grammar
  ptool grammar -o ./editor/p-language`,
	Run: func(cmd *cobra.Command, args []string) {
		g := grammar.Build(lexicon.New())

		if err := grammar.WriteExtension(grammarOutputDir, g); err != nil {
			utils.FileSystemError("write extension to", grammarOutputDir, err)
		}

		logging.Info("Grammar generated",
			"output", grammarOutputDir,
			"rules", len(g.Patterns))
		fmt.Printf("VSCode extension written to %s\n", grammarOutputDir)
	},
}

func init() {
	grammarCmd.Flags().StringVarP(&grammarOutputDir, "output", "o", "p-language", "output directory for the extension")
	rootCmd.AddCommand(grammarCmd)
}
