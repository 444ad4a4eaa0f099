package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/plang/ptool/internal/highlight"
	"github.com/plang/ptool/internal/lexicon"
	"github.com/plang/ptool/internal/utils"
)

var (
	highlightNoColor bool
	highlightStats   bool
)

// highlightCmd represents the highlight command
var highlightCmd = &cobra.Command{
	Use:   "highlight [file]",
	Short: "Syntax-highlight P source",
	Long: `Read P source from a file or stdin and write it back with syntax
highlighting. Color is on when stdout is a terminal and off in pipes;
--no-color forces it off.

Examples:
  ptool highlight server.p
  cat server.p | ptool highlight
  ptool highlight --stats server.p`,
	Args: cobra.RangeArgs(0, 1),
	Run: func(cmd *cobra.Command, args []string) {
		var src []byte
		var err error
		if len(args) == 1 {
			src, err = os.ReadFile(args[0])
			if err != nil {
				utils.FileSystemError("read", args[0], err)
			}
		} else {
			src, err = io.ReadAll(os.Stdin)
			if err != nil {
				utils.FatalError(err, "reading stdin")
			}
		}

		color := !highlightNoColor && term.IsTerminal(int(os.Stdout.Fd()))
		renderer := highlight.NewRenderer(lexicon.New(), color)

		if highlightStats {
			if err := renderer.Summarize(os.Stdout, string(src)); err != nil {
				utils.FatalError(err, "summarizing source")
			}
			return
		}

		if err := renderer.Render(os.Stdout, string(src)); err != nil {
			utils.FatalError(err, "rendering source")
		}
		if len(src) > 0 && src[len(src)-1] != '\n' {
			fmt.Println()
		}
	},
}

func init() {
	highlightCmd.Flags().BoolVar(&highlightNoColor, "no-color", false, "disable colored output")
	highlightCmd.Flags().BoolVar(&highlightStats, "stats", false, "print per-category token counts instead of source")
	rootCmd.AddCommand(highlightCmd)
}
