package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plang/ptool/internal/extension"
	"github.com/plang/ptool/internal/snippets"
	"github.com/plang/ptool/internal/styles"
	"github.com/plang/ptool/internal/utils"
)

var (
	snippetDir     string
	snippetExtract string
	snippetPreview string
)

// snippetsCmd represents the snippets command
var snippetsCmd = &cobra.Command{
	Use:   "snippets",
	Short: "List the P code snippets",
	Long: `List the bundled P code snippets, optionally merged with an extra
snippet directory. A missing directory is reported and skipped, never fatal.

Examples:
  ptool snippets
  ptool snippets --dir ~/.ptool-snippets
  ptool snippets --preview machine
  ptool snippets --extract ./my-snippets`,
	Run: func(cmd *cobra.Command, args []string) {
		if snippetExtract != "" {
			if err := snippets.Extract(snippetExtract); err != nil {
				utils.FileSystemError("extract snippets to", snippetExtract, err)
			}
			fmt.Printf("Snippet templates written to %s\n", snippetExtract)
			return
		}

		host := extension.NewInProcessHost()
		ext, err := extension.Activate(cmd.Context(), host, extension.Options{SnippetDir: snippetDir})
		if err != nil {
			utils.FatalError(err, "activating language support")
		}
		defer ext.Close()

		if snippetPreview != "" {
			sn, ok := ext.Registry.Lookup(snippetPreview)
			if !ok {
				utils.ValidationError(fmt.Errorf("no snippet with trigger %q", snippetPreview))
			}
			fmt.Print(snippets.Preview(sn))
			return
		}

		styles.PrintStyledln(os.Stdout, styles.HeaderStyle, "Snippets")
		for _, sn := range ext.Registry.List() {
			fmt.Printf("  %-12s %s", styles.KeyStyle.Render(sn.Trigger), sn.Name)
			if sn.Description != "" {
				fmt.Printf("  %s", styles.DescriptionStyle.Render(sn.Description))
			}
			fmt.Println()
		}
	},
}

func init() {
	snippetsCmd.Flags().StringVar(&snippetDir, "dir", "", "extra snippet directory to load")
	snippetsCmd.Flags().StringVar(&snippetExtract, "extract", "", "write the bundled snippet templates to a directory")
	snippetsCmd.Flags().StringVar(&snippetPreview, "preview", "", "print the expanded body of one snippet trigger")
	rootCmd.AddCommand(snippetsCmd)
}
