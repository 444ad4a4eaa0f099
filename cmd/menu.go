package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/plang/ptool/internal/logging"
	"github.com/plang/ptool/internal/tui"
	"github.com/plang/ptool/internal/utils"
)

// menuCmd represents the menu command
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive menu over the compiler and model checker",
	Long: `Open an interactive menu that drives the P compiler and the model
checker. Compile results feed the artifact selection for subsequent checks,
and a running tool can be cancelled with ctrl+x.`,
	Run: func(cmd *cobra.Command, args []string) {
		model := tui.NewModel(toolConfig(), currentSession)

		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			utils.FatalError(err, "running menu")
		}

		logging.Debug("Menu closed",
			"artifact", currentSession.Artifact,
			"test_case", currentSession.TestCase,
			"last_run", currentSession.LastRun)
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
}
