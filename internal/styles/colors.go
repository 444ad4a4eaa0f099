package styles

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/plang/ptool/internal/lexicon"
)

// Color constants using a consistent palette
const (
	// Primary colors
	Primary     = "#7D56F4"
	PrimaryText = "#FAFAFA"

	// Status colors
	Success = "#04B575"
	Warning = "#FFA500"
	Error   = "#FF6B6B"
	Info    = "#00CED1"

	// Text colors
	Text      = "#FAFAFA"
	TextMuted = "#626262"
	TextBold  = "#90EE90"

	// Syntax colors
	Keyword  = "#C678DD"
	Constant = "#D19A66"
	TypeName = "#E5C07B"
	Variable = "#E06C75"
	Event    = "#61AFEF"
	Machine  = "#56B6C2"
	Comment  = "#5C6370"
	Str      = "#98C379"
	Number   = "#D19A66"
)

// Predefined styles for common use cases
var (
	// Title styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(PrimaryText)).
			Background(lipgloss.Color(Primary)).
			Padding(0, 1)

	// Status styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Success)).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Error)).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Warning)).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Info)).
			Bold(true)

	// Text styles
	BoldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(TextBold)).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(TextMuted)).
			Italic(true)

	// Box styles
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(Primary)).
			Padding(1, 1).
			Margin(0, 1)

	// Header and label styles used by list-style command output
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(Primary)).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	KeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Info)).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Text))

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(TextMuted))

	CodeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Primary)).
			Bold(true)
)

// Syntax highlighting styles, one per display category
var (
	KeywordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Keyword)).
			Bold(true)

	ConstantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Constant))

	TypeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(TypeName))

	VariableStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Variable))

	EventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Event))

	MachineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Machine)).
			Bold(true)

	CommentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Comment)).
			Italic(true)

	StringStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Str))

	NumberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Number))
)

// CategoryStyle returns the style for a lexicon display category
func CategoryStyle(cat lexicon.Category) lipgloss.Style {
	switch cat {
	case lexicon.CategoryKeyword:
		return KeywordStyle
	case lexicon.CategoryConstant:
		return ConstantStyle
	case lexicon.CategoryType:
		return TypeStyle
	case lexicon.CategoryVariable:
		return VariableStyle
	case lexicon.CategoryEvent:
		return EventStyle
	case lexicon.CategoryMachine:
		return MachineStyle
	default:
		return ValueStyle
	}
}

// PrintStyled prints text with a lipgloss style to the writer
func PrintStyled(w io.Writer, style lipgloss.Style, text string) {
	fmt.Fprint(w, style.Render(text))
}

// PrintStyledln prints text with a lipgloss style and adds a newline
func PrintStyledln(w io.Writer, style lipgloss.Style, text string) {
	fmt.Fprintln(w, style.Render(text))
}
