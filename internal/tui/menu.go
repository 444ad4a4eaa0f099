// Package tui implements the menu-driven front end over the P compiler
// and model checker.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/plang/ptool/internal/prompt"
	"github.com/plang/ptool/internal/session"
	"github.com/plang/ptool/internal/styles"
	"github.com/plang/ptool/internal/toolchain"
)

// Menu styles reuse the centralized styles package
var (
	titleStyle  = styles.TitleStyle
	cursorStyle = styles.BoldStyle
	mutedStyle  = styles.MutedStyle
	errorStyle  = styles.ErrorStyle
	okStyle     = styles.SuccessStyle
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(styles.TextMuted))
)

// uiState tracks which surface the model is showing
type uiState int

const (
	stateMenu uiState = iota
	statePrompt
	stateRunning
	stateResults
)

type action int

const (
	actionCompile action = iota
	actionCheck
	actionSelectArtifact
	actionIterations
	actionQuit
)

type menuItem struct {
	action action
	label  string
}

// keyMap defines keyboard shortcuts for the menu front end
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Cancel key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "cancel run"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Messages produced by the subprocess bridge
type (
	outputLineMsg string
	runDoneMsg    struct {
		kind   session.RunKind
		result toolchain.Result
		err    error
	}
)

// Model is the bubbletea model for the menu front end. It owns the session
// parameters and threads them through every prompt and run.
type Model struct {
	cfg  toolchain.Config
	sess *session.Session
	run  toolchain.RunFunc

	state  uiState
	items  []menuItem
	cursor int
	keys   keyMap

	// Prompt pipeline for the selected action
	steps       []prompt.Step
	stepIndex   int
	stepOptions []string
	stepErr     error
	input       textinput.Model

	// Running subprocess
	pendingKind session.RunKind
	pendingArgv []string
	cancelRun   context.CancelFunc
	lineCh      chan string
	doneCh      chan runDoneMsg
	spin        spinner.Model

	// Results view
	results  viewport.Model
	lines    []string
	status   string
	statusOK bool

	width  int
	height int
}

// NewModel creates the menu front end over a tool configuration and session.
func NewModel(cfg toolchain.Config, sess *session.Session) Model {
	input := textinput.New()
	input.CharLimit = 256

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		cfg:  cfg,
		sess: sess,
		run:  toolchain.Run,
		items: []menuItem{
			{action: actionCompile, label: "Compile project"},
			{action: actionCheck, label: "Check (run test case)"},
			{action: actionSelectArtifact, label: "Select artifact"},
			{action: actionIterations, label: "Set schedule iterations"},
			{action: actionQuit, label: "Quit"},
		},
		keys:    defaultKeyMap(),
		input:   input,
		spin:    spin,
		results: viewport.New(80, 20),
		width:   80,
		height:  24,
	}
}

// SetRunner substitutes the subprocess runner, for tests.
func (m *Model) SetRunner(run toolchain.RunFunc) {
	m.run = run
}

// Session exposes the session for inspection after the program exits.
func (m Model) Session() *session.Session {
	return m.sess
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.results.Width = msg.Width - 4
		m.results.Height = msg.Height - 7
		return m, nil

	case outputLineMsg:
		m.lines = append(m.lines, string(msg))
		m.results.SetContent(strings.Join(m.lines, "\n"))
		m.results.GotoBottom()
		return m, m.listenForLine()

	case runDoneMsg:
		return m.finishRun(msg)

	case spinner.TickMsg:
		if m.state != stateRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Enter):
			return m.selectAction(m.items[m.cursor].action)
		}
		return m, nil

	case statePrompt:
		switch {
		case key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c":
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			// Abandon the pipeline; the session stays as it was
			m.state = stateMenu
			m.stepErr = nil
			return m, nil
		case key.Matches(msg, m.keys.Enter):
			return m.acceptPromptValue()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case stateRunning:
		if key.Matches(msg, m.keys.Cancel) && m.cancelRun != nil {
			m.cancelRun()
		}
		return m, nil

	case stateResults:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Enter):
			m.state = stateMenu
			return m, nil
		}
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}

	return m, nil
}

// selectAction builds the prompt pipeline for an action and enters it, or
// starts the run directly when no input is needed.
func (m Model) selectAction(a action) (tea.Model, tea.Cmd) {
	switch a {
	case actionQuit:
		return m, tea.Quit

	case actionCompile:
		m.steps = []prompt.Step{{
			Name:     "project",
			Prompt:   "Project file",
			Default:  m.sess.ProjectFile,
			Validate: prompt.ValidateFileExists,
			Apply:    func(v string) { m.sess.ProjectFile = v },
		}}
		return m.enterPrompt()

	case actionCheck:
		m.steps = []prompt.Step{
			{
				Name:     "artifact",
				Prompt:   "Artifact",
				Default:  m.sess.Artifact,
				Options:  m.artifactOptions,
				Validate: prompt.ValidateFileExists,
				Apply:    func(v string) { m.sess.Artifact = v },
			},
			{
				Name:    "test-case",
				Prompt:  "Test case",
				Default: m.sess.TestCase,
				Options: func() []string {
					return toolchain.ListTestCases(context.Background(), m.cfg, m.sess.Artifact, m.run)
				},
				Validate: prompt.ValidateNonEmpty,
				Apply:    func(v string) { m.sess.TestCase = v },
			},
			{
				Name:     "iterations",
				Prompt:   "Schedule iterations",
				Default:  strconv.Itoa(m.sess.Iterations),
				Validate: prompt.ValidateWholeNumber,
				Apply:    func(v string) { m.sess.Iterations, _ = strconv.Atoi(v) },
			},
		}
		return m.enterPrompt()

	case actionSelectArtifact:
		m.steps = []prompt.Step{{
			Name:     "artifact",
			Prompt:   "Artifact",
			Default:  m.sess.Artifact,
			Options:  m.artifactOptions,
			Validate: prompt.ValidateFileExists,
			Apply:    func(v string) { m.sess.Artifact = v },
		}}
		return m.enterPrompt()

	case actionIterations:
		m.steps = []prompt.Step{{
			Name:     "iterations",
			Prompt:   "Schedule iterations",
			Default:  strconv.Itoa(m.sess.Iterations),
			Validate: prompt.ValidateWholeNumber,
			Apply:    func(v string) { m.sess.Iterations, _ = strconv.Atoi(v) },
		}}
		return m.enterPrompt()
	}

	return m, nil
}

func (m *Model) artifactOptions() []string {
	var options []string
	for _, a := range m.sess.Artifacts {
		options = append(options, a.Path)
	}
	return options
}

func (m Model) enterPrompt() (tea.Model, tea.Cmd) {
	m.state = statePrompt
	m.stepIndex = 0
	return m.showStep()
}

func (m Model) showStep() (tea.Model, tea.Cmd) {
	step := m.steps[m.stepIndex]
	m.stepOptions = nil
	if step.Options != nil {
		m.stepOptions = step.Options()
	}
	m.stepErr = nil
	m.input.SetValue("")
	m.input.Placeholder = step.Default
	m.input.Focus()
	return m, textinput.Blink
}

// acceptPromptValue validates the current input; failures re-ask in place.
func (m Model) acceptPromptValue() (tea.Model, tea.Cmd) {
	step := m.steps[m.stepIndex]
	value := strings.TrimSpace(m.input.Value())

	// A number picks from the option list when one is showing
	if len(m.stepOptions) > 0 {
		if n, err := strconv.Atoi(value); err == nil && n >= 1 && n <= len(m.stepOptions) {
			value = m.stepOptions[n-1]
		}
	}
	if value == "" {
		value = step.Default
	}

	if step.Validate != nil {
		if err := step.Validate(value); err != nil {
			m.stepErr = err
			m.input.SetValue("")
			return m, nil
		}
	}

	if step.Apply != nil {
		step.Apply(value)
	}

	if m.stepIndex+1 < len(m.steps) {
		m.stepIndex++
		return m.showStep()
	}

	return m.startRunForCursor()
}

// startRunForCursor launches the subprocess for actions that run one;
// parameter-only actions return to the menu.
func (m Model) startRunForCursor() (tea.Model, tea.Cmd) {
	switch m.items[m.cursor].action {
	case actionCompile:
		return m.startRun(session.RunCompile, m.cfg.CompileArgs(m.sess.ProjectFile))
	case actionCheck:
		return m.startRun(session.RunCheck, m.cfg.CheckArgs(m.sess.Artifact, m.sess.TestCase, m.sess.Iterations))
	default:
		m.state = stateMenu
		return m, nil
	}
}

// startRun spawns the subprocess and bridges its output lines and final
// result into bubbletea messages.
func (m Model) startRun(kind session.RunKind, argv []string) (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())

	m.state = stateRunning
	m.pendingKind = kind
	m.pendingArgv = argv
	m.cancelRun = cancel
	m.lines = []string{toolchain.Describe(argv)}
	m.results.SetContent(m.lines[0])
	m.lineCh = make(chan string, 64)
	m.doneCh = make(chan runDoneMsg, 1)

	lineCh := m.lineCh
	doneCh := m.doneCh
	run := m.run
	go func() {
		result, err := run(ctx, argv, func(line string) {
			lineCh <- line
		})
		close(lineCh)
		doneCh <- runDoneMsg{kind: kind, result: result, err: err}
	}()

	return m, tea.Batch(m.spin.Tick, m.listenForLine())
}

func (m Model) listenForLine() tea.Cmd {
	lineCh := m.lineCh
	doneCh := m.doneCh
	return func() tea.Msg {
		if line, ok := <-lineCh; ok {
			return outputLineMsg(line)
		}
		return <-doneCh
	}
}

// finishRun runs the output-analysis step keyed by which tool ran. The
// artifact scrape applies even to failed compiles: whatever partial output
// exists is still scanned.
func (m Model) finishRun(msg runDoneMsg) (tea.Model, tea.Cmd) {
	m.cancelRun = nil
	m.state = stateResults
	m.sess.LastRun = msg.kind

	if msg.err != nil {
		// Cancelled or unspawnable; session parameters stay untouched
		m.status = fmt.Sprintf("%s aborted: %v", msg.kind, msg.err)
		m.statusOK = false
		return m, nil
	}

	switch msg.kind {
	case session.RunCompile:
		produced := toolchain.ParseCompileOutput(msg.result.Output, m.cfg.ArtifactExts, nil)
		m.sess.Retarget(produced)
		if msg.result.Success() {
			m.status = fmt.Sprintf("compile finished: %d artifact(s)", len(produced))
			m.statusOK = true
		} else {
			m.status = fmt.Sprintf("compile failed (exit %d); %d artifact(s) scraped", msg.result.ExitCode, len(produced))
			m.statusOK = false
		}
	case session.RunCheck:
		if msg.result.Success() {
			m.status = fmt.Sprintf("check finished: %s x%d", m.sess.TestCase, m.sess.Iterations)
			m.statusOK = true
		} else {
			m.status = fmt.Sprintf("check failed (exit %d)", msg.result.ExitCode)
			m.statusOK = false
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("P toolchain"))
	b.WriteString("\n\n")

	switch m.state {
	case stateMenu:
		b.WriteString(m.viewMenu())
	case statePrompt:
		b.WriteString(m.viewPrompt())
	case stateRunning:
		b.WriteString(fmt.Sprintf("%s running...\n\n", m.spin.View()))
		b.WriteString(m.results.View())
		b.WriteString("\n" + footerStyle.Render("ctrl+x cancel"))
	case stateResults:
		b.WriteString(m.viewStatus())
		b.WriteString(m.results.View())
		b.WriteString("\n" + footerStyle.Render("enter/esc menu · q quit"))
	}

	return b.String()
}

func (m Model) viewMenu() string {
	var b strings.Builder
	for i, item := range m.items {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + item.label))
		} else {
			b.WriteString("  " + item.label)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.sessionSummary()))
	b.WriteString("\n" + footerStyle.Render("↑/↓ move · enter select · q quit"))
	return b.String()
}

func (m Model) viewPrompt() string {
	step := m.steps[m.stepIndex]
	var b strings.Builder

	if m.stepErr != nil {
		b.WriteString(errorStyle.Render(m.stepErr.Error()))
		b.WriteString("\n")
	}

	for i, opt := range m.stepOptions {
		b.WriteString(fmt.Sprintf("  %d) %s\n", i+1, opt))
	}

	b.WriteString(step.Prompt + ": " + m.input.View())
	b.WriteString("\n\n" + footerStyle.Render("enter accept · esc back"))
	return b.String()
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusOK {
		return okStyle.Render(m.status) + "\n"
	}
	return errorStyle.Render(m.status) + "\n"
}

func (m Model) sessionSummary() string {
	project := m.sess.ProjectFile
	if project == "" {
		project = "(none)"
	}
	artifact := m.sess.Artifact
	if artifact == "" {
		artifact = "(none)"
	}
	testCase := m.sess.TestCase
	if testCase == "" {
		testCase = "(none)"
	}
	return fmt.Sprintf("project: %s\nartifact: %s\ntest case: %s\niterations: %d",
		project, artifact, testCase, m.sess.Iterations)
}
