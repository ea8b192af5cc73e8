// Package shell implements the interactive REPL described in spec.md's
// expansion §4.14. Each submitted line is lexed, parsed as a script-level
// statement list, and evaluated against one persistent Environment, so
// bindings made on one line stay visible on the next. Only the evaluator
// backend is used — the bytecode backend has no notion of an incrementally
// extended program.
package shell

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/simondevenish/EmberScript/internal/diag"
	"github.com/simondevenish/EmberScript/internal/env"
	"github.com/simondevenish/EmberScript/internal/eval"
	"github.com/simondevenish/EmberScript/internal/parser"
	"github.com/simondevenish/EmberScript/internal/version"
)

// defaultWidth is used until the terminal reports its real size via a
// tea.WindowSizeMsg.
const defaultWidth = 80

var (
	accentColor = lipgloss.Color("#3B82F6")
	errorColor  = lipgloss.Color("#EF4444")
	mutedColor  = lipgloss.Color("#6B7280")

	promptStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	outputStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	errorStyle  = lipgloss.NewStyle().Foreground(errorColor)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
)

type historyLine struct {
	input  string
	output []string
	isErr  bool
	errMsg string
}

type model struct {
	textInput textinput.Model
	evaluator *eval.Evaluator
	scope     *env.Environment
	history   []historyLine
	quitting  bool
	width     int

	// pendingOutput collects one line's PRINT calls. It is a pointer so
	// that every value-copy of model made by Bubble Tea's Update loop
	// still writes through the same slice the evaluator's Out callback,
	// bound once in New, closes over.
	pendingOutput *[]string
}

// New creates a REPL model with a persistent root Environment, ready to
// hand to tea.NewProgram.
func New() model {
	ti := textinput.New()
	ti.Placeholder = "var x = 1;"
	ti.Focus()
	ti.CharLimit = 2000
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = "ember> "

	pending := new([]string)
	return model{
		textInput:     ti,
		scope:         env.NewRoot(),
		pendingOutput: pending,
		evaluator:     eval.New(func(s string) { *pending = append(*pending, s) }),
		width:         defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.textInput.Width = msg.Width - len(m.textInput.Prompt) - 2
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			input := strings.TrimSpace(m.textInput.Value())
			m.textInput.SetValue("")
			if input == "" {
				return m, nil
			}
			m.history = append(m.history, historyLine{input: input})
			m.runLine(input)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// runLine evaluates one submitted line against the REPL's persistent scope,
// recording output or an error against the most recent history entry.
func (m *model) runLine(input string) {
	*m.pendingOutput = nil
	bag := diag.NewBag(0)
	root := parser.ParseScript(input, bag)
	last := len(m.history) - 1
	if bag.HasErrors() {
		m.history[last].isErr = true
		m.history[last].errMsg = bag.Items()[0].Message
		return
	}
	_, err := m.evaluator.Eval(root, m.scope)
	m.history[last].output = *m.pendingOutput
	if err != nil {
		m.history[last].isErr = true
		m.history[last].errMsg = err.Error()
	}
}

func (m model) View() string {
	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder
	b.WriteString(mutedStyle.Render(version.Banner("ember")) + "\n\n")
	for _, line := range m.history {
		b.WriteString(mutedStyle.Render("> ") + m.clamp(line.input) + "\n")
		for _, out := range line.output {
			b.WriteString(outputStyle.Render(m.clamp(out)) + "\n")
		}
		if line.isErr {
			b.WriteString(errorStyle.Render(m.clamp(line.errMsg)) + "\n")
		}
	}
	b.WriteString(m.textInput.View() + "\n")
	return b.String()
}

// clamp truncates a rendered line to the terminal width, accounting for
// double-width runes so wide scripts can't wrap the REPL's layout.
func (m model) clamp(s string) string {
	if m.width <= 0 || runewidth.StringWidth(s) <= m.width {
		return s
	}
	return runewidth.Truncate(s, m.width, "…")
}

// Run starts the REPL program and blocks until the user exits.
func Run() error {
	p := tea.NewProgram(New())
	_, err := p.Run()
	return err
}
