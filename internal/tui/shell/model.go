// File: model.go
// Title: Shell Terminal UI
// Description: Bubbletea model for the interactive graph shell: a
//              scrollback of evaluated commands above a single input
//              line with history navigation.
// Version: v0.1.0
// Created: 2025-02-10
//
// Change History:
// - 2025-02-10 v0.1.0: Initial shell UI

package shell

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/gdsh/foundation/shell"
	"github.com/msto63/gdsh/foundation/shell/app"
	"github.com/msto63/gdsh/foundation/shell/session"
)

// Model is the Bubbletea model for the interactive shell
type Model struct {
	width  int
	height int
	ready  bool

	input textinput.Model

	runtime *shell.Runtime
	sess    *session.Session
	base    string

	// scrollback
	lines []string

	// input history
	history      []string
	historyIndex int
	pendingInput string
}

// New creates the shell UI over a runtime
func New(runtime *shell.Runtime, base string) Model {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "type a command, man lists the apps"
	input.Focus()
	input.CharLimit = 512

	return Model{
		input:        input,
		runtime:      runtime,
		sess:         runtime.NewSession(),
		base:         base,
		historyIndex: -1,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 6
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m, tea.Quit

		case tea.KeyEnter:
			return m.submit()

		case tea.KeyUp:
			return m.historyBack(), nil

		case tea.KeyDown:
			return m.historyForward(), nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.SetValue("")

	trimmed := strings.TrimSpace(line)
	if trimmed != "" {
		m.history = append(m.history, line)
	}
	m.historyIndex = -1
	m.pendingInput = ""

	prompt := m.runtime.Prompt(m.base, m.sess)
	m.lines = append(m.lines, promptStyle.Render(prompt)+line)

	if trimmed == "" {
		return m, nil
	}

	var captured strings.Builder
	out, err := m.runtime.Eval(context.Background(), m.sess, line, &app.WriterOutput{W: &captured})
	if errors.Is(err, shell.ErrExit) {
		return m, tea.Quit
	}

	if captured.Len() > 0 {
		m.appendOutput(outputStyle, strings.TrimRight(captured.String(), "\n"))
	}
	if err != nil {
		m.appendOutput(errorStyle, err.Error())
	} else if out != "" {
		m.appendOutput(outputStyle, out)
	}
	return m, nil
}

func (m *Model) appendOutput(style interface{ Render(...string) string }, text string) {
	for _, line := range strings.Split(text, "\n") {
		m.lines = append(m.lines, style.Render(line))
	}
}

func (m Model) historyBack() Model {
	if len(m.history) == 0 {
		return m
	}
	if m.historyIndex == -1 {
		m.pendingInput = m.input.Value()
		m.historyIndex = len(m.history) - 1
	} else if m.historyIndex > 0 {
		m.historyIndex--
	}
	m.input.SetValue(m.history[m.historyIndex])
	m.input.CursorEnd()
	return m
}

func (m Model) historyForward() Model {
	if m.historyIndex == -1 {
		return m
	}
	if m.historyIndex < len(m.history)-1 {
		m.historyIndex++
		m.input.SetValue(m.history[m.historyIndex])
	} else {
		m.historyIndex = -1
		m.input.SetValue(m.pendingInput)
	}
	m.input.CursorEnd()
	return m
}

// View implements tea.Model
func (m Model) View() string {
	if !m.ready {
		return "starting..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("gdsh - graph data shell"))
	b.WriteString("\n\n")

	// keep the tail of the scrollback that fits above the input
	visible := m.height - 6
	if visible < 1 {
		visible = 1
	}
	lines := m.lines
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(inputStyle.Width(m.width - 4).Render(
		promptStyle.Render(m.runtime.Prompt(m.base, m.sess)) + m.input.View()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: run | up/down: history | ctrl+c: quit"))
	return b.String()
}

// Run starts the interactive shell and blocks until it exits
func Run(runtime *shell.Runtime, base string) error {
	program := tea.NewProgram(New(runtime, base), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
