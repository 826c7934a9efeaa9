package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	indexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// headerLines is the height of the title and the footer together.
const headerLines = 4

type modelState int

const (
	stateBrowse modelState = iota
	stateGoto
	stateReduce
)

type interactiveModel struct {
	err    error
	dump   *dumper
	status string
	input  textinput.Model
	view   viewport.Model
	lines  []string
	state  modelState
	ready  bool
}

func newInteractiveModel(d *dumper) *interactiveModel {
	ti := textinput.New()
	ti.Width = 20
	return &interactiveModel{
		dump:  d,
		input: ti,
		lines: renderLines(d),
		state: stateBrowse,
	}
}

func renderLines(d *dumper) []string {
	lines := make([]string, d.count)
	for i := range lines {
		v, err := d.element(int64(i))
		idx := indexStyle.Render(fmt.Sprintf("%8d", i))
		if err != nil {
			lines[i] = idx + " " + errorStyle.Render(err.Error())
			continue
		}
		lines[i] = idx + " " + valueStyle.Render(format(v))
	}
	return lines
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(msg.Height-headerLines, 1)
		if !m.ready {
			m.view = viewport.New(msg.Width, height)
			m.view.SetContent(strings.Join(m.lines, "\n"))
			m.ready = true
		} else {
			m.view.Width = msg.Width
			m.view.Height = height
		}
		return m, nil

	case tea.KeyMsg:
		if m.state != stateBrowse {
			return m.updateInput(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "g", ":":
			m.prompt(stateGoto, "goto: ", "index")
			return m, textinput.Blink
		case "r":
			m.prompt(stateReduce, "reduce: ", "add, multiply, min, max")
			return m, textinput.Blink
		}
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m *interactiveModel) prompt(state modelState, prompt, placeholder string) {
	m.state = state
	m.err = nil
	m.input.Prompt = prompt
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	m.input.Focus()
}

func (m *interactiveModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.state = stateBrowse
		m.input.Blur()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		switch m.state {
		case stateGoto:
			m.jump(value)
		case stateReduce:
			m.reduce(value)
		}
		m.state = stateBrowse
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) jump(value string) {
	i, err := strconv.Atoi(value)
	if err != nil || i < 0 || i >= len(m.lines) {
		m.err = fmt.Errorf("no element %q", value)
		return
	}
	if m.ready {
		m.view.SetYOffset(i)
	}
	m.status = fmt.Sprintf("element %d", i)
}

func (m *interactiveModel) reduce(name string) {
	v, err := m.dump.fold(name)
	if err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("%s = %s", name, format(v))
}

func (m *interactiveModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("elemdump"))
	b.WriteString(" ")
	b.WriteString(m.dump.name)
	b.WriteString(" ")
	b.WriteString(typeStyle.Render(describe(m.dump.arr.Descr)))
	b.WriteString("\n")
	b.WriteString(m.view.View())
	b.WriteString("\n")

	switch {
	case m.state != stateBrowse:
		b.WriteString(m.input.View())
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.status != "":
		b.WriteString(valueStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("%d elements • ↑/↓ scroll • g goto • r reduce • q quit", len(m.lines))))
	return b.String()
}

func runInteractive(d *dumper) error {
	p := tea.NewProgram(newInteractiveModel(d), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
