package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/isaiahaiasi/webgpu-demos/structbuf"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateBrowse modelState = iota
	stateEdit
	stateHex
)

// visibleFields caps the field list; longer layouts scroll.
const visibleFields = 20

type interactiveModel struct {
	err      error
	rec      *structbuf.Record
	source   string
	status   string
	fields   []structbuf.Field
	input    textinput.Model
	selected int
	top      int
	state    modelState
}

func newInteractiveModel(rec *structbuf.Record, source string) *interactiveModel {
	return &interactiveModel{
		rec:    rec,
		source: source,
		fields: rec.Fields(),
		state:  stateBrowse,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.state == stateEdit {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter":
			m.commit()
			return m, nil
		case "esc":
			m.state = stateBrowse
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.state == stateBrowse && m.selected > 0 {
			m.selected--
			if m.selected < m.top {
				m.top = m.selected
			}
		}

	case "down", "j":
		if m.state == stateBrowse && m.selected < len(m.fields)-1 {
			m.selected++
			if m.selected >= m.top+visibleFields {
				m.top = m.selected - visibleFields + 1
			}
		}

	case "enter", "e":
		if m.state == stateBrowse && len(m.fields) > 0 {
			m.startEdit()
		}

	case "x":
		if m.state == stateHex {
			m.state = stateBrowse
		} else {
			m.state = stateHex
		}

	case "r":
		m.rec.Reset()
		m.status = "record reset"
		m.err = nil

	case "esc":
		m.state = stateBrowse
	}

	return m, nil
}

func (m *interactiveModel) startEdit() {
	f := m.fields[m.selected]
	v, _ := m.rec.Get(f.Path...)

	ti := textinput.New()
	ti.Prompt = f.Key() + ": "
	ti.Placeholder = f.Tag
	ti.SetValue(formatValue(v))
	ti.Width = 40
	ti.Focus()

	m.input = ti
	m.state = stateEdit
	m.status = ""
	m.err = nil
}

func (m *interactiveModel) commit() {
	f := m.fields[m.selected]
	value, err := parseValue(m.input.Value())
	if err == nil {
		err = m.rec.SetAt(f.Path, value)
	}
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = "set " + f.Key()
	m.state = stateBrowse
	m.input.Blur()
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Layout"))
	fmt.Fprintf(&b, " %s  %d bytes", m.source, m.rec.Size())
	if m.rec.Uniform() {
		b.WriteString(", uniform")
	}
	b.WriteString("\n\n")

	switch m.state {
	case stateHex:
		b.WriteString(m.rec.HexDump())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("x fields • r reset • q quit"))

	default:
		end := min(m.top+visibleFields, len(m.fields))
		for i := m.top; i < end; i++ {
			line := m.formatField(m.fields[i])
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		if len(m.fields) > visibleFields {
			fmt.Fprintf(&b, "  (%d-%d of %d)\n", m.top+1, end, len(m.fields))
		}
		b.WriteString("\n")

		if m.state == stateEdit {
			b.WriteString(m.input.View())
			b.WriteString("\n\n")
		}
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n\n")
		} else if m.status != "" {
			b.WriteString(resultStyle.Render(m.status))
			b.WriteString("\n\n")
		}

		if m.state == stateEdit {
			b.WriteString(helpStyle.Render("enter set • esc cancel"))
		} else {
			b.WriteString(helpStyle.Render("↑/↓ select • enter edit • x hex • r reset • q quit"))
		}
	}

	return b.String()
}

func (m *interactiveModel) formatField(f structbuf.Field) string {
	v, err := m.rec.Get(f.Path...)
	value := formatValue(v)
	if err != nil {
		value = err.Error()
	}
	return fmt.Sprintf("%s %s @%d  %s",
		fieldStyle.Render(f.Key()),
		typeStyle.Render(f.Tag),
		f.Offset,
		value)
}

func runInteractive(rec *structbuf.Record, source string) error {
	p := tea.NewProgram(newInteractiveModel(rec, source), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
