package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/multierr"

	"github.com/wippyai/codec-dispatch/dispatch"
)

const listHeight = 16

type modelState int

const (
	stateSelectEntry modelState = iota
	stateInputArgs
	stateInputSelector
	stateShowResult
)

type interactiveModel struct {
	err      error
	closeErr error
	session  *session
	cfg      config
	result   string
	entries  []tableEntry
	input    textinput.Model
	target   int32
	selected int
	state    modelState
}

func newInteractiveModel(cfg config) *interactiveModel {
	return &interactiveModel{cfg: cfg, state: stateSelectEntry}
}

type loadedMsg struct {
	err     error
	session *session
}

type callResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.load
}

func (m *interactiveModel) load() tea.Msg {
	s, err := openSession(context.Background(), m.cfg)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{session: s}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.session = msg.session
		m.entries = entries(m.session.instance())

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs || m.state == stateInputSelector {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	editing := m.state == stateInputArgs || m.state == stateInputSelector

	switch msg.String() {
	case "ctrl+c":
		return m.quit(), true

	case "q":
		if !editing {
			return m.quit(), true
		}

	case "up", "k":
		if m.state == stateSelectEntry && m.selected > 0 {
			m.selected--
			return nil, true
		}

	case "down", "j":
		if m.state == stateSelectEntry && m.selected < len(m.entries)-1 {
			m.selected++
			return nil, true
		}

	case "/":
		if m.state == stateSelectEntry {
			m.prepareInput("selector: ", "-3, 0x0203 or DrawBand")
			m.state = stateInputSelector
			return nil, true
		}

	case "enter":
		switch m.state {
		case stateSelectEntry:
			if len(m.entries) == 0 {
				return nil, true
			}
			m.target = m.entries[m.selected].what
			m.prepareInput("args: ", "comma-separated words")
			m.state = stateInputArgs
		case stateInputArgs:
			return m.call, true
		case stateInputSelector:
			return m.resolve, true
		case stateShowResult:
			m.reset()
		}
		return nil, true

	case "esc":
		if m.state != stateSelectEntry {
			m.reset()
			return nil, true
		}
	}
	return nil, false
}

func (m *interactiveModel) quit() tea.Cmd {
	if m.session != nil {
		m.closeErr = m.session.close(context.Background())
	}
	return tea.Quit
}

func (m *interactiveModel) reset() {
	m.state = stateSelectEntry
	m.result = ""
	m.err = nil
}

func (m *interactiveModel) prepareInput(prompt, placeholder string) {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	ti.Width = 40
	ti.Focus()
	m.input = ti
}

func (m *interactiveModel) call() tea.Msg {
	args, err := parseArgs(m.input.Value())
	if err != nil {
		return callResultMsg{err: err}
	}
	res, err := m.session.manager.Call(context.Background(), m.session.handle, m.target, args)
	if err != nil {
		return callResultMsg{err: err}
	}
	return callResultMsg{result: fmt.Sprintf("%d (%#x)", res, uint64(res))}
}

func (m *interactiveModel) resolve() tea.Msg {
	inst := m.session.instance()
	what, err := lookupSelector(inst, m.input.Value())
	if err != nil {
		return callResultMsg{err: err}
	}
	out, ok := inst.Resolve(what)
	if !ok {
		return callResultMsg{err: fmt.Errorf("selector %#x cannot be encoded", what)}
	}
	return callResultMsg{result: out.String()}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.session == nil {
		return "Loading table..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Codec Dispatch"))
	b.WriteString(" ")
	b.WriteString(m.session.name)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectEntry:
		b.WriteString("Select an entry to call:\n\n")
		start, end := window(m.selected, len(m.entries), listHeight)
		for i := start; i < end; i++ {
			e := m.entries[i]
			line := m.formatEntry(e)
			if i == m.selected {
				b.WriteString("> " + line)
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter call • / resolve selector • q quit"))

	case stateInputArgs:
		b.WriteString(fmt.Sprintf("Calling %s\n\n", m.formatEntry(m.entries[m.selected])))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter call • esc back"))

	case stateInputSelector:
		b.WriteString("Resolve a host selector\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter resolve • esc back"))

	case stateShowResult:
		b.WriteString("Result:\n\n")
		if m.err != nil {
			b.WriteString(errorStyle.Render("Error: " + describeError(m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatEntry(e tableEntry) string {
	name := e.outcome.Name
	if e.outcome.Action == dispatch.ActionError {
		name += " " + e.outcome.Code.String()
	}
	return fmt.Sprintf("%#06x ", uint32(e.what)&0xFFFF) + actionStyle(e.outcome.Action).Render(e.outcome.Action.String()+" "+name)
}

// window returns the slice bounds of a list of n rows, height rows tall,
// that keeps row sel visible.
func window(sel, n, height int) (int, int) {
	if n <= height {
		return 0, n
	}
	start := sel - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}

func runInteractive(cfg config) error {
	m := newInteractiveModel(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return multierr.Append(err, m.closeErr)
}
