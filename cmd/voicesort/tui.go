package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"voicesort/pkg/engine"
	"voicesort/pkg/namelock"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	fileStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	statusStyle = lipgloss.NewStyle().Faint(true)
	lockStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// rescanMsg asks the model to rebuild the queue (root watcher fired).
type rescanMsg struct{}

// sortModel is the bubbletea model for the interactive sorting session.
type sortModel struct {
	ctx   context.Context
	app   *app
	input textinput.Model
	lock  *namelock.Lock

	notice string
	errMsg string
	watch  <-chan struct{}
}

// newSortModel loads the queue and the name list and starts the root
// watcher (best effort; sorting works without it).
func newSortModel(ctx context.Context, a *app) (*sortModel, error) {
	if err := a.eng.LoadFiles(ctx); err != nil {
		return nil, err
	}
	names, err := a.eng.Names(ctx)
	if err != nil {
		return nil, err
	}

	ti := textinput.New()
	ti.Placeholder = "character name"
	ti.Focus()

	m := &sortModel{
		ctx:   ctx,
		app:   a,
		input: ti,
		lock:  namelock.New(names),
	}
	if ch, err := a.eng.WatchRoots(ctx, 0); err == nil {
		m.watch = ch
	}
	return m, nil
}

// Init starts waiting on the watcher.
func (m *sortModel) Init() tea.Cmd {
	return m.waitForChange()
}

// waitForChange blocks on the watcher channel and turns its signal into a
// rescan message.
func (m *sortModel) waitForChange() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-m.watch; !ok {
			return nil
		}
		return rescanMsg{}
	}
}

// Update routes gestures to engine calls.
func (m *sortModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case rescanMsg:
		if err := m.app.eng.LoadFiles(m.ctx); err != nil {
			m.errMsg = err.Error()
		} else {
			m.notice = "queue refreshed"
		}
		return m, m.waitForChange()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			m.confirm()
			return m, nil
		case "ctrl+x":
			m.stage(func() (string, error) { return m.app.eng.ExcludeCurrent(m.ctx) }, "excluded")
			return m, nil
		case "ctrl+d":
			m.stage(func() (string, error) { return m.app.eng.DeferCurrent(m.ctx) }, "deferred")
			return m, nil
		case "ctrl+z":
			m.undo()
			return m, nil
		case "ctrl+y":
			m.redo()
			return m, nil
		case "backspace":
			if m.lock.IsLocked() {
				m.setInput(m.lock.Backspace())
				return m, nil
			}
		default:
			if m.lock.IsLocked() {
				// Locked field swallows all input except the keys above.
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if text, state := m.lock.TextChanged(m.input.Value()); state == namelock.Locked {
		m.setInput(text)
	}
	return m, cmd
}

// setInput synchronizes the text field with the lock state machine.
func (m *sortModel) setInput(text string) {
	m.input.SetValue(text)
	m.input.CursorEnd()
}

// confirm classifies the current file under the typed name.
func (m *sortModel) confirm() {
	m.errMsg = ""
	name := m.input.Value()
	dest, err := m.app.eng.ConfirmMove(m.ctx, name)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.notice = fmt.Sprintf("moved to %s", dest)
	m.lock.Reset()
	m.setInput("")
}

// stage runs exclude or defer on the current file.
func (m *sortModel) stage(op func() (string, error), verb string) {
	m.errMsg = ""
	dest, err := op()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.notice = fmt.Sprintf("%s -> %s", verb, dest)
	m.lock.Reset()
	m.setInput("")
}

// undo reverses the latest applied operation and clears the name field,
// returning the session to its pre-classification state.
func (m *sortModel) undo() {
	m.errMsg = ""
	restored, err := m.app.eng.Undo(m.ctx)
	if errors.Is(err, engine.ErrNothingToUndo) {
		m.notice = "nothing to undo"
		return
	}
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.notice = fmt.Sprintf("restored %s", restored)
	m.lock.Reset()
	m.setInput("")
}

// redo re-applies the latest undone operation. The name field is left
// alone.
func (m *sortModel) redo() {
	m.errMsg = ""
	dest, err := m.app.eng.Redo(m.ctx)
	if errors.Is(err, engine.ErrNothingToRedo) {
		m.notice = "nothing to redo"
		return
	}
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.notice = fmt.Sprintf("reapplied -> %s", dest)
}

// View renders the session.
func (m *sortModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("voicesort") + "\n\n")

	if cur, ok := m.app.eng.Current(); ok {
		b.WriteString("current: " + fileStyle.Render(filepath.Base(cur)) + "\n")
		b.WriteString(statusStyle.Render(cur) + "\n")
	} else {
		b.WriteString(fileStyle.Render("done! no files left") + "\n")
	}

	if st, err := m.app.eng.Status(m.ctx); err == nil {
		rec := "off"
		if st.Recursive {
			rec = "on"
		}
		b.WriteString(statusStyle.Render(fmt.Sprintf(
			"%d/%d | project:%s | inputs:%d | recursive:%s",
			st.Position, st.Total, st.ProjectKey, st.EnabledInputs, rec)) + "\n")
	}
	b.WriteString("\n" + m.input.View() + "\n")

	if m.lock.IsLocked() {
		b.WriteString(lockStyle.Render("locked") + "\n")
	} else if matches := m.lock.Matches(m.input.Value()); len(matches) > 0 {
		show := matches
		if len(show) > 5 {
			show = show[:5]
		}
		b.WriteString(statusStyle.Render(strings.Join(show, "  ")) + "\n")
	}

	if m.errMsg != "" {
		b.WriteString(errStyle.Render(m.errMsg) + "\n")
	} else if m.notice != "" {
		b.WriteString(statusStyle.Render(m.notice) + "\n")
	}

	b.WriteString(helpStyle.Render(
		"\nenter classify · ctrl+x exclude · ctrl+d defer · ctrl+z undo · ctrl+y redo · esc quit") + "\n")
	return b.String()
}
