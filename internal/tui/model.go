// Package tui is the single-screen terminal UI over a session's task store.
package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-kratos/kratos/v2/log"

	"taskpad/internal/config"
	"taskpad/internal/logging"
	"taskpad/internal/output"
	"taskpad/internal/tasklist"
)

// Focus is the area receiving key presses.
type Focus int

const (
	FocusInput Focus = iota
	FocusList
)

// rows taken by everything except the task list
const chromeHeight = 7

// statusMsg carries a one-line status update back into the loop.
type statusMsg struct {
	text string
}

// Option configures a Model.
type Option func(*Model)

// WithCopyFunc replaces the clipboard writer.
func WithCopyFunc(fn func(string) error) Option {
	return func(m *Model) {
		m.copy = fn
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger log.Logger) Option {
	return func(m *Model) {
		m.log = log.NewHelper(log.With(logger, "module", "tui"))
	}
}

// Model is the Bubble Tea model of the task screen.
// It renders from a copy of the store, refreshed by a store subscription.
type Model struct {
	store  *tasklist.Store
	cancel func()

	title string
	tasks []tasklist.Task
	focus Focus

	// cursor indexes tasks; it stays 0 when the list is empty
	cursor int

	input    textinput.Model
	viewport viewport.Model
	ready    bool
	width    int

	status string
	keys   keyMap
	styles styles
	copy   func(string) error
	log    *log.Helper
}

// New creates a model over store using the UI settings.
// Close must be called to drop the store subscription.
func New(store *tasklist.Store, ui config.UI, opts ...Option) *Model {
	input := textinput.New()
	input.Placeholder = ui.Placeholder
	input.Prompt = "> "
	input.Focus()

	m := &Model{
		store:  store,
		title:  ui.Title,
		tasks:  store.Snapshot(),
		input:  input,
		keys:   defaultKeyMap(),
		styles: newStyles(ui.Accent),
		copy:   clipboard.WriteAll,
		log:    log.NewHelper(logging.Discard()),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.cancel = store.Subscribe(m.onChange)
	return m
}

// Close drops the store subscription.
func (m *Model) Close() {
	m.cancel()
}

// Tasks returns the rows currently shown.
func (m *Model) Tasks() []tasklist.Task {
	return m.tasks
}

// Cursor returns the selected row index.
func (m *Model) Cursor() int {
	return m.cursor
}

// Focus returns the focused area.
func (m *Model) Focus() Focus {
	return m.focus
}

// Input returns the current input text.
func (m *Model) Input() string {
	return m.input.Value()
}

// Status returns the last status line.
func (m *Model) Status() string {
	return m.status
}

func (m *Model) onChange(c tasklist.Change) {
	m.tasks = c.Snapshot
	if c.Kind == tasklist.Added {
		m.cursor = len(m.tasks) - 1
	}
	m.clampCursor()
	m.log.Debugw("msg", "store changed", "kind", c.Kind.String(), "id", c.Task.ID, "len", len(m.tasks))
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scrollToCursor()
}

func (m *Model) scrollToCursor() {
	if !m.ready {
		return
	}
	// offsets are clamped against the current content
	m.viewport.SetContent(m.renderRows())
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case statusMsg:
		m.status = msg.text
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Focus) {
			m.switchFocus()
			return m, nil
		}
		if m.focus == FocusList {
			return m, m.updateList(msg)
		}
		if key.Matches(msg, m.keys.Add) {
			m.submit()
			return m, nil
		}
	}

	if m.focus != FocusInput {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) resize(width, height int) {
	listHeight := height - chromeHeight
	if listHeight < 1 {
		listHeight = 1
	}
	m.width = width
	m.input.Width = width - lipgloss.Width(m.input.Prompt) - 1

	if !m.ready {
		m.viewport = viewport.New(width, listHeight)
		m.viewport.KeyMap = viewport.KeyMap{}
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = listHeight
	}
	m.scrollToCursor()
}

func (m *Model) switchFocus() {
	if m.focus == FocusInput {
		m.focus = FocusList
		m.input.Blur()
		return
	}
	m.focus = FocusInput
	m.input.Focus()
}

// submit adds the input text. Blank text is left in the field.
func (m *Model) submit() {
	if _, ok := m.store.Add(m.input.Value()); ok {
		m.input.Reset()
		m.status = ""
	}
}

func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.scrollToCursor()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
			m.scrollToCursor()
		}
	case key.Matches(msg, m.keys.Toggle):
		if task, ok := m.selected(); ok {
			m.store.Toggle(task.ID, !task.Completed)
		}
	case key.Matches(msg, m.keys.Delete):
		if task, ok := m.selected(); ok {
			m.store.Delete(task.ID)
		}
	case key.Matches(msg, m.keys.Copy):
		if task, ok := m.selected(); ok {
			return m.copyCmd(task.Description)
		}
	}
	return nil
}

func (m *Model) selected() (tasklist.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return tasklist.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m *Model) copyCmd(text string) tea.Cmd {
	copyFn := m.copy
	return func() tea.Msg {
		if err := copyFn(text); err != nil {
			return statusMsg{text: "copy failed: " + err.Error()}
		}
		return statusMsg{text: "copied: " + output.NormalizeDescription(text)}
	}
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(output.NormalizeTitle(m.title)))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	rows := m.renderRows()
	if m.ready {
		m.viewport.SetContent(rows)
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(rows)
	}
	b.WriteString("\n\n")

	if m.status != "" {
		b.WriteString(m.styles.Status.Render(m.status))
	} else {
		var summary strings.Builder
		output.FormatSummary(&summary, m.tasks)
		b.WriteString(m.styles.Help.Render(strings.TrimSpace(summary.String())))
	}
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m *Model) renderRows() string {
	if len(m.tasks) == 0 {
		return m.styles.Empty.Render("no tasks")
	}

	lines := make([]string, 0, len(m.tasks))
	for i, t := range m.tasks {
		marker := "  "
		if m.focus == FocusList && i == m.cursor {
			marker = m.styles.Cursor.Render("> ")
		}

		desc := output.NormalizeDescription(t.Description)
		if t.Completed {
			desc = m.styles.Done.Render(desc)
		} else {
			desc = m.styles.Pending.Render(desc)
		}

		lines = append(lines, fmt.Sprintf("%s%s %s  %s",
			marker, output.Checkbox(t.Completed), desc, m.styles.DeleteHit.Render("✕")))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderHelp() string {
	bindings := m.keys.inputHelp()
	if m.focus == FocusList {
		bindings = m.keys.listHelp()
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.styles.Help.Render(strings.Join(parts, " • "))
}
