// Package ui provides the terminal interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist/internal/todo"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// title, input, tabs, clear action, status, help and spacing
	chromeHeight = 10
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	filter  todo.Filter
	saveErr func() error
	logger  *log.Logger
}

// WithFilter sets the filter shown at startup.
func WithFilter(f todo.Filter) TUIOption {
	return func(c *tuiConfig) {
		c.filter = f
	}
}

// WithSaveError sets the function reporting the last persistence failure,
// usually (*todo.Sync).LastError.
func WithSaveError(fn func() error) TUIOption {
	return func(c *tuiConfig) {
		c.saveErr = fn
	}
}

// WithLogger sets the logger for UI events.
func WithLogger(logger *log.Logger) TUIOption {
	return func(c *tuiConfig) {
		c.logger = logger
	}
}

// RunTUI runs the interactive list against store until the user quits or
// ctx is cancelled.
func RunTUI(ctx context.Context, store *todo.Store, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(store, opts...)
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, tea.ErrProgramKilled) {
			return context.Canceled
		}
		return err
	}
	return nil
}

type tuiModel struct {
	store   *todo.Store
	saveErr func() error
	logger  *log.Logger
	subID   int

	filter   todo.Filter
	cursor   int
	visible  todo.List
	counts   todo.Counts
	dirty    bool
	showHelp bool

	input    textinput.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap

	width  int
	height int
}

func newTUIModel(store *todo.Store, opts ...TUIOption) *tuiModel {
	c := &tuiConfig{filter: todo.FilterAll}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}

	input := textinput.New()
	input.Placeholder = "What needs to be done?"
	input.Prompt = "> "
	input.CharLimit = 500
	input.Width = defaultWidth - 4
	input.Focus()

	m := &tuiModel{
		store:    store,
		saveErr:  c.saveErr,
		logger:   c.logger,
		filter:   c.filter,
		input:    input,
		viewport: viewport.New(defaultWidth, defaultHeight-chromeHeight),
		help:     help.New(),
		keys:     defaultKeyMap(),
		width:    defaultWidth,
		height:   defaultHeight,
		dirty:    true,
	}
	m.subID = store.Subscribe(func(todo.Change) {
		m.dirty = true
	})
	m.rebuild()
	return m
}

// Close detaches the model from the store.
func (m *tuiModel) Close() {
	m.store.Unsubscribe(m.subID)
}

func (m *tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceEnd) {
			return m, tea.Quit
		}
		if m.input.Focused() {
			cmd = m.updateInput(msg)
		} else if m.updateList(msg) {
			return m, tea.Quit
		}
	}
	if m.dirty {
		m.rebuild()
	}
	return m, cmd
}

func (m *tuiModel) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Submit):
		if t, ok := m.store.Add(m.input.Value()); ok {
			m.logger.Debug("task added", "id", t.ID)
			m.input.Reset()
		}
		return nil
	case key.Matches(msg, m.keys.Blur):
		m.input.Blur()
		m.dirty = true
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// updateList handles keys while the list has focus. It reports whether the
// program should quit.
func (m *tuiModel) updateList(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return true
	case key.Matches(msg, m.keys.Focus):
		m.input.Focus()
		m.dirty = true
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			m.store.Toggle(t.ID)
		}
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			m.store.Delete(t.ID)
		}
	case key.Matches(msg, m.keys.Clear):
		if n := m.store.ClearCompleted(); n > 0 {
			m.logger.Debug("cleared completed tasks", "removed", n)
		}
	case key.Matches(msg, m.keys.All):
		m.setFilter(todo.FilterAll)
	case key.Matches(msg, m.keys.Active):
		m.setFilter(todo.FilterActive)
	case key.Matches(msg, m.keys.Done):
		m.setFilter(todo.FilterCompleted)
	case key.Matches(msg, m.keys.NextTab):
		m.setFilter(m.filter.Next())
	case key.Matches(msg, m.keys.PrevTab):
		m.setFilter(m.filter.Prev())
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.resize(m.width, m.height)
	}
	return false
}

func (m *tuiModel) setFilter(f todo.Filter) {
	if f == m.filter {
		return
	}
	m.filter = f
	m.cursor = 0
	m.dirty = true
}

func (m *tuiModel) selected() (todo.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return todo.Task{}, false
	}
	return m.visible[m.cursor], true
}

func (m *tuiModel) moveCursor(delta int) {
	if len(m.visible) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	m.dirty = true
}

func (m *tuiModel) resize(width, height int) {
	m.width, m.height = width, height
	m.input.Width = max(10, width-4)
	m.help.Width = width
	chrome := chromeHeight
	if m.showHelp {
		chrome += 4
	}
	m.viewport.Width = width
	m.viewport.Height = max(3, height-chrome)
	m.dirty = true
}

// rebuild recomputes the projection from the store and refreshes the
// viewport content.
func (m *tuiModel) rebuild() {
	list := m.store.List()
	m.visible = todo.Filtered(list, m.filter)
	m.counts = todo.CountsOf(list)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	var b strings.Builder
	writeTasks(&b, m.visible, m.cursor, m.filter, !m.input.Focused())
	m.viewport.SetContent(b.String())
	m.scrollToCursor()
	m.dirty = false
}

func (m *tuiModel) scrollToCursor() {
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)
	b.WriteString(m.input.View() + "\n\n")
	writeTabs(&b, m.filter, m.counts)
	b.WriteString(m.viewport.View() + "\n")
	writeClearAction(&b, m.counts)
	writeStatusLine(&b, m.saveError())
	if m.input.Focused() {
		b.WriteString(m.help.View(inputKeyMap{m.keys}))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m *tuiModel) saveError() error {
	if m.saveErr == nil {
		return nil
	}
	return m.saveErr()
}

func writeTitle(b *strings.Builder) {
	b.WriteString(titleStyle.Render("todos") + "\n\n")
}

func writeTabs(b *strings.Builder, current todo.Filter, counts todo.Counts) {
	tabs := make([]string, 0, len(todo.Filters()))
	for _, f := range todo.Filters() {
		label := fmt.Sprintf("%s (%d)", tabLabel(f), counts.For(f))
		if f == current {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	b.WriteString(strings.Join(tabs, " ") + "\n\n")
}

func tabLabel(f todo.Filter) string {
	switch f {
	case todo.FilterActive:
		return "Active"
	case todo.FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

func writeTasks(b *strings.Builder, tasks todo.List, cursor int, filter todo.Filter, showCursor bool) {
	if len(tasks) == 0 {
		b.WriteString("  " + emptyStyle.Render(todo.EmptyMessage(filter)))
		return
	}
	for i, t := range tasks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(formatTask(t, showCursor && i == cursor))
	}
}

func formatTask(t todo.Task, selected bool) string {
	pointer := "  "
	if selected {
		pointer = cursorStyle.Render("> ")
	}
	box := "[ ]"
	text := t.Text
	if t.Completed {
		box = checkStyle.Render("[x]")
		text = completedStyle.Render(text)
	}
	return pointer + box + " " + text
}

func writeClearAction(b *strings.Builder, counts todo.Counts) {
	if counts.Completed == 0 {
		b.WriteString("\n")
		return
	}
	b.WriteString(clearStyle.Render(fmt.Sprintf("c: clear completed (%d)", counts.Completed)) + "\n")
}

func writeStatusLine(b *strings.Builder, err error) {
	if err == nil {
		b.WriteString("\n")
		return
	}
	b.WriteString(errorStyle.Render("Not saved: "+err.Error()) + "\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
