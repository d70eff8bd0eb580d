package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ylchen07/smart-secrets/internal/clipboard"
	"github.com/ylchen07/smart-secrets/internal/session"
	"github.com/ylchen07/smart-secrets/pkg/models"
)

// CopyFunc puts text on the clipboard
type CopyFunc func(ctx context.Context, text string) error

// Messages produced by the browser's commands
type (
	catalogLoadedMsg struct{ secrets []models.SecretSummary }
	catalogErrorMsg  struct{ err error }
	sessionOpenedMsg struct{ session *session.Session }
	sessionErrorMsg  struct{ err error }
	copiedMsg        struct{ key string }
	copyErrorMsg     struct{ err error }
)

// BrowserModel is the interactive secret browser: a catalog list and a
// detail view of one secret with per-field masking.
type BrowserModel struct {
	state    string // loading, catalog, fetching, detail, error
	title    string
	ctx      context.Context
	catalog  *session.Catalog
	registry *session.Registry
	copyFn   CopyFunc

	secrets   []models.SecretSummary
	cursor    int
	filter    textinput.Model
	filtering bool

	current   *session.Session
	rowCursor int

	status string
	err    error
}

// NewBrowserModel creates a browser over catalog and registry. A nil copy
// function uses the system clipboard.
func NewBrowserModel(ctx context.Context, title string, catalog *session.Catalog, registry *session.Registry, copyFn CopyFunc) BrowserModel {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "/ "
	ti.CharLimit = 128
	ti.Width = 40
	ti.Cursor.SetMode(cursor.CursorStatic)

	if copyFn == nil {
		copyFn = clipboard.Copy
	}

	return BrowserModel{
		state:    "loading",
		title:    title,
		ctx:      ctx,
		catalog:  catalog,
		registry: registry,
		copyFn:   copyFn,
		filter:   ti,
	}
}

func (m BrowserModel) Init() tea.Cmd {
	return m.refresh()
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.filtering {
			return m.updateFilter(msg)
		}
		switch m.state {
		case "catalog":
			return m.updateCatalog(msg)
		case "detail":
			return m.updateDetail(msg)
		case "error":
			return m.updateError(msg)
		}
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil

	case catalogLoadedMsg:
		m.state = "catalog"
		m.secrets = msg.secrets
		m.err = nil
		m.status = fmt.Sprintf("%d secrets", len(msg.secrets))
		m.clampCursor()
		return m, nil

	case catalogErrorMsg:
		// The catalog keeps its previous listing
		m.state = "error"
		m.err = msg.err
		m.secrets = m.catalog.Current()
		m.clampCursor()
		return m, nil

	case sessionOpenedMsg:
		m.state = "detail"
		m.current = msg.session
		m.rowCursor = 0
		m.err = nil
		m.status = ""
		return m, nil

	case sessionErrorMsg:
		m.state = "catalog"
		m.err = msg.err
		m.status = ""
		return m, nil

	case copiedMsg:
		m.err = nil
		m.status = fmt.Sprintf("copied %s to clipboard", msg.key)
		return m, nil

	case copyErrorMsg:
		m.err = msg.err
		m.status = ""
		return m, nil
	}

	return m, nil
}

func (m BrowserModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.cursor = 0
	return m, cmd
}

func (m BrowserModel) updateCatalog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visible()

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(visible)-1 {
			m.cursor++
		}

	case "/":
		m.filtering = true
		return m, m.filter.Focus()

	case "r":
		m.state = "loading"
		m.status = ""
		return m, m.refresh()

	case "enter":
		if len(visible) == 0 {
			return m, nil
		}
		m.state = "fetching"
		m.err = nil
		return m, m.open(visible[m.cursor].ID)
	}

	return m, nil
}

func (m BrowserModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.current.RenderRows()

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc", "backspace":
		m.state = "catalog"
		m.current = nil
		m.err = nil
		m.status = ""

	case "up", "k":
		if m.rowCursor > 0 {
			m.rowCursor--
		}

	case "down", "j":
		if m.rowCursor < len(rows)-1 {
			m.rowCursor++
		}

	case "t", " ":
		if len(rows) == 0 {
			return m, nil
		}
		if err := m.current.Toggle(rows[m.rowCursor].Key); err != nil {
			m.err = err
		}

	case "c":
		if len(rows) == 0 {
			return m, nil
		}
		key := rows[m.rowCursor].Key
		value, err := m.current.RawValue(key)
		if err != nil {
			m.err = err
			return m, nil
		}
		return m, m.copyValue(key, value)

	case "g":
		// Drop the cached session and fetch the secret again
		id := m.current.ID()
		m.registry.Evict(id)
		m.state = "fetching"
		return m, m.open(id)
	}

	return m, nil
}

func (m BrowserModel) updateError(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		m.state = "loading"
		m.err = nil
		return m, m.refresh()
	case "esc":
		m.state = "catalog"
	}
	return m, nil
}

func (m BrowserModel) refresh() tea.Cmd {
	ctx, catalog := m.ctx, m.catalog
	return func() tea.Msg {
		secrets, err := catalog.Refresh(ctx)
		if err != nil {
			return catalogErrorMsg{err: err}
		}
		return catalogLoadedMsg{secrets: secrets}
	}
}

func (m BrowserModel) open(id string) tea.Cmd {
	ctx, registry := m.ctx, m.registry
	return func() tea.Msg {
		s, err := registry.Get(ctx, id)
		if err != nil {
			return sessionErrorMsg{err: err}
		}
		return sessionOpenedMsg{session: s}
	}
}

func (m BrowserModel) copyValue(key, value string) tea.Cmd {
	ctx, copyFn := m.ctx, m.copyFn
	return func() tea.Msg {
		if err := copyFn(ctx, value); err != nil {
			return copyErrorMsg{err: err}
		}
		return copiedMsg{key: key}
	}
}

// visible returns the catalog entries matching the filter, case-insensitively
func (m BrowserModel) visible() []models.SecretSummary {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if query == "" {
		return m.secrets
	}

	out := make([]models.SecretSummary, 0, len(m.secrets))
	for _, s := range m.secrets {
		if strings.Contains(strings.ToLower(s.Name), query) {
			out = append(out, s)
		}
	}
	return out
}

func (m *BrowserModel) clampCursor() {
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

// Session returns the secret currently open in the detail view, or nil
func (m BrowserModel) Session() *session.Session {
	return m.current
}

func (m BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(m.title))
	b.WriteString("\n")

	switch m.state {
	case "loading":
		b.WriteString(PendingStyle.Render("Loading secrets..."))
		b.WriteString("\n")

	case "fetching":
		b.WriteString(PendingStyle.Render("Fetching secret..."))
		b.WriteString("\n")

	case "catalog":
		m.viewCatalog(&b)

	case "detail":
		m.viewDetail(&b)

	case "error":
		b.WriteString(ErrorStyle.Render("✗ Failed to list secrets"))
		b.WriteString("\n\n")
		b.WriteString(m.err.Error())
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("r retry • esc back • q quit"))
		return BoxStyle.Render(b.String())
	}

	if m.err != nil {
		b.WriteString(ErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(StatusStyle.Render(m.status))
		b.WriteString("\n")
	}

	return b.String()
}

func (m BrowserModel) viewCatalog(b *strings.Builder) {
	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}

	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString(HelpStyle.Render("No secrets"))
		b.WriteString("\n")
	}
	for i, s := range visible {
		if i == m.cursor {
			b.WriteString(SelectedStyle.Render("> " + s.Name))
		} else {
			b.WriteString("  " + s.Name)
		}
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render("enter open • / filter • r refresh • q quit"))
	b.WriteString("\n")
}

func (m BrowserModel) viewDetail(b *strings.Builder) {
	b.WriteString(KeyStyle.Render(m.current.ID()))
	b.WriteString("\n\n")

	rows := m.current.RenderRows()
	width := 0
	for _, r := range rows {
		width = max(width, len(r.Key))
	}

	for i, r := range rows {
		cursor := " "
		if i == m.rowCursor {
			cursor = ">"
		}
		value := MaskedStyle.Render(r.Display)
		if r.Revealed {
			value = RevealedStyle.Render(r.Display)
		}
		b.WriteString(fmt.Sprintf("%s %s  %s\n", cursor, KeyStyle.Render(fmt.Sprintf("%-*s", width, r.Key)), value))
	}

	b.WriteString(HelpStyle.Render("t toggle • c copy • g refetch • esc back • q quit"))
	b.WriteString("\n")
}
