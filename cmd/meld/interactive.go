package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/meldlab/meld/boundary"
	"github.com/meldlab/meld/item"
	"github.com/meldlab/meld/result"
	"github.com/meldlab/meld/store"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2D7D5A")).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2D7D5A"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectDoc modelState = iota
	stateNewDoc
	stateBrowse
	statePutEntry
)

type interactiveModel struct {
	err       error
	store     *store.Store
	session   *boundary.Session
	storePath string

	docs     []string
	selected int

	docName string
	handle  boundary.Handle
	entries []docEntry

	input textinput.Model
	state modelState
}

type docEntry struct {
	key   string
	value string
}

func newInteractiveModel(storePath string) *interactiveModel {
	return &interactiveModel{
		storePath: storePath,
		state:     stateSelectDoc,
	}
}

type loadedMsg struct {
	err   error
	store *store.Store
	docs  []string
}

type openedMsg struct {
	err     error
	name    string
	handle  boundary.Handle
	entries []docEntry
}

type savedMsg struct {
	err     error
	entries []docEntry
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.openStore
}

func (m *interactiveModel) openStore() tea.Msg {
	st, err := store.Open(m.storePath)
	if err != nil {
		return loadedMsg{err: err}
	}
	docs, err := st.List()
	if err != nil {
		_ = st.Close()
		return loadedMsg{err: err}
	}
	return loadedMsg{store: st, docs: docs}
}

func (m *interactiveModel) openDoc(name string) tea.Cmd {
	return func() tea.Msg {
		h, err := openDoc(m.session, m.store, name)
		if err != nil {
			return openedMsg{err: err}
		}
		entries, err := m.readEntries(h)
		if err != nil {
			return openedMsg{err: err}
		}
		return openedMsg{name: name, handle: h, entries: entries}
	}
}

// readEntries snapshots the document's root map for display.
func (m *interactiveModel) readEntries(h boundary.Handle) ([]docEntry, error) {
	r := m.session.MapKeys(h, item.Root)
	if r.Status() != result.StatusOK {
		return nil, fmt.Errorf("%s", r.Diagnostic())
	}
	var entries []docEntry
	for _, it := range r.Items() {
		k, _ := it.Str()
		g := m.session.MapGet(h, item.Root, k)
		v := "(unreadable)"
		if g.Status() == result.StatusOK {
			if git, ok := g.Item(); ok {
				v = git.String()
			}
		}
		g.Release()
		entries = append(entries, docEntry{key: k, value: v})
	}
	r.Release()
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	return entries, nil
}

func (m *interactiveModel) putEntry(key, value string) tea.Cmd {
	return func() tea.Msg {
		if err := do(m.session.MapPutStr(m.handle, item.Root, key, value)); err != nil {
			return savedMsg{err: err}
		}
		if err := do(m.session.Commit(m.handle, "interactive edit", time.Now())); err != nil {
			return savedMsg{err: err}
		}
		if err := saveDoc(m.session, m.store, m.handle, m.docName); err != nil {
			return savedMsg{err: err}
		}
		entries, err := m.readEntries(m.handle)
		return savedMsg{err: err, entries: entries}
	}
}

func (m *interactiveModel) deleteEntry(key string) tea.Cmd {
	return func() tea.Msg {
		if err := do(m.session.MapDelete(m.handle, item.Root, key)); err != nil {
			return savedMsg{err: err}
		}
		if err := do(m.session.Commit(m.handle, "interactive edit", time.Now())); err != nil {
			return savedMsg{err: err}
		}
		if err := saveDoc(m.session, m.store, m.handle, m.docName); err != nil {
			return savedMsg{err: err}
		}
		entries, err := m.readEntries(m.handle)
		return savedMsg{err: err, entries: entries}
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, m.quit()

		case "q":
			if m.state == stateSelectDoc || m.state == stateBrowse {
				return m, m.quit()
			}

		case "up", "k":
			if m.state == stateSelectDoc && m.selected > 0 {
				m.selected--
			}
			if m.state == stateBrowse && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectDoc && m.selected < len(m.docs)-1 {
				m.selected++
			}
			if m.state == stateBrowse && m.selected < len(m.entries)-1 {
				m.selected++
			}

		case "n":
			if m.state == stateSelectDoc {
				m.input = textinput.New()
				m.input.Prompt = "name: "
				m.input.Width = 40
				m.input.Focus()
				m.state = stateNewDoc
				return m, nil
			}

		case "p":
			if m.state == stateBrowse {
				m.input = textinput.New()
				m.input.Prompt = "key=value: "
				m.input.Width = 60
				m.input.Focus()
				m.state = statePutEntry
				return m, nil
			}

		case "d":
			if m.state == stateBrowse && len(m.entries) > 0 {
				return m, m.deleteEntry(m.entries[m.selected].key)
			}

		case "enter":
			switch m.state {
			case stateSelectDoc:
				if len(m.docs) > 0 {
					return m, m.openDoc(m.docs[m.selected])
				}

			case stateNewDoc:
				name := strings.TrimSpace(m.input.Value())
				if name != "" {
					return m, m.openDoc(name)
				}
				m.state = stateSelectDoc

			case statePutEntry:
				parts := strings.SplitN(m.input.Value(), "=", 2)
				if len(parts) == 2 && parts[0] != "" {
					m.state = stateBrowse
					return m, m.putEntry(parts[0], parts[1])
				}
			}

		case "esc":
			switch m.state {
			case stateNewDoc, statePutEntry:
				m.state = previousState(m.state)
				m.err = nil
			case stateBrowse:
				m.state = stateSelectDoc
				m.selected = 0
				m.err = nil
				return m, m.refreshDocs
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.store = msg.store
		m.docs = msg.docs
		if m.session == nil {
			m.session = boundary.NewSession()
		}

	case openedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.docName = msg.name
		m.handle = msg.handle
		m.entries = msg.entries
		m.selected = 0
		m.err = nil
		m.state = stateBrowse

	case savedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.entries = msg.entries
		if m.selected >= len(m.entries) && m.selected > 0 {
			m.selected = len(m.entries) - 1
		}
		m.err = nil
	}

	if m.state == stateNewDoc || m.state == statePutEntry {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func previousState(s modelState) modelState {
	if s == statePutEntry {
		return stateBrowse
	}
	return stateSelectDoc
}

func (m *interactiveModel) refreshDocs() tea.Msg {
	docs, err := m.store.List()
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{store: m.store, docs: docs}
}

func (m *interactiveModel) quit() tea.Cmd {
	if m.session != nil {
		m.session.Close()
	}
	if m.store != nil {
		_ = m.store.Close()
	}
	return tea.Quit
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("meld"))
	b.WriteString(" ")
	b.WriteString(m.storePath)
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	switch m.state {
	case stateSelectDoc:
		if m.store == nil && m.err == nil {
			b.WriteString("Opening store...")
			return b.String()
		}
		if len(m.docs) == 0 {
			b.WriteString("No documents yet.\n")
		} else {
			b.WriteString("Documents:\n\n")
			for i, name := range m.docs {
				if i == m.selected {
					b.WriteString(selectedStyle.Render("> " + name))
				} else {
					b.WriteString("  " + name)
				}
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter open • n new • q quit"))

	case stateNewDoc:
		b.WriteString("New document\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter create • esc back"))

	case stateBrowse:
		b.WriteString(fmt.Sprintf("Document %s\n\n", keyStyle.Render(m.docName)))
		if len(m.entries) == 0 {
			b.WriteString("(empty)\n")
		}
		for i, e := range m.entries {
			line := keyStyle.Render(e.key) + " = " + valueStyle.Render(e.value)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> ") + line)
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • p put • d delete • esc back • q quit"))

	case statePutEntry:
		b.WriteString(fmt.Sprintf("Set key in %s\n\n", keyStyle.Render(m.docName)))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter apply • esc back"))
	}

	return b.String()
}

func runInteractive(storePath string) error {
	p := tea.NewProgram(newInteractiveModel(storePath), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
