// Package tui is the full-screen launcher shown when aocviz runs without a
// subcommand.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/aocviz/internal/config"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

// Backend is where the chosen demo sends its frames.
type Backend int

const (
	BackendTerminal Backend = iota
	BackendGIF
	BackendNone
)

var backendNames = []string{"terminal", "gif", "none"}

func (b Backend) String() string {
	if int(b) < len(backendNames) {
		return backendNames[b]
	}
	return "unknown"
}

// Item is one demo entry in the menu.
type Item struct {
	Name  string
	Title string
}

// Selection is what the user picked. Settings starts from the config the
// launcher was opened with.
type Selection struct {
	Demo     string
	Backend  Backend
	Settings config.Config
}

type state int

const (
	stateMenu state = iota
	stateConfig
	stateDone
)

type field int

const (
	fieldBackend field = iota
	fieldFPS
	fieldInteractive
	fieldHistory
	fieldWidth
	fieldJitter
	fieldOutput
)

var fieldNames = []string{"backend", "fps", "interactive", "history", "width", "jitter", "output"}

type model struct {
	state  state
	cursor int
	items  []Item

	sel         Selection
	fieldCursor int
	editing     bool
	editBuf     string
	err         string
}

func newModel(items []Item, cfg config.Config) model {
	m := model{items: items, sel: Selection{Settings: cfg}}
	if cfg.Image.Output != "" {
		m.sel.Backend = BackendGIF
	}
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.items) == 0 {
			return m, nil
		}
		m.sel.Demo = m.items[m.cursor].Name
		m.state = stateConfig
		m.fieldCursor = 0
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		return m.editKey(msg), nil
	}

	switch msg.String() {
	case "ctrl+c":
		m.sel.Demo = ""
		return m, tea.Quit
	case "q", "esc":
		m.state = stateMenu
		m.err = ""
	case "up", "k":
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case "down", "j":
		if m.fieldCursor < len(fieldNames)-1 {
			m.fieldCursor++
		}
	case "left", "h":
		m.adjust(-1)
	case "right", "l":
		m.adjust(1)
	case "enter", " ":
		switch field(m.fieldCursor) {
		case fieldBackend, fieldInteractive:
			m.adjust(1)
		default:
			m.editing = true
			m.editBuf = m.value(field(m.fieldCursor))
		}
	case "s":
		if err := m.sel.Settings.Validate(); err != nil {
			m.err = err.Error()
			return m, nil
		}
		if m.sel.Backend == BackendGIF && m.sel.Settings.Image.Output == "" {
			m.err = "gif backend needs an output path"
			return m, nil
		}
		m.state = stateDone
		return m, tea.Quit
	}
	return m, nil
}

func (m model) editKey(msg tea.KeyMsg) model {
	switch msg.String() {
	case "enter":
		if err := m.apply(field(m.fieldCursor), m.editBuf); err != nil {
			m.err = err.Error()
		} else {
			m.err = ""
		}
		m.editing = false
		m.editBuf = ""
	case "esc":
		m.editing = false
		m.editBuf = ""
	case "backspace":
		_, size := utf8.DecodeLastRuneInString(m.editBuf)
		m.editBuf = m.editBuf[:len(m.editBuf)-size]
	default:
		if msg.Type == tea.KeyRunes {
			m.editBuf += string(msg.Runes)
		}
	}
	return m
}

// adjust nudges the focused field by dir steps.
func (m *model) adjust(dir int) {
	s := &m.sel.Settings
	switch field(m.fieldCursor) {
	case fieldBackend:
		n := len(backendNames)
		m.sel.Backend = Backend((int(m.sel.Backend) + dir + n) % n)
	case fieldFPS:
		s.FPS = max(s.FPS+float64(dir), 1)
	case fieldInteractive:
		s.Interactive = !s.Interactive
	case fieldHistory:
		s.HistoryDepth = min(max(s.HistoryDepth+10*dir, 1), config.DefaultHistoryDepth)
	case fieldWidth:
		s.Image.Width = max(s.Image.Width+50*dir, 50)
	case fieldJitter:
		s.Image.Jitter = max(s.Image.Jitter+0.5*float64(dir), 0)
	}
}

func (m *model) apply(f field, v string) error {
	s := &m.sel.Settings
	switch f {
	case fieldOutput:
		s.Image.Output = strings.TrimSpace(v)
		return nil
	case fieldHistory, fieldWidth:
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not a whole number", fieldNames[f], v)
		}
		if f == fieldHistory {
			s.HistoryDepth = n
		} else {
			s.Image.Width = n
		}
	case fieldFPS, fieldJitter:
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %q is not a number", fieldNames[f], v)
		}
		if f == fieldFPS {
			s.FPS = x
		} else {
			s.Image.Jitter = x
		}
	}
	return nil
}

func (m model) value(f field) string {
	s := m.sel.Settings
	switch f {
	case fieldBackend:
		return m.sel.Backend.String()
	case fieldFPS:
		return strconv.FormatFloat(s.FPS, 'g', -1, 64)
	case fieldInteractive:
		return strconv.FormatBool(s.Interactive)
	case fieldHistory:
		return strconv.Itoa(s.HistoryDepth)
	case fieldWidth:
		return strconv.Itoa(s.Image.Width)
	case fieldJitter:
		return strconv.FormatFloat(s.Image.Jitter, 'g', -1, 64)
	case fieldOutput:
		return s.Image.Output
	}
	return ""
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("a o c v i z") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, it := range m.items {
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-10s", it.Name)) + dim.Render(it.Title) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-10s", it.Name)) + dimmer.Render(it.Title) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter choose   q quit") + "\n")

	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(m.sel.Demo) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 30)) + "\n\n")

	for i, name := range fieldNames {
		val := fmt.Sprintf("%10s", m.value(field(i)))
		if m.editing && i == m.fieldCursor {
			val = fmt.Sprintf("%10s", m.editBuf+"▋")
		}
		if i == m.fieldCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", name)) + dim.Render(val) + "\n")
		}
	}

	if m.err != "" {
		b.WriteString("\n      " + magenta.Render(m.err) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  enter edit  s start  esc back") + "\n")

	return b.String()
}

// Run shows the launcher. ok is false when the user quit without starting
// a demo.
func Run(items []Item, cfg config.Config) (sel Selection, ok bool, err error) {
	p := tea.NewProgram(newModel(items, cfg), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return Selection{}, false, err
	}
	m := final.(model)
	return m.sel, m.state == stateDone, nil
}
