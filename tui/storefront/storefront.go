// Package storefront implements the read-only storefront viewer TUI. It
// shares the preview renderer with the editor but carries no editing state:
// just viewport cycling, product tab switching and scrolling.
package storefront

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopcanvas/shopcanvas/catalog"
	"github.com/shopcanvas/shopcanvas/preview"
	"github.com/shopcanvas/shopcanvas/store"
	"github.com/shopcanvas/shopcanvas/storeconfig"
	"github.com/shopcanvas/shopcanvas/tui/theme"
)

// KeyMap defines the viewer keybindings.
type KeyMap struct {
	NextTab  key.Binding
	Viewport key.Binding
	Up       key.Binding
	Down     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap is the default set of keybindings.
var DefaultKeyMap = KeyMap{
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next product tab"),
	),
	Viewport: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "cycle viewport"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k", "pgup"),
		key.WithHelp("↑/k", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j", "pgdown"),
		key.WithHelp("↓/j", "scroll down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Model is the viewer's bubbletea model.
type Model struct {
	storeName string
	published bool
	cfg       storeconfig.Config
	products  []catalog.Product
	keys      KeyMap

	viewport preview.Viewport
	tab      catalog.Tab
	scroll   int
	width    int
	height   int
}

// New builds a viewer for a store record.
func New(s *store.Store, products []catalog.Product) (*Model, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, err
	}
	return &Model{
		storeName: s.Name,
		published: s.IsPublished,
		cfg:       cfg,
		products:  products,
		keys:      DefaultKeyMap,
		viewport:  preview.ViewportDesktop,
		tab:       catalog.TabAll,
	}, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Run drives the viewer to completion on the current terminal.
func Run(s *store.Store, products []catalog.Product) error {
	m, err := New(s, products)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	_, err = p.Run()
	return err
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextTab):
			m.tab = nextTab(m.tab)
			m.scroll = 0
		case key.Matches(msg, m.keys.Viewport):
			m.viewport = m.viewport.Next()
		case key.Matches(msg, m.keys.Up):
			if m.scroll > 0 {
				m.scroll--
			}
		case key.Matches(msg, m.keys.Down):
			m.scroll++
		}
	}
	return m, nil
}

// View renders the storefront with a thin status footer.
func (m *Model) View() string {
	if m.width < 40 || m.height < 10 {
		return "Terminal too small. Please resize."
	}

	t := theme.DefaultTheme
	rendered := preview.Render(m.cfg, m.storeName, m.products, preview.Options{
		Viewport:  m.viewport,
		Width:     m.width - 2,
		ActiveTab: m.tab,
	})

	lines := strings.Split(rendered, "\n")
	visible := m.height - 2
	maxScroll := len(lines) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	end := m.scroll + visible
	if end > len(lines) {
		end = len(lines)
	}
	window := strings.Join(lines[m.scroll:end], "\n")

	status := t.Success.Render("published")
	if !m.published {
		status = t.Error.Render("unpublished draft")
	}
	footer := t.Muted.Render(fmt.Sprintf("%s · %s · tab products · v viewport · q quit", m.storeName, m.viewport))

	return lipgloss.JoinVertical(lipgloss.Left, window, status+"  "+footer)
}

func nextTab(t catalog.Tab) catalog.Tab {
	for i, candidate := range catalog.Tabs {
		if candidate == t {
			return catalog.Tabs[(i+1)%len(catalog.Tabs)]
		}
	}
	return catalog.TabAll
}
