package storefront

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopcanvas/shopcanvas/catalog"
	"github.com/shopcanvas/shopcanvas/store"
	"github.com/shopcanvas/shopcanvas/storeconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()
	cfg, err := storeconfig.DefaultTemplate("boutique")
	require.NoError(t, err)
	blob, err := storeconfig.Marshal(cfg)
	require.NoError(t, err)
	return &store.Store{
		ID:             "s1",
		Name:           "Maison",
		Subdomain:      "maison",
		Template:       "boutique",
		IsPublished:    true,
		TemplateConfig: blob,
	}
}

func TestViewerRendersStore(t *testing.T) {
	m, err := New(testStore(t), catalog.MockProducts("boutique"))
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	out := m.View()
	assert.Contains(t, out, "Maison")
	assert.Contains(t, out, "published")
}

func TestViewerRejectsBrokenConfig(t *testing.T) {
	s := testStore(t)
	s.TemplateConfig = []byte(`{"hero": "not an object"}`)
	_, err := New(s, nil)
	assert.Error(t, err)
}

func TestViewerKeys(t *testing.T) {
	m, err := New(testStore(t), catalog.MockProducts("boutique"))
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	t.Run("tab cycles product filters", func(t *testing.T) {
		first := m.tab
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		assert.NotEqual(t, first, m.tab)
	})

	t.Run("v cycles viewport", func(t *testing.T) {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("v")})
		assert.Equal(t, "tablet", string(m.viewport))
	})

	t.Run("scroll clamps at zero", func(t *testing.T) {
		m.Update(tea.KeyMsg{Type: tea.KeyUp})
		assert.Equal(t, 0, m.scroll)
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
		assert.Equal(t, 1, m.scroll)
	})

	t.Run("quit returns the quit command", func(t *testing.T) {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		require.NotNil(t, cmd)
	})
}
