package editor

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopcanvas/shopcanvas/preview"
	"github.com/shopcanvas/shopcanvas/store"
	"github.com/shopcanvas/shopcanvas/storeconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	mu      sync.Mutex
	created []store.CreateParams
	updated []store.UpdateParams
	seeded  []string
	uploads []string

	createErr error
	updateErr error
}

func (f *fakeService) Create(_ context.Context, p store.CreateParams) (*store.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, p)
	return &store.Store{ID: "new-1", Name: p.Name, Subdomain: p.Subdomain, Template: p.Template}, nil
}

func (f *fakeService) Update(_ context.Context, id string, p store.UpdateParams) (*store.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updated = append(f.updated, p)
	return &store.Store{ID: id}, nil
}

func (f *fakeService) SeedMockProducts(_ context.Context, storeID, template string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeded = append(f.seeded, storeID+"/"+template)
	return nil
}

func (f *fakeService) UploadAsset(_ context.Context, storeID, purpose string, index int, filename string, _ []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, purpose)
	return "https://cdn.example.com/" + storeID + "/" + purpose + "/" + filename, nil
}

func (f *fakeService) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updated)
}

func newDraftEditor(t *testing.T, svc StoreService) *Model {
	t.Helper()
	m, err := New(svc, Options{
		UserID:          "u1",
		Template:        "minimal",
		AutosaveDelay:   20 * time.Millisecond,
		AutosaveEnabled: true,
		HistoryLimit:    100,
	})
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func existingStore(t *testing.T) *store.Store {
	t.Helper()
	seed, err := storeconfig.DefaultTemplate("minimal")
	require.NoError(t, err)
	blob, err := storeconfig.Marshal(seed)
	require.NoError(t, err)
	return &store.Store{
		ID:             "s1",
		Name:           "Acme",
		Subdomain:      "acme",
		Template:       "minimal",
		TemplateConfig: blob,
	}
}

func press(m *Model, keyType tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: keyType})
	return cmd
}

func typeText(m *Model, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

// gotoField navigates with key presses so commit semantics apply.
func gotoField(m *Model, sectionIdx, fieldIdx int) {
	for m.sectionIdx != sectionIdx {
		press(m, tea.KeyTab)
	}
	for m.fieldIdx != fieldIdx {
		press(m, tea.KeyDown)
	}
}

// drain executes a command tree with a timeout, collecting the produced
// messages. Listeners still waiting on the debouncer simply time out.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, drain(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(300 * time.Millisecond):
		return nil
	}
}

// Section indices as laid out by buildSections.
const (
	secBranding = iota
	secTopBar
	secHero
	secCategories
	secSettings
)

func TestEditHeroTitle(t *testing.T) {
	svc := &fakeService{}
	m := newDraftEditor(t, svc)

	gotoField(m, secHero, 1) // hero title
	typeText(m, " Now")

	t.Run("preview reflects the edit before commit", func(t *testing.T) {
		assert.Contains(t, m.cfg.Hero.Title, " Now")
		assert.Contains(t, m.View(), "Now")
		assert.Equal(t, 1, m.history.Len())
	})

	t.Run("commit pushes one history snapshot", func(t *testing.T) {
		press(m, tea.KeyEnter)
		assert.Equal(t, 2, m.history.Len())
		assert.Equal(t, 1, m.history.Cursor())
	})

	t.Run("keystrokes in one field coalesce", func(t *testing.T) {
		typeText(m, "!")
		typeText(m, "!")
		press(m, tea.KeyEnter)
		assert.Equal(t, 3, m.history.Len())
	})
}

func TestUndoRedo(t *testing.T) {
	svc := &fakeService{}
	m := newDraftEditor(t, svc)
	originalTitle := m.cfg.Hero.Title

	gotoField(m, secHero, 1)
	typeText(m, " v2")
	press(m, tea.KeyEnter)
	edited := m.cfg.Hero.Title

	press(m, tea.KeyCtrlZ)
	assert.Equal(t, originalTitle, m.cfg.Hero.Title)

	press(m, tea.KeyCtrlY)
	assert.Equal(t, edited, m.cfg.Hero.Title)

	t.Run("new edit discards forward history", func(t *testing.T) {
		press(m, tea.KeyCtrlZ)
		typeText(m, " branch")
		press(m, tea.KeyEnter)
		press(m, tea.KeyCtrlY)
		assert.Contains(t, m.cfg.Hero.Title, " branch")
	})

	t.Run("undo at the start is a no-op", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			press(m, tea.KeyCtrlZ)
		}
		assert.Equal(t, 0, m.history.Cursor())
		assert.Equal(t, originalTitle, m.cfg.Hero.Title)
	})
}

func TestRedoWithPendingDraft(t *testing.T) {
	svc := &fakeService{}
	m := newDraftEditor(t, svc)

	gotoField(m, secHero, 1)
	typeText(m, " v2")
	press(m, tea.KeyEnter)

	press(m, tea.KeyCtrlZ)
	typeText(m, " draft")
	draft := m.cfg.Hero.Title

	press(m, tea.KeyCtrlY)
	assert.Equal(t, draft, m.cfg.Hero.Title, "the pending draft wins over redo")
	assert.Equal(t, 2, m.history.Len())
	assert.Equal(t, 1, m.history.Cursor())

	t.Run("commit after redo pushes nothing extra", func(t *testing.T) {
		before := m.history.Len()
		press(m, tea.KeyEnter)
		assert.Equal(t, before, m.history.Len())
	})

	t.Run("undo steps back to the pre-draft tree", func(t *testing.T) {
		press(m, tea.KeyCtrlZ)
		assert.NotContains(t, m.cfg.Hero.Title, " draft")
		assert.NotContains(t, m.cfg.Hero.Title, " v2")
	})
}

func TestAutosaveGuardedByStoreID(t *testing.T) {
	svc := &fakeService{}
	m := newDraftEditor(t, svc)

	gotoField(m, secHero, 1)
	typeText(m, "X")

	time.Sleep(60 * time.Millisecond)
	msg := m.waitForSettled()()
	settled, ok := msg.(settledMsg)
	require.True(t, ok)

	_, cmd := m.Update(settled)
	msgs := drain(cmd)
	assert.Empty(t, msgs)
	assert.Zero(t, svc.updateCount(), "no autosave without a store id")
}

func TestAutosavePersistsExistingStore(t *testing.T) {
	svc := &fakeService{}
	m, err := New(svc, Options{
		Store:           existingStore(t),
		AutosaveDelay:   20 * time.Millisecond,
		AutosaveEnabled: true,
	})
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	gotoField(m, secHero, 1)
	typeText(m, "X")

	time.Sleep(60 * time.Millisecond)
	settled := m.waitForSettled()().(settledMsg)
	_, cmd := m.Update(settled)

	msgs := drain(cmd)
	require.Len(t, msgs, 1)
	result, ok := msgs[0].(autosaveResultMsg)
	require.True(t, ok)
	assert.NoError(t, result.err)

	require.Equal(t, 1, svc.updateCount())
	up := svc.updated[0]
	require.NotNil(t, up.Config)
	assert.Contains(t, up.Config.Hero.Title, "X")
	require.NotNil(t, up.Name)
	assert.Nil(t, up.Subdomain, "autosave never writes the subdomain")

	t.Run("autosave failure is counted not surfaced", func(t *testing.T) {
		svc.mu.Lock()
		svc.updateErr = assert.AnError
		svc.mu.Unlock()

		m.Update(autosaveResultMsg{err: assert.AnError})
		assert.Equal(t, 1, m.autosaveFailures)
		assert.NotEqual(t, assert.AnError.Error(), m.status)
	})
}

func TestFirstSaveFlow(t *testing.T) {
	svc := &fakeService{}
	m := newDraftEditor(t, svc)

	gotoField(m, secHero, 1)
	typeText(m, " Grand Opening")
	press(m, tea.KeyEnter)

	t.Run("invalid subdomain blocks creation", func(t *testing.T) {
		m.settingsField("subdomain").input.SetValue("-bad-")
		cmd := press(m, tea.KeyCtrlS)
		assert.Nil(t, cmd)
		assert.True(t, m.statusErr)
		assert.Empty(t, svc.created)
	})

	t.Run("valid subdomain creates and seeds", func(t *testing.T) {
		m.settingsField("storeName").input.SetValue("Acme")
		m.settingsField("subdomain").input.SetValue("my-store1")

		cmd := press(m, tea.KeyCtrlS)
		require.NotNil(t, cmd)
		msgs := drain(cmd)
		require.Len(t, msgs, 1)
		m.Update(msgs[0])

		require.Len(t, svc.created, 1)
		created := svc.created[0]
		assert.Equal(t, "u1", created.UserID)
		assert.Equal(t, "Acme", created.Name)
		assert.Equal(t, "my-store1", created.Subdomain)
		assert.Equal(t, "minimal", created.Template)
		assert.Contains(t, created.Config.Hero.Title, "Grand Opening", "create carries the full accumulated tree")

		assert.Equal(t, []string{"new-1/minimal"}, svc.seeded)
		assert.Equal(t, "new-1", m.storeID)
		assert.False(t, m.dirty)
	})

	t.Run("subsequent save updates instead of creating", func(t *testing.T) {
		cmd := press(m, tea.KeyCtrlS)
		require.NotNil(t, cmd)
		m.Update(drain(cmd)[0])

		assert.Len(t, svc.created, 1)
		require.Equal(t, 1, svc.updateCount())
		up := svc.updated[0]
		require.NotNil(t, up.Subdomain)
		assert.Equal(t, "my-store1", *up.Subdomain)
		require.NotNil(t, up.IsPublished)
	})
}

func TestPublishToggleStagedUntilSave(t *testing.T) {
	svc := &fakeService{}
	m, err := New(svc, Options{Store: existingStore(t)})
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	gotoField(m, secSettings, 3) // published toggle
	press(m, tea.KeyEnter)
	assert.True(t, m.published)
	assert.Zero(t, svc.updateCount())

	cmd := press(m, tea.KeyCtrlS)
	require.NotNil(t, cmd)
	m.Update(drain(cmd)[0])

	require.Equal(t, 1, svc.updateCount())
	require.NotNil(t, svc.updated[0].IsPublished)
	assert.True(t, *svc.updated[0].IsPublished)
}

func TestCategoryEditing(t *testing.T) {
	svc := &fakeService{}
	m := newDraftEditor(t, svc)
	initial := len(m.cfg.Categories)

	gotoField(m, secCategories, 0)

	t.Run("add derives a slug", func(t *testing.T) {
		press(m, tea.KeyCtrlN)
		require.Len(t, m.cfg.Categories, initial+1)
		added := m.cfg.Categories[initial]
		assert.Equal(t, "New category", added.Name)
		assert.Equal(t, "new-category", added.Slug)
	})

	t.Run("renaming re-derives the slug", func(t *testing.T) {
		gotoField(m, secCategories, 0)
		m.activeSection().fields[0].input.SetValue("Été Sale")
		m.applyDraft()
		assert.Equal(t, "ete-sale", m.cfg.Categories[0].Slug)
	})

	t.Run("remove drops the entry under the cursor", func(t *testing.T) {
		before := len(m.cfg.Categories)
		gotoField(m, secCategories, 0)
		press(m, tea.KeyCtrlD)
		assert.Len(t, m.cfg.Categories, before-1)
	})
}

func TestTemplateSwitchSeedsConfig(t *testing.T) {
	svc := &fakeService{}
	m := newDraftEditor(t, svc)

	gotoField(m, secSettings, 2) // template cycle
	histBefore := m.history.Len()
	press(m, tea.KeyEnter)

	assert.NotEqual(t, "minimal", m.template)
	seed, err := storeconfig.DefaultTemplate(m.template)
	require.NoError(t, err)
	assert.Equal(t, seed.Hero.Title, m.cfg.Hero.Title)
	assert.Greater(t, m.history.Len(), histBefore)

	t.Run("undo restores the previous template config", func(t *testing.T) {
		press(m, tea.KeyCtrlZ)
		minimal, _ := storeconfig.DefaultTemplate("minimal")
		assert.Equal(t, minimal.Hero.Title, m.cfg.Hero.Title)
	})
}

func TestUploadFlow(t *testing.T) {
	svc := &fakeService{}
	m, err := New(svc, Options{Store: existingStore(t)})
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 0x50}, 0o644))

	gotoField(m, secBranding, 0) // logo
	m.activeField().input.SetValue(path)

	cmd := press(m, tea.KeyCtrlU)
	require.NotNil(t, cmd)

	t.Run("concurrent upload of the same surface is blocked", func(t *testing.T) {
		assert.Nil(t, press(m, tea.KeyCtrlU))
	})

	msgs := drain(cmd)
	require.Len(t, msgs, 1)
	m.Update(msgs[0])

	assert.Equal(t, []string{"logo"}, svc.uploads)
	assert.Contains(t, m.cfg.Branding.Logo, "https://cdn.example.com/s1/logo/logo.png")

	t.Run("missing file reports an error and clears the flag", func(t *testing.T) {
		m.activeField().input.SetValue(filepath.Join(t.TempDir(), "absent.png"))
		cmd := press(m, tea.KeyCtrlU)
		require.NotNil(t, cmd, "flag cleared after the first upload completed")
		msgs := drain(cmd)
		require.Len(t, msgs, 1)
		m.Update(msgs[0])
		assert.True(t, m.statusErr)
	})
}

func TestTopBarPatchPreservesUnknownPlatforms(t *testing.T) {
	cfg := storeconfig.Config{TopBar: &storeconfig.TopBar{
		ShowSocial: true,
		SocialLinks: map[string]string{
			"instagram": "https://instagram.com/acme",
			"tiktok":    "https://tiktok.com/@acme",
		},
	}}

	secs := buildSections(cfg, "Acme", "acme", "minimal", false)
	var topBar *section
	for _, s := range secs {
		if s.id == preview.SectionTopBar {
			topBar = s
		}
	}
	require.NotNil(t, topBar)

	for _, f := range topBar.fields {
		if f.key == "instagram" {
			f.input.SetValue("https://instagram.com/acme2")
		}
	}

	next := storeconfig.Apply(cfg, sectionPatch(topBar, cfg))
	require.NotNil(t, next.TopBar)
	assert.Equal(t, "https://instagram.com/acme2", next.TopBar.SocialLinks["instagram"])
	assert.Equal(t, "https://tiktok.com/@acme", next.TopBar.SocialLinks["tiktok"],
		"platforms without a panel field survive the patch")
}

func TestUploadRequiresSavedStore(t *testing.T) {
	svc := &fakeService{}
	m := newDraftEditor(t, svc)

	gotoField(m, secBranding, 0) // logo
	m.activeField().input.SetValue("logo.png")

	assert.Nil(t, press(m, tea.KeyCtrlU))
	assert.True(t, m.statusErr)
	assert.Empty(t, svc.uploads)
}

func TestViewportAndTabCycling(t *testing.T) {
	svc := &fakeService{}
	m := newDraftEditor(t, svc)

	assert.Equal(t, "desktop", string(m.previewMode))
	press(m, tea.KeyCtrlV)
	assert.Equal(t, "tablet", string(m.previewMode))
	press(m, tea.KeyCtrlV)
	assert.Equal(t, "mobile", string(m.previewMode))

	first := m.activeTab
	press(m, tea.KeyCtrlT)
	assert.NotEqual(t, first, m.activeTab)
}
