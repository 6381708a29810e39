package editor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopcanvas/shopcanvas/catalog"
	"github.com/shopcanvas/shopcanvas/preview"
	"github.com/shopcanvas/shopcanvas/store"
	"github.com/shopcanvas/shopcanvas/storeconfig"
)

// settledMsg carries a configuration that survived the debounce quiet period.
type settledMsg struct {
	cfg storeconfig.Config
}

type autosaveResultMsg struct {
	err error
}

type saveResultMsg struct {
	store   *store.Store
	created bool
	err     error
}

type uploadResultMsg struct {
	sectionID string
	purpose   string
	index     int
	url       string
	err       error
}

// waitForSettled blocks on the debouncer's channel; each emission re-arms the
// listener.
func (m *Model) waitForSettled() tea.Cmd {
	return func() tea.Msg {
		return settledMsg{cfg: <-m.debouncer.C}
	}
}

func (m *Model) autosaveCmd(cfg storeconfig.Config, name string) tea.Cmd {
	id := m.storeID
	return func() tea.Msg {
		_, err := m.svc.Update(context.Background(), id, store.UpdateParams{
			Name:   &name,
			Config: &cfg,
		})
		return autosaveResultMsg{err: err}
	}
}

func (m *Model) createCmd(name, subdomain string) tea.Cmd {
	cfg := m.cfg.Clone()
	userID := m.userID
	template := m.template
	return func() tea.Msg {
		s, err := m.svc.Create(context.Background(), store.CreateParams{
			UserID:    userID,
			Name:      name,
			Subdomain: subdomain,
			Template:  template,
			Config:    cfg,
		})
		if err != nil {
			return saveResultMsg{err: err}
		}
		if err := m.svc.SeedMockProducts(context.Background(), s.ID, template); err != nil {
			// The store exists; seeding is best-effort.
			return saveResultMsg{store: s, created: true, err: err}
		}
		return saveResultMsg{store: s, created: true}
	}
}

func (m *Model) updateCmd(name, subdomain string) tea.Cmd {
	cfg := m.cfg.Clone()
	id := m.storeID
	published := m.published
	return func() tea.Msg {
		s, err := m.svc.Update(context.Background(), id, store.UpdateParams{
			Name:        &name,
			Subdomain:   &subdomain,
			Config:      &cfg,
			IsPublished: &published,
		})
		return saveResultMsg{store: s, err: err}
	}
}

func (m *Model) uploadCmd(sectionID, purpose string, index int, path string) tea.Cmd {
	storeID := m.storeID
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return uploadResultMsg{sectionID: sectionID, purpose: purpose, index: index, err: err}
		}
		url, err := m.svc.UploadAsset(context.Background(), storeID, purpose, index, filepath.Base(path), data)
		return uploadResultMsg{sectionID: sectionID, purpose: purpose, index: index, url: url, err: err}
	}
}

// Update handles messages and updates the model accordingly.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case settledMsg:
		return m.onSettled(msg)

	case autosaveResultMsg:
		if msg.err != nil {
			// Silent by policy; the status bar exposes the running count.
			m.autosaveFailures++
			m.log.WithError(msg.err).Warn("Autosave failed")
		} else {
			m.lastSaved = time.Now()
			m.dirty = false
		}
		return m, nil

	case saveResultMsg:
		return m.onSaved(msg)

	case uploadResultMsg:
		return m.onUploaded(msg)

	case tea.KeyMsg:
		return m.onKey(msg)
	}

	return m, nil
}

func (m *Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.debouncer.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Save):
		return m.save()

	case key.Matches(msg, m.keys.Undo):
		m.commitDraft()
		if m.history.CanUndo() {
			m.history.Undo()
			m.cfg = m.history.Current()
			m.rebuildPanels()
			m.markDirty()
		}
		return m, nil

	case key.Matches(msg, m.keys.Redo):
		// An uncommitted draft is a new edit: committing it truncates the
		// forward history, so redo becomes a no-op and the draft wins.
		m.commitDraft()
		if m.history.CanRedo() {
			m.history.Redo()
			m.cfg = m.history.Current()
			m.rebuildPanels()
			m.markDirty()
		}
		return m, nil

	case key.Matches(msg, m.keys.Viewport):
		m.previewMode = m.previewMode.Next()
		return m, nil

	case key.Matches(msg, m.keys.ProductTab):
		m.activeTab = nextTab(m.activeTab)
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp):
		m.followActive = false
		m.scrollOffset -= 4
		if m.scrollOffset < 0 {
			m.scrollOffset = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.followActive = false
		m.scrollOffset += 4
		return m, nil

	case key.Matches(msg, m.keys.NextSection):
		m.moveSection(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevSection):
		m.moveSection(-1)
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.moveField(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.moveField(-1)
		return m, nil

	case key.Matches(msg, m.keys.Commit):
		return m.commitActive()

	case key.Matches(msg, m.keys.Upload):
		return m.startUpload()

	case key.Matches(msg, m.keys.AddItem):
		if m.activeSection().id == preview.SectionCategories {
			m.commitDraft()
			cats := append(append([]storeconfig.Category(nil), m.cfg.Categories...),
				storeconfig.Category{Name: "New category"})
			m.applyPatch(storeconfig.SetCategories{Categories: cats})
			m.commitDraft()
			m.rebuildPanels()
		}
		return m, nil

	case key.Matches(msg, m.keys.RemoveItem):
		if sec := m.activeSection(); sec.id == preview.SectionCategories && len(m.cfg.Categories) > 0 {
			m.commitDraft()
			idx := m.fieldIdx / 2
			cats := append([]storeconfig.Category(nil), m.cfg.Categories...)
			if idx < len(cats) {
				cats = append(cats[:idx], cats[idx+1:]...)
				m.applyPatch(storeconfig.SetCategories{Categories: cats})
				m.commitDraft()
				m.rebuildPanels()
			}
		}
		return m, nil
	}

	// Everything else goes to the focused text input.
	f := m.activeField()
	if f == nil || f.kind != fieldText {
		return m, nil
	}
	var cmd tea.Cmd
	before := f.input.Value()
	f.input, cmd = f.input.Update(msg)
	if f.input.Value() != before {
		m.applyDraft()
	}
	return m, cmd
}

// applyDraft folds the active panel's current field values into the working
// tree. The preview picks the change up on the next render; the debouncer
// schedules the autosave.
func (m *Model) applyDraft() {
	sec := m.activeSection()
	if sec.id == sectionSettings {
		// Store name and subdomain live outside the config tree but still
		// ride the autosave path.
		m.markDirty()
		return
	}
	if p := sectionPatch(sec, m.cfg); p != nil {
		m.cfg = storeconfig.Apply(m.cfg, p)
		m.fieldDirty = true
		m.markDirty()
	}
}

func (m *Model) applyPatch(p storeconfig.Patch) {
	m.cfg = storeconfig.Apply(m.cfg, p)
	m.fieldDirty = true
	m.markDirty()
}

// commitDraft pushes the working tree as one history snapshot. Consecutive
// keystrokes in the same field coalesce into the single snapshot committed
// here.
func (m *Model) commitDraft() {
	if m.fieldDirty {
		m.history.Set(m.cfg)
		m.fieldDirty = false
	}
}

func (m *Model) markDirty() {
	m.dirty = true
	m.debouncer.Set(m.cfg.Clone())
}

func (m *Model) commitActive() (tea.Model, tea.Cmd) {
	f := m.activeField()
	if f == nil {
		return m, nil
	}

	switch f.kind {
	case fieldToggle:
		f.on = !f.on
		if m.activeSection().id == sectionSettings {
			// Published is staged locally and written on the next save.
			m.published = f.on
			m.markDirty()
		} else {
			m.applyDraft()
			m.commitDraft()
		}

	case fieldCycle:
		f.option = (f.option + 1) % len(f.options)
		if f.key == "template" {
			return m, m.switchTemplate(f.options[f.option])
		}

	case fieldText:
		m.commitDraft()
	}
	return m, nil
}

// switchTemplate replaces the working tree with the new template's seed.
func (m *Model) switchTemplate(name string) tea.Cmd {
	seed, err := storeconfig.DefaultTemplate(name)
	if err != nil {
		m.setStatus(err.Error(), true)
		return nil
	}
	m.commitDraft()
	m.template = name
	m.cfg = seed
	m.history.Set(m.cfg)
	m.markDirty()
	m.rebuildPanels()
	m.setStatus("Switched to template "+name, false)
	return nil
}

func (m *Model) moveSection(delta int) {
	m.commitDraft()
	n := len(m.sections)
	m.sectionIdx = ((m.sectionIdx+delta)%n + n) % n
	m.fieldIdx = 0
	m.scrollToActive()
	m.focusField()
}

func (m *Model) moveField(delta int) {
	m.commitDraft()
	sec := m.activeSection()
	if len(sec.fields) == 0 {
		return
	}
	n := len(sec.fields)
	m.fieldIdx = ((m.fieldIdx+delta)%n + n) % n
	m.focusField()
}

// save runs the explicit save path: first save validates the subdomain and
// creates the record; later saves overwrite the full tree.
func (m *Model) save() (tea.Model, tea.Cmd) {
	m.commitDraft()
	name := m.storeName()
	sub := m.subdomain()

	if m.storeID == "" {
		if err := store.ValidateSubdomain(sub); err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.saving = true
		m.setStatus("Creating store…", false)
		return m, m.createCmd(name, sub)
	}

	m.saving = true
	m.setStatus("Saving…", false)
	return m, m.updateCmd(name, sub)
}

func (m *Model) onSettled(msg settledMsg) (tea.Model, tea.Cmd) {
	listen := m.waitForSettled()
	// Autosave needs an existing record; drafts persist only via explicit
	// save.
	if !m.autosaveEnabled || m.storeID == "" {
		return m, listen
	}
	return m, tea.Batch(listen, m.autosaveCmd(msg.cfg, m.storeName()))
}

func (m *Model) onSaved(msg saveResultMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	if msg.err != nil && msg.store == nil {
		m.setStatus("Save failed: "+msg.err.Error(), true)
		return m, nil
	}

	m.storeID = msg.store.ID
	m.dirty = false
	m.lastSaved = time.Now()
	if msg.created {
		if msg.err != nil {
			m.setStatus("Store created; product seeding failed: "+msg.err.Error(), true)
			m.log.WithError(msg.err).Warn("Mock product seeding failed")
		} else {
			m.setStatus("Store created at "+msg.store.Subdomain, false)
		}
	} else {
		m.setStatus("Saved", false)
	}
	return m, nil
}

func (m *Model) startUpload() (tea.Model, tea.Cmd) {
	// Asset paths are keyed by store id; drafts have none yet.
	if m.storeID == "" {
		m.setStatus("Save the store (ctrl+s) before uploading images", true)
		return m, nil
	}
	f := m.activeField()
	if f == nil || f.purpose == "" {
		m.setStatus("Not an image field", true)
		return m, nil
	}
	path := f.value()
	if path == "" {
		m.setStatus("Type a local file path first", true)
		return m, nil
	}

	flag := fmt.Sprintf("%s/%d", f.purpose, f.index)
	if m.uploading[flag] {
		return m, nil
	}
	m.uploading[flag] = true
	m.setStatus("Uploading "+f.purpose+"…", false)
	return m, m.uploadCmd(m.activeSection().id, f.purpose, f.index, path)
}

func (m *Model) onUploaded(msg uploadResultMsg) (tea.Model, tea.Cmd) {
	delete(m.uploading, fmt.Sprintf("%s/%d", msg.purpose, msg.index))

	if msg.err != nil {
		m.setStatus("Upload failed: "+msg.err.Error(), true)
		return m, nil
	}

	// Locate the field again; panels may have been rebuilt meanwhile.
	for _, sec := range m.sections {
		if sec.id != msg.sectionID {
			continue
		}
		for _, f := range sec.fields {
			if f.purpose == msg.purpose && f.index == msg.index {
				f.input.SetValue(msg.url)
				if p := sectionPatch(sec, m.cfg); p != nil {
					m.applyPatch(p)
					m.commitDraft()
				}
				m.setStatus("Upload complete", false)
				return m, nil
			}
		}
	}
	return m, nil
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// scrollToActive makes the next render scroll the preview so the active
// section's region is in view.
func (m *Model) scrollToActive() {
	m.followActive = true
}

func nextTab(t catalog.Tab) catalog.Tab {
	for i, candidate := range catalog.Tabs {
		if candidate == t {
			return catalog.Tabs[(i+1)%len(catalog.Tabs)]
		}
	}
	return catalog.TabAll
}
