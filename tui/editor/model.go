// Package editor implements the interactive storefront editor TUI: section
// panels on the left, a live preview on the right, undo/redo history and
// debounced autosave underneath.
package editor

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopcanvas/shopcanvas/catalog"
	"github.com/shopcanvas/shopcanvas/debounce"
	"github.com/shopcanvas/shopcanvas/history"
	"github.com/shopcanvas/shopcanvas/logging"
	"github.com/shopcanvas/shopcanvas/preview"
	"github.com/shopcanvas/shopcanvas/store"
	"github.com/shopcanvas/shopcanvas/storeconfig"
	"github.com/sirupsen/logrus"
)

// StoreService is the slice of the store repository the editor persists
// through.
type StoreService interface {
	Create(ctx context.Context, p store.CreateParams) (*store.Store, error)
	Update(ctx context.Context, id string, p store.UpdateParams) (*store.Store, error)
	SeedMockProducts(ctx context.Context, storeID, template string) error
	UploadAsset(ctx context.Context, storeID, purpose string, index int, filename string, data []byte) (string, error)
}

// Options configure a new editor session.
type Options struct {
	// Store is the existing record, nil for a fresh draft.
	Store    *store.Store
	UserID   string
	Template string
	Products []catalog.Product

	AutosaveDelay   time.Duration
	AutosaveEnabled bool
	HistoryLimit    int
}

// Model is the editor's bubbletea model.
type Model struct {
	svc  StoreService
	keys KeyMap
	log  *logrus.Entry

	// Store-level state. storeID is empty until the first explicit save
	// creates the record.
	storeID   string
	userID    string
	template  string
	published bool
	products  []catalog.Product

	// cfg is the working configuration tree; it equals history.Current()
	// except while a field edit is in progress.
	cfg        storeconfig.Config
	history    *history.History[storeconfig.Config]
	debouncer  *debounce.Debouncer[storeconfig.Config]
	fieldDirty bool
	dirty      bool

	sections     []*section
	sectionIdx   int
	fieldIdx     int
	previewMode  preview.Viewport
	activeTab    catalog.Tab
	scrollOffset int
	followActive bool

	autosaveEnabled  bool
	autosaveFailures int
	lastSaved        time.Time
	saving           bool
	uploading        map[string]bool

	status    string
	statusErr bool

	width  int
	height int
}

// New builds an editor model. The initial configuration comes from the store
// record when present, otherwise from the template's seed.
func New(svc StoreService, opts Options) (*Model, error) {
	template := opts.Template
	if template == "" {
		template = "minimal"
	}

	var (
		cfg       storeconfig.Config
		storeID   string
		name      string
		subdomain string
		published bool
		err       error
	)
	if opts.Store != nil {
		storeID = opts.Store.ID
		name = opts.Store.Name
		subdomain = opts.Store.Subdomain
		published = opts.Store.IsPublished
		if opts.Store.Template != "" {
			template = opts.Store.Template
		}
		cfg, err = opts.Store.Config()
		if err != nil {
			return nil, err
		}
	} else {
		cfg, err = storeconfig.DefaultTemplate(template)
		if err != nil {
			return nil, err
		}
	}

	products := opts.Products
	if len(products) == 0 {
		products = catalog.MockProducts(template)
	}

	delay := opts.AutosaveDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}

	m := &Model{
		svc:             svc,
		keys:            DefaultKeyMap,
		log:             logging.NewLogger("editor"),
		storeID:         storeID,
		userID:          opts.UserID,
		template:        template,
		published:       published,
		products:        products,
		cfg:             cfg,
		history:         history.New(cfg, opts.HistoryLimit),
		debouncer:       debounce.New[storeconfig.Config](delay),
		previewMode:     preview.ViewportDesktop,
		activeTab:       catalog.TabAll,
		autosaveEnabled: opts.AutosaveEnabled,
		uploading:       map[string]bool{},
	}
	m.sections = buildSections(cfg, name, subdomain, template, published)
	m.focusField()
	return m, nil
}

// Init starts listening for settled debounce emissions.
func (m *Model) Init() tea.Cmd {
	return m.waitForSettled()
}

// Run drives the editor to completion on the current terminal.
func Run(svc StoreService, opts Options) error {
	m, err := New(svc, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	_, err = p.Run()
	m.debouncer.Stop()
	return err
}

func (m *Model) activeSection() *section {
	return m.sections[m.sectionIdx]
}

func (m *Model) activeField() *field {
	sec := m.activeSection()
	if len(sec.fields) == 0 {
		return nil
	}
	if m.fieldIdx >= len(sec.fields) {
		m.fieldIdx = len(sec.fields) - 1
	}
	return sec.fields[m.fieldIdx]
}

// focusField moves textinput focus to the active field.
func (m *Model) focusField() {
	for si, sec := range m.sections {
		for fi, f := range sec.fields {
			if f.kind != fieldText {
				continue
			}
			if si == m.sectionIdx && fi == m.fieldIdx {
				f.input.Focus()
			} else {
				f.input.Blur()
			}
		}
	}
}

// storeName and subdomain live in the settings panel, not the config tree.
func (m *Model) settingsField(key string) *field {
	for _, sec := range m.sections {
		if sec.id != sectionSettings {
			continue
		}
		for _, f := range sec.fields {
			if f.key == key {
				return f
			}
		}
	}
	return nil
}

func (m *Model) storeName() string {
	if f := m.settingsField("storeName"); f != nil {
		return f.value()
	}
	return ""
}

func (m *Model) subdomain() string {
	if f := m.settingsField("subdomain"); f != nil {
		return f.value()
	}
	return ""
}

// rebuildPanels refreshes the panel tree from the working configuration,
// preserving the cursor and the settings fields the config does not own.
func (m *Model) rebuildPanels() {
	name := m.storeName()
	sub := m.subdomain()
	m.sections = buildSections(m.cfg, name, sub, m.template, m.published)
	if m.sectionIdx >= len(m.sections) {
		m.sectionIdx = len(m.sections) - 1
	}
	if n := len(m.activeSection().fields); n == 0 {
		m.fieldIdx = 0
	} else if m.fieldIdx >= n {
		m.fieldIdx = n - 1
	}
	m.focusField()
}
