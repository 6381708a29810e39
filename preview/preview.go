// Package preview renders a storefront configuration to a terminal layout.
// The renderer is a pure function of (config, store name, products, options)
// and is shared by the editor's live preview pane, the read-only storefront
// viewer and the HTTP text rendering; the editor's active-section marker only
// adds highlighting and scroll anchors, never layout.
package preview

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopcanvas/shopcanvas/catalog"
	"github.com/shopcanvas/shopcanvas/storeconfig"
	"github.com/shopcanvas/shopcanvas/tui/theme"
)

// Viewport selects the preview container width band.
type Viewport string

const (
	ViewportDesktop Viewport = "desktop"
	ViewportTablet  Viewport = "tablet"
	ViewportMobile  Viewport = "mobile"
)

// Next cycles through the viewport modes.
func (v Viewport) Next() Viewport {
	switch v {
	case ViewportDesktop:
		return ViewportTablet
	case ViewportTablet:
		return ViewportMobile
	default:
		return ViewportDesktop
	}
}

// Width maps the band to a container width. Desktop is fluid; tablet and
// mobile are fixed bands, clamped to the available space.
func (v Viewport) Width(available int) int {
	w := available
	switch v {
	case ViewportTablet:
		w = 80
	case ViewportMobile:
		w = 44
	}
	if w > available {
		w = available
	}
	if w < 24 {
		w = 24
	}
	return w
}

// Section identifiers used for highlighting and scroll sync.
const (
	SectionTopBar     = "topBar"
	SectionBranding   = "branding"
	SectionHero       = "hero"
	SectionCategories = "categories"
	SectionProducts   = "products"
)

// Options tune a single render.
type Options struct {
	Viewport Viewport
	// Width is the available width; the viewport band may narrow it.
	Width     int
	ActiveTab catalog.Tab
	// ActiveSection draws an emphasis border around one section. Empty means
	// no emphasis.
	ActiveSection string
}

// Render produces the storefront layout.
func Render(cfg storeconfig.Config, storeName string, products []catalog.Product, opts Options) string {
	out, _ := RenderWithOffsets(cfg, storeName, products, opts)
	return out
}

// RenderWithOffsets additionally reports the first line of each rendered
// section, for scroll-into-view in the editor.
func RenderWithOffsets(cfg storeconfig.Config, storeName string, products []catalog.Product, opts Options) (string, map[string]int) {
	width := opts.Viewport.Width(opts.Width)
	t := theme.DefaultTheme

	var blocks []string
	offsets := make(map[string]int)
	line := 0

	add := func(section, block string) {
		if block == "" {
			return
		}
		offsets[section] = line
		line += lipgloss.Height(block)
		blocks = append(blocks, block)
	}

	add(SectionTopBar, renderTopBar(cfg.TopBar, width, t, opts.ActiveSection == SectionTopBar))
	add(SectionBranding, renderHeader(cfg.Branding, storeName, width, t, opts.ActiveSection == SectionBranding))
	add(SectionHero, renderHero(cfg.Hero, width, t, opts.ActiveSection == SectionHero))
	add(SectionCategories, renderCategories(cfg.Categories, width, t, opts.ActiveSection == SectionCategories))
	add(SectionProducts, renderProducts(products, opts.ActiveTab, width, t, opts.ActiveSection == SectionProducts))

	if len(blocks) == 0 {
		return t.Muted.Render("Nothing to preview yet."), offsets
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...), offsets
}

// sectionBox wraps a block in a border; the emphasis border marks the active
// section without changing the inner layout.
func sectionBox(content string, width int, t *theme.Theme, active bool) string {
	borderColor := t.Colors.Border
	if active {
		borderColor = t.Colors.Orange
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width - 2).
		Render(content)
}

func renderTopBar(tb *storeconfig.TopBar, width int, t *theme.Theme, active bool) string {
	// Absent top bar: omitted entirely
	if tb == nil {
		return ""
	}

	var parts []string
	if tb.ShowAnnouncement && tb.Announcement != "" {
		parts = append(parts, t.Info.Render(tb.Announcement))
	}
	if tb.ShowSocial && len(tb.SocialLinks) > 0 {
		var links []string
		for platform := range tb.SocialLinks {
			links = append(links, platform)
		}
		parts = append(parts, t.Muted.Render("follow us: "+strings.Join(sorted(links), " · ")))
	}
	if len(parts) == 0 {
		return ""
	}

	bar := lipgloss.NewStyle().
		Width(width - 2).
		Align(lipgloss.Center).
		Render(strings.Join(parts, "  "))
	return sectionBox(bar, width, t, active)
}

func renderHeader(b *storeconfig.Branding, storeName string, width int, t *theme.Theme, active bool) string {
	name := storeName
	if name == "" {
		name = "My Store"
	}

	title := t.Header.Render(name)
	var lines []string
	lines = append(lines, title)
	if b != nil {
		var meta []string
		if b.Logo != "" {
			meta = append(meta, "logo ✓")
		}
		if b.FontFamily != "" {
			meta = append(meta, b.FontFamily)
		}
		if len(meta) > 0 {
			lines = append(lines, t.Muted.Render(strings.Join(meta, " · ")))
		}
	}

	header := lipgloss.NewStyle().
		Width(width - 2).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
	return sectionBox(header, width, t, active)
}

func renderHero(h *storeconfig.Hero, width int, t *theme.Theme, active bool) string {
	// Absent or hidden hero: omitted
	if h == nil || !h.ShowHero {
		return ""
	}

	var lines []string
	if h.Title != "" {
		lines = append(lines, t.Highlight.Render(h.Title))
	}
	// Absent subtitle: no subtitle line
	if h.Subtitle != "" {
		lines = append(lines, h.Subtitle)
	}
	if h.BackgroundImage != "" {
		lines = append(lines, t.Muted.Render("[background image]"))
	}
	if h.CTAText != "" {
		button := lipgloss.NewStyle().
			Padding(0, 2).
			Background(t.Colors.SelectedBackground).
			Foreground(t.Colors.LightText).
			Render(h.CTAText)
		lines = append(lines, "", button)
	}
	if len(lines) == 0 {
		return ""
	}

	hero := lipgloss.NewStyle().
		Width(width - 2).
		Align(lipgloss.Center).
		Padding(1, 0).
		Render(strings.Join(lines, "\n"))
	return sectionBox(hero, width, t, active)
}

func renderCategories(cats []storeconfig.Category, width int, t *theme.Theme, active bool) string {
	// Absent categories: section omitted entirely
	if len(cats) == 0 {
		return ""
	}

	cardWidth := 16
	var cards []string
	for _, c := range cats {
		label := c.Name
		if label == "" {
			label = c.Slug
		}
		card := lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(t.Colors.Border).
			Width(cardWidth).
			Align(lipgloss.Center).
			Render(label)
		cards = append(cards, card)
	}

	rows := flowRows(cards, cardWidth+2, width-2)
	content := lipgloss.JoinVertical(lipgloss.Left,
		t.Header.Render("Shop by category"),
		strings.Join(rows, "\n"),
	)
	return sectionBox(content, width, t, active)
}

func renderProducts(products []catalog.Product, tab catalog.Tab, width int, t *theme.Theme, active bool) string {
	if tab == "" {
		tab = catalog.TabAll
	}

	var tabs []string
	for _, candidate := range catalog.Tabs {
		label := candidate.Label()
		if candidate == tab {
			tabs = append(tabs, t.Highlight.Render("["+label+"]"))
		} else {
			tabs = append(tabs, t.Muted.Render(label))
		}
	}
	tabBar := strings.Join(tabs, "  ")

	filtered := catalog.Filter(products, tab)
	var body string
	if len(filtered) == 0 {
		body = t.Muted.Render("No products in this tab.")
	} else {
		cardWidth := 22
		var cards []string
		for _, p := range filtered {
			cards = append(cards, productCard(p, cardWidth, t))
		}
		body = strings.Join(flowRows(cards, cardWidth+2, width-2), "\n")
	}

	content := lipgloss.JoinVertical(lipgloss.Left, tabBar, "", body)
	return sectionBox(content, width, t, active)
}

func productCard(p catalog.Product, width int, t *theme.Theme) string {
	var badges []string
	if p.OnSale() {
		badges = append(badges, t.Error.Render(fmt.Sprintf("-%.0f%%", p.DiscountPercentage)))
	}
	if p.IsNew {
		badges = append(badges, t.Success.Render("NEW"))
	}
	if p.IsFeatured {
		badges = append(badges, t.Info.Render("★"))
	}

	price := t.Highlight.Render(p.DisplayPrice())
	if p.OnSale() {
		original := lipgloss.NewStyle().Strikethrough(true).Foreground(t.Colors.MutedText).
			Render(fmt.Sprintf("$%.2f", p.Price))
		price = original + " " + price
	}

	lines := []string{p.Name, price}
	if len(badges) > 0 {
		lines = append(lines, strings.Join(badges, " "))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(t.Colors.Border).
		Width(width).
		Render(strings.Join(lines, "\n"))
}

// flowRows lays cards out horizontally, wrapping to a new row when the
// container width is exhausted. This is the only responsive rule; viewport
// bands just narrow the container.
func flowRows(cards []string, cardWidth, available int) []string {
	perRow := available / cardWidth
	if perRow < 1 {
		perRow = 1
	}

	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := start + perRow
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[start:end]...))
	}
	return rows
}

func sorted(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
