package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopcanvas/shopcanvas/preview"
	"github.com/shopcanvas/shopcanvas/tui/theme"
)

const panelWidth = 38

// View renders the editor: section panels on the left, the live preview on
// the right, a status bar underneath.
func (m *Model) View() string {
	if m.width < 60 || m.height < 16 {
		return "Terminal too small. Please resize."
	}

	t := theme.DefaultTheme
	contentHeight := m.height - 4

	panel := m.renderPanel(contentHeight, t)
	previewPane := m.renderPreview(m.width-panelWidth-4, contentHeight, t)

	main := lipgloss.JoinHorizontal(lipgloss.Top, panel, previewPane)
	footer := m.renderStatusBar(t)

	return lipgloss.JoinVertical(lipgloss.Left, main, footer)
}

func (m *Model) renderPanel(height int, t *theme.Theme) string {
	var b strings.Builder

	// Section tab strip
	var tabs []string
	for i, sec := range m.sections {
		if i == m.sectionIdx {
			tabs = append(tabs, t.Highlight.Render(sec.title))
		} else {
			tabs = append(tabs, t.Muted.Render(sec.title))
		}
	}
	b.WriteString(strings.Join(tabs, " · "))
	b.WriteString("\n\n")

	sec := m.activeSection()
	if len(sec.fields) == 0 {
		b.WriteString(t.Muted.Render("No entries. ctrl+n adds a category."))
	}
	for i, f := range sec.fields {
		cursor := "  "
		if i == m.fieldIdx {
			cursor = t.Accent.Render("▸ ")
		}

		label := f.label
		if sec.id == preview.SectionCategories && f.key == "name" {
			slug := ""
			if idx := i / 2; idx < len(m.cfg.Categories) {
				slug = m.cfg.Categories[idx].Slug
			}
			label = fmt.Sprintf("%s (/%s)", f.label, slug)
		}

		switch f.kind {
		case fieldText:
			b.WriteString(fmt.Sprintf("%s%s\n    %s\n", cursor, t.Muted.Render(label), f.input.View()))
		case fieldToggle:
			mark := "[ ]"
			if f.on {
				mark = t.Success.Render("[x]")
			}
			b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, mark, label))
		case fieldCycle:
			b.WriteString(fmt.Sprintf("%s%s: %s\n", cursor, t.Muted.Render(label), t.Highlight.Render(f.options[f.option])))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Colors.Border).
		Width(panelWidth).
		Height(height).
		Padding(0, 1).
		Render(b.String())
}

func (m *Model) renderPreview(width, height int, t *theme.Theme) string {
	activeSection := ""
	if sec := m.activeSection(); sec.id != sectionSettings {
		activeSection = sec.id
	}

	rendered, offsets := preview.RenderWithOffsets(m.cfg, m.storeName(), m.products, preview.Options{
		Viewport:      m.previewMode,
		Width:         width - 2,
		ActiveTab:     m.activeTab,
		ActiveSection: activeSection,
	})

	lines := strings.Split(rendered, "\n")
	visible := height - 2

	if m.followActive && activeSection != "" {
		if off, ok := offsets[activeSection]; ok {
			m.scrollOffset = off
		}
		m.followActive = false
	}
	maxOffset := len(lines) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.scrollOffset > maxOffset {
		m.scrollOffset = maxOffset
	}
	end := m.scrollOffset + visible
	if end > len(lines) {
		end = len(lines)
	}
	window := strings.Join(lines[m.scrollOffset:end], "\n")

	title := fmt.Sprintf(" Preview · %s ", m.previewMode)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Colors.Border).
		Width(width).
		Height(height).
		Render(t.Muted.Render(title) + "\n" + window)
}

func (m *Model) renderStatusBar(t *theme.Theme) string {
	var parts []string

	if m.storeID == "" {
		parts = append(parts, t.Error.Render("draft (not saved)"))
	} else if m.dirty {
		parts = append(parts, t.Info.Render("unsaved changes"))
	} else {
		parts = append(parts, t.Success.Render("saved"))
	}
	if m.saving {
		parts = append(parts, "saving…")
	}
	if !m.lastSaved.IsZero() {
		parts = append(parts, t.Muted.Render("last saved "+m.lastSaved.Format("15:04:05")))
	}
	if m.autosaveFailures > 0 {
		parts = append(parts, t.Error.Render(fmt.Sprintf("autosave failures: %d", m.autosaveFailures)))
	}
	if m.status != "" {
		if m.statusErr {
			parts = append(parts, t.Error.Render(m.status))
		} else {
			parts = append(parts, m.status)
		}
	}

	hints := t.Muted.Render("tab sections · ↑/↓ fields · enter commit · ctrl+z/y undo/redo · ctrl+s save · ctrl+v viewport · ctrl+c quit")
	return lipgloss.NewStyle().
		Width(m.width - 2).
		Render(strings.Join(parts, "  │  ") + "\n" + hints)
}
