package editor

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/shopcanvas/shopcanvas/preview"
	"github.com/shopcanvas/shopcanvas/storeconfig"
)

// fieldKind selects how a field is edited and rendered.
type fieldKind int

const (
	fieldText fieldKind = iota
	fieldToggle
	fieldCycle
)

// field is one editable control inside a section panel.
type field struct {
	key   string
	label string
	kind  fieldKind

	input textinput.Model
	on    bool

	options []string
	option  int

	// purpose marks image-path fields eligible for upload; index addresses
	// list entries (category images), -1 otherwise.
	purpose string
	index   int
}

func (f *field) value() string {
	return f.input.Value()
}

// section groups the fields editing one configuration subsection. The id
// matches the preview section identifiers so the active panel drives the
// preview highlight and scroll anchor.
type section struct {
	id     string
	title  string
	fields []*field
}

const sectionSettings = "settings"

func newTextField(key, label, value string) *field {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Width = 28
	ti.SetValue(value)
	return &field{key: key, label: label, kind: fieldText, input: ti, index: -1}
}

func newImageField(key, label, value, purpose string, index int) *field {
	f := newTextField(key, label, value)
	f.purpose = purpose
	f.index = index
	return f
}

func newToggleField(key, label string, on bool) *field {
	return &field{key: key, label: label, kind: fieldToggle, on: on, index: -1}
}

func newCycleField(key, label string, options []string, current string) *field {
	f := &field{key: key, label: label, kind: fieldCycle, options: options, index: -1}
	for i, opt := range options {
		if opt == current {
			f.option = i
		}
	}
	return f
}

// buildSections materializes the panel tree from the working configuration
// and the editor's store-level fields. Called once at startup and again after
// undo/redo or a template switch.
func buildSections(cfg storeconfig.Config, storeName, subdomain, template string, published bool) []*section {
	branding := cfg.Branding
	if branding == nil {
		branding = &storeconfig.Branding{}
	}
	topBar := cfg.TopBar
	if topBar == nil {
		topBar = &storeconfig.TopBar{}
	}
	hero := cfg.Hero
	if hero == nil {
		hero = &storeconfig.Hero{}
	}

	sections := []*section{
		{
			id:    preview.SectionBranding,
			title: "Branding",
			fields: []*field{
				newImageField("logo", "Logo", branding.Logo, "logo", -1),
				newTextField("primaryColor", "Primary color", branding.PrimaryColor),
				newTextField("secondaryColor", "Secondary color", branding.SecondaryColor),
				newTextField("accentColor", "Accent color", branding.AccentColor),
				newTextField("fontFamily", "Font family", branding.FontFamily),
			},
		},
		{
			id:    preview.SectionTopBar,
			title: "Top bar",
			fields: []*field{
				newToggleField("showAnnouncement", "Show announcement", topBar.ShowAnnouncement),
				newTextField("announcement", "Announcement", topBar.Announcement),
				newToggleField("showSocial", "Show social links", topBar.ShowSocial),
				newTextField("instagram", "Instagram", topBar.SocialLinks["instagram"]),
				newTextField("facebook", "Facebook", topBar.SocialLinks["facebook"]),
				newTextField("twitter", "Twitter", topBar.SocialLinks["twitter"]),
			},
		},
		{
			id:    preview.SectionHero,
			title: "Hero",
			fields: []*field{
				newToggleField("showHero", "Show hero", hero.ShowHero),
				newTextField("title", "Title", hero.Title),
				newTextField("subtitle", "Subtitle", hero.Subtitle),
				newImageField("backgroundImage", "Background image", hero.BackgroundImage, "hero", -1),
				newTextField("ctaText", "Button text", hero.CTAText),
				newTextField("ctaLink", "Button link", hero.CTALink),
				newTextField("titleColor", "Title color", hero.TitleColor),
				newTextField("buttonColor", "Button color", hero.ButtonColor),
				newTextField("overlayColor", "Overlay color", hero.OverlayColor),
			},
		},
		buildCategoriesSection(cfg.Categories),
		{
			id:    sectionSettings,
			title: "Settings",
			fields: []*field{
				newTextField("storeName", "Store name", storeName),
				newTextField("subdomain", "Subdomain", subdomain),
				newCycleField("template", "Template", storeconfig.TemplateNames(), template),
				newToggleField("published", "Published", published),
			},
		},
	}
	return sections
}

func buildCategoriesSection(cats []storeconfig.Category) *section {
	sec := &section{id: preview.SectionCategories, title: "Categories"}
	for i, c := range cats {
		sec.fields = append(sec.fields,
			newTextField("name", "Name", c.Name),
			newImageField("image", "Image", c.Image, "category", i),
		)
		sec.fields[len(sec.fields)-2].index = i
	}
	return sec
}

// sectionPatch derives the typed patch for one panel from its current field
// values. Panels never mutate the tree directly; the patch is applied to a
// clone by the orchestrator. cfg is the working tree the patch will land on;
// the top bar panel reads it to preserve social platforms it has no field
// for.
func sectionPatch(sec *section, cfg storeconfig.Config) storeconfig.Patch {
	byKey := make(map[string]*field, len(sec.fields))
	for _, f := range sec.fields {
		byKey[f.key] = f
	}

	switch sec.id {
	case preview.SectionBranding:
		return storeconfig.SetBranding{Branding: storeconfig.Branding{
			Logo:           byKey["logo"].value(),
			PrimaryColor:   byKey["primaryColor"].value(),
			SecondaryColor: byKey["secondaryColor"].value(),
			AccentColor:    byKey["accentColor"].value(),
			FontFamily:     byKey["fontFamily"].value(),
		}}

	case preview.SectionTopBar:
		edited := map[string]bool{"instagram": true, "facebook": true, "twitter": true}
		links := map[string]string{}
		if cfg.TopBar != nil {
			for platform, v := range cfg.TopBar.SocialLinks {
				if !edited[platform] {
					links[platform] = v
				}
			}
		}
		for platform := range edited {
			if v := byKey[platform].value(); v != "" {
				links[platform] = v
			}
		}
		if len(links) == 0 {
			links = nil
		}
		return storeconfig.SetTopBar{TopBar: storeconfig.TopBar{
			ShowAnnouncement: byKey["showAnnouncement"].on,
			Announcement:     byKey["announcement"].value(),
			ShowSocial:       byKey["showSocial"].on,
			SocialLinks:      links,
		}}

	case preview.SectionHero:
		return storeconfig.SetHero{Hero: storeconfig.Hero{
			ShowHero:        byKey["showHero"].on,
			Title:           byKey["title"].value(),
			Subtitle:        byKey["subtitle"].value(),
			BackgroundImage: byKey["backgroundImage"].value(),
			CTAText:         byKey["ctaText"].value(),
			CTALink:         byKey["ctaLink"].value(),
			TitleColor:      byKey["titleColor"].value(),
			ButtonColor:     byKey["buttonColor"].value(),
			OverlayColor:    byKey["overlayColor"].value(),
		}}

	case preview.SectionCategories:
		var cats []storeconfig.Category
		for i := 0; i+1 < len(sec.fields); i += 2 {
			cats = append(cats, storeconfig.Category{
				Name:  sec.fields[i].value(),
				Image: sec.fields[i+1].value(),
			})
		}
		return storeconfig.SetCategories{Categories: cats}
	}
	return nil
}
