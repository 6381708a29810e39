package storeconfig

// Patch is a typed replacement of exactly one section of the configuration
// tree. Editor panels emit patches rather than whole mutated trees, so a
// panel can never clobber another section's edits.
type Patch interface {
	apply(c *Config)
}

// SetBranding replaces the branding section.
type SetBranding struct{ Branding Branding }

func (p SetBranding) apply(c *Config) { b := p.Branding; c.Branding = &b }

// SetTopBar replaces the top bar section.
type SetTopBar struct{ TopBar TopBar }

func (p SetTopBar) apply(c *Config) { tb := p.TopBar; c.TopBar = &tb }

// SetHero replaces the hero section.
type SetHero struct{ Hero Hero }

func (p SetHero) apply(c *Config) { h := p.Hero; c.Hero = &h }

// SetCategories replaces the category list. Slugs are re-derived from the
// category names on every application.
type SetCategories struct{ Categories []Category }

func (p SetCategories) apply(c *Config) {
	cats := append([]Category(nil), p.Categories...)
	for i := range cats {
		cats[i].Slug = Slugify(cats[i].Name)
	}
	c.Categories = cats
}

// SetColors replaces the color palette.
type SetColors struct{ Colors Colors }

func (p SetColors) apply(c *Config) { col := p.Colors; c.Colors = &col }

// SetStyle replaces the template-derived style selectors. Empty fields are
// written as-is; a panel that wants to keep a selector passes the current
// value through.
type SetStyle struct {
	Fonts     string
	Layout    string
	CardStyle string
}

func (p SetStyle) apply(c *Config) {
	c.Fonts = p.Fonts
	c.Layout = p.Layout
	c.CardStyle = p.CardStyle
}

// Apply returns a new tree with the patch applied. The input is never
// mutated.
func Apply(cfg Config, p Patch) Config {
	out := cfg.Clone()
	p.apply(&out)
	return out
}
