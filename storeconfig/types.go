// Package storeconfig models the visual configuration of a storefront: a
// tree of optional sections (branding, top bar, hero, categories, colors and
// style selectors) persisted remotely as an opaque JSON blob. Sections are
// pointer-typed so an absent section decodes as nil and every reader falls
// back to defaults; old and new blob shapes coexist in storage with no
// migration step.
package storeconfig

// Config is the full configuration tree for one storefront.
type Config struct {
	Branding   *Branding  `json:"branding,omitempty"`
	TopBar     *TopBar    `json:"topBar,omitempty"`
	Hero       *Hero      `json:"hero,omitempty"`
	Categories []Category `json:"categories,omitempty"`
	Colors     *Colors    `json:"colors,omitempty"`

	// Template-derived style selectors.
	Fonts     string `json:"fonts,omitempty"`
	Layout    string `json:"layout,omitempty"`
	CardStyle string `json:"cardStyle,omitempty"`
}

// Branding holds logo and brand color settings.
type Branding struct {
	Logo           string `json:"logo,omitempty"`
	PrimaryColor   string `json:"primaryColor,omitempty"`
	SecondaryColor string `json:"secondaryColor,omitempty"`
	AccentColor    string `json:"accentColor,omitempty"`
	FontFamily     string `json:"fontFamily,omitempty"`
}

// TopBar configures the announcement strip above the storefront header.
type TopBar struct {
	ShowAnnouncement bool              `json:"showAnnouncement"`
	Announcement     string            `json:"announcement,omitempty"`
	ShowSocial       bool              `json:"showSocial"`
	SocialLinks      map[string]string `json:"socialLinks,omitempty"`
}

// Hero configures the banner section.
type Hero struct {
	ShowHero        bool   `json:"showHero"`
	Title           string `json:"title,omitempty"`
	Subtitle        string `json:"subtitle,omitempty"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
	OverlayColor    string `json:"overlayColor,omitempty"`
	TitleColor      string `json:"titleColor,omitempty"`
	ButtonColor     string `json:"buttonColor,omitempty"`
	CTAText         string `json:"ctaText,omitempty"`
	CTALink         string `json:"ctaLink,omitempty"`
}

// Category is one entry of the category grid. Slug is derived from Name.
type Category struct {
	Name  string `json:"name"`
	Slug  string `json:"slug,omitempty"`
	Image string `json:"image,omitempty"`
}

// Colors are HSL-triple strings used directly as CSS color values on the
// public storefront.
type Colors struct {
	Primary   string `json:"primary,omitempty"`
	Secondary string `json:"secondary,omitempty"`
	Accent    string `json:"accent,omitempty"`
}

// Clone returns a deep copy of the configuration tree. Patches operate on
// clones so history snapshots never alias each other.
func (c Config) Clone() Config {
	out := c
	if c.Branding != nil {
		b := *c.Branding
		out.Branding = &b
	}
	if c.TopBar != nil {
		tb := *c.TopBar
		if c.TopBar.SocialLinks != nil {
			tb.SocialLinks = make(map[string]string, len(c.TopBar.SocialLinks))
			for k, v := range c.TopBar.SocialLinks {
				tb.SocialLinks[k] = v
			}
		}
		out.TopBar = &tb
	}
	if c.Hero != nil {
		h := *c.Hero
		out.Hero = &h
	}
	if c.Categories != nil {
		out.Categories = append([]Category(nil), c.Categories...)
	}
	if c.Colors != nil {
		col := *c.Colors
		out.Colors = &col
	}
	return out
}
